package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// NewClassService creates the classes service. A class belongs to a grade
// and may have a supervising teacher.
func NewClassService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Class] {
	return NewResource(repo.Class, Descriptor[model.Class]{
		Meta:          Meta{Name: "Class", Plural: "classes", Required: []string{"name", "capacity", "gradeId"}},
		IntID:         true,
		SearchColumns: []string{"name"},
		Filters: []Filter{
			IntFilter("gradeId", "grade_id"),
			TextFilter("supervisorId", "supervisor_id"),
		},
		Order:        "name asc",
		ListPreloads: []repository.Preload{{Path: "Grade"}, {Path: "Supervisor"}},
		DetailPreloads: []repository.Preload{
			{Path: "Grade"},
			{Path: "Supervisor"},
			{Path: "Students", Order: "surname asc"},
			{Path: "Students.Parent"},
			{Path: "Lessons"},
			{Path: "Lessons.Subject"},
			{Path: "Lessons.Teacher"},
			{Path: "Events", Order: "start_time desc"},
			{Path: "Announcements", Order: "date desc"},
		},
		WritePreloads: []repository.Preload{{Path: "Grade"}, {Path: "Supervisor"}},
		Counts: []repository.Count{
			{Name: "students", Table: "students", Column: "class_id"},
			{Name: "lessons", Table: "lessons", Column: "class_id"},
			{Name: "events", Table: "events", Column: "class_id"},
			{Name: "announcements", Table: "announcements", Column: "class_id"},
		},
		Dependents: []repository.Count{
			{Name: "students", Table: "students", Column: "class_id"},
			{Name: "lessons", Table: "lessons", Column: "class_id"},
		},
		DeleteBlocked: "Cannot delete class with existing students or lessons",
		Conflict:      "Class with this name already exists",
		References: map[string]string{
			"fk_classes_grade":      "Grade not found",
			"fk_classes_supervisor": "Teacher not found",
		},
		Validate: func(c *model.Class) error {
			if c.Capacity <= 0 {
				return pkgerrors.Validation("Capacity must be a positive number")
			}
			return nil
		},
	}, logger)
}
