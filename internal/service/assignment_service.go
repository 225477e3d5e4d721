package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// NewAssignmentService creates the service for homework assignments,
// which must be due after they start.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Assignment] {
	return NewResource(repo.Assignment, Descriptor[model.Assignment]{
		Meta:          Meta{Name: "Assignment", Plural: "assignments", Required: []string{"title", "startDate", "dueDate", "lessonId"}},
		IntID:         true,
		SearchColumns: []string{"title"},
		Filters:       []Filter{IntFilter("lessonId", "lesson_id"), lessonClassFilter()},
		Order:         "due_date desc",
		ListPreloads: []repository.Preload{
			{Path: "Lesson"},
			{Path: "Lesson.Subject"},
			{Path: "Lesson.Class"},
			{Path: "Lesson.Teacher"},
		},
		DetailPreloads: []repository.Preload{
			{Path: "Lesson"},
			{Path: "Lesson.Subject"},
			{Path: "Lesson.Class"},
			{Path: "Lesson.Class.Grade"},
			{Path: "Lesson.Teacher"},
			{Path: "Results", Order: "score desc"},
			{Path: "Results.Student"},
			{Path: "Results.Student.Class"},
		},
		WritePreloads: []repository.Preload{{Path: "Lesson"}, {Path: "Lesson.Subject"}, {Path: "Lesson.Class"}},
		Counts:        []repository.Count{{Name: "results", Table: "results", Column: "assignment_id"}},
		Dependents:    []repository.Count{{Name: "results", Table: "results", Column: "assignment_id"}},
		DeleteBlocked: "Cannot delete assignment with existing results",
		References:    map[string]string{"fk_assignments_lesson": "Lesson not found"},
		Checks:        map[string]string{"chk_assignments_date_range": "Due date must be after start date"},
		Validate: func(a *model.Assignment) error {
			if !a.DueDate.After(a.StartDate) {
				return pkgerrors.Validation("Due date must be after start date")
			}
			return nil
		},
	}, logger)
}
