package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// NewTeacherService creates the teachers service. Teachers own lessons and
// supervise classes; subjects are linked through subject_teachers.
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Teacher] {
	return NewResource(repo.Teacher, Descriptor[model.Teacher]{
		Meta: Meta{
			Name:     "Teacher",
			Plural:   "teachers",
			Required: []string{"username", "name", "surname", "sex", "birthday"},
		},
		SearchColumns: []string{"name", "surname", "email"},
		Filters: []Filter{
			IntExprFilter("subjectId", "id IN (SELECT teacher_id FROM subject_teachers WHERE subject_id = ?)"),
		},
		Order:        "created_at desc",
		ListPreloads: []repository.Preload{{Path: "Subjects", Order: "name asc"}},
		DetailPreloads: []repository.Preload{
			{Path: "Subjects", Order: "name asc"},
			{Path: "Lessons"},
			{Path: "Lessons.Subject"},
			{Path: "Lessons.Class"},
			{Path: "Classes", Order: "name asc"},
		},
		WritePreloads: []repository.Preload{{Path: "Subjects", Order: "name asc"}},
		Counts: []repository.Count{
			{Name: "lessons", Table: "lessons", Column: "teacher_id"},
			{Name: "classes", Table: "classes", Column: "supervisor_id"},
		},
		Dependents: []repository.Count{
			{Name: "lessons", Table: "lessons", Column: "teacher_id"},
			{Name: "classes", Table: "classes", Column: "supervisor_id"},
		},
		DeleteBlocked: "Cannot delete teacher with assigned lessons or supervised classes",
		Conflict:      "Teacher with this username or email already exists",
		References: map[string]string{
			"fk_subject_teachers_subject": "Subject not found",
		},
		Checks: map[string]string{"chk_teachers_sex": "Invalid sex"},
	}, logger)
}
