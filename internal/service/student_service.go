package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// NewStudentService creates the students service. The detail view carries
// the latest ten attendances and results.
func NewStudentService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Student] {
	return NewResource(repo.Student, Descriptor[model.Student]{
		Meta: Meta{
			Name:     "Student",
			Plural:   "students",
			Required: []string{"username", "name", "surname", "sex", "birthday", "parentId", "classId", "gradeId"},
		},
		SearchColumns: []string{"name", "surname", "email"},
		Filters: []Filter{
			IntFilter("classId", "class_id"),
			IntFilter("gradeId", "grade_id"),
			TextFilter("parentId", "parent_id"),
		},
		Order:        "created_at desc",
		ListPreloads: []repository.Preload{{Path: "Class"}, {Path: "Grade"}, {Path: "Parent"}},
		DetailPreloads: []repository.Preload{
			{Path: "Class"},
			{Path: "Grade"},
			{Path: "Parent"},
			{Path: "Attendances", Order: "date desc", Limit: 10},
			{Path: "Attendances.Lesson"},
			{Path: "Attendances.Lesson.Subject"},
			{Path: "Results", Order: "id desc", Limit: 10},
			{Path: "Results.Exam"},
			{Path: "Results.Exam.Lesson"},
			{Path: "Results.Exam.Lesson.Subject"},
			{Path: "Results.Assignment"},
			{Path: "Results.Assignment.Lesson"},
			{Path: "Results.Assignment.Lesson.Subject"},
		},
		WritePreloads: []repository.Preload{{Path: "Class"}, {Path: "Grade"}, {Path: "Parent"}},
		Counts: []repository.Count{
			{Name: "attendances", Table: "attendances", Column: "student_id"},
			{Name: "results", Table: "results", Column: "student_id"},
		},
		Dependents: []repository.Count{
			{Name: "attendances", Table: "attendances", Column: "student_id"},
			{Name: "results", Table: "results", Column: "student_id"},
		},
		DeleteBlocked: "Cannot delete student with existing attendances or results",
		Conflict:      "Student with this username or email already exists",
		References: map[string]string{
			"fk_students_parent": "Parent not found",
			"fk_students_class":  "Class not found",
			"fk_students_grade":  "Grade not found",
		},
		Checks: map[string]string{"chk_students_sex": "Invalid sex"},
	}, logger)
}
