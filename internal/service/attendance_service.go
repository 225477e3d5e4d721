package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// NewAttendanceService creates the service for per-lesson attendance marks.
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Attendance] {
	return NewResource(repo.Attendance, Descriptor[model.Attendance]{
		Meta:  Meta{Name: "Attendance", Plural: "attendances", Required: []string{"date", "present", "studentId", "lessonId"}},
		IntID: true,
		Filters: []Filter{
			TextFilter("studentId", "student_id"),
			IntFilter("lessonId", "lesson_id"),
		},
		Order:        "date desc",
		ListPreloads: []repository.Preload{{Path: "Student"}, {Path: "Lesson"}, {Path: "Lesson.Subject"}},
		DetailPreloads: []repository.Preload{
			{Path: "Student"},
			{Path: "Student.Class"},
			{Path: "Lesson"},
			{Path: "Lesson.Subject"},
			{Path: "Lesson.Class"},
		},
		WritePreloads: []repository.Preload{{Path: "Student"}, {Path: "Lesson"}, {Path: "Lesson.Subject"}},
		References: map[string]string{
			"fk_attendances_student": "Student not found",
			"fk_attendances_lesson":  "Lesson not found",
		},
	}, logger)
}
