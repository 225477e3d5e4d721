package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// weekOrder sorts the day column Monday first.
var weekOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE day")
	for i, d := range model.Weekdays {
		b.WriteString(" WHEN '" + d + "' THEN ")
		b.WriteByte(byte('1' + i))
	}
	b.WriteString(" END")
	return b.String()
}()

// NewLessonService creates the weekly lessons service. Lessons are listed
// in timetable order.
func NewLessonService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Lesson] {
	return NewResource(repo.Lesson, Descriptor[model.Lesson]{
		Meta: Meta{
			Name:     "Lesson",
			Plural:   "lessons",
			Required: []string{"name", "day", "startTime", "endTime", "subjectId", "classId", "teacherId"},
		},
		IntID:         true,
		SearchColumns: []string{"name"},
		Filters: []Filter{
			IntFilter("classId", "class_id"),
			TextFilter("teacherId", "teacher_id"),
			IntFilter("subjectId", "subject_id"),
			{Param: "day", Build: func(v string) (repository.Condition, error) {
				return repository.Where("day = ?", strings.ToUpper(v)), nil
			}},
		},
		Order:        weekOrder + ", start_time asc",
		ListPreloads: []repository.Preload{{Path: "Subject"}, {Path: "Class"}, {Path: "Teacher"}},
		DetailPreloads: []repository.Preload{
			{Path: "Subject"},
			{Path: "Class"},
			{Path: "Class.Grade"},
			{Path: "Teacher"},
			{Path: "Exams", Order: "start_time desc"},
			{Path: "Assignments", Order: "due_date desc"},
			{Path: "Attendances", Order: "date desc", Limit: 20},
			{Path: "Attendances.Student"},
		},
		WritePreloads: []repository.Preload{{Path: "Subject"}, {Path: "Class"}, {Path: "Teacher"}},
		Counts: []repository.Count{
			{Name: "exams", Table: "exams", Column: "lesson_id"},
			{Name: "assignments", Table: "assignments", Column: "lesson_id"},
			{Name: "attendances", Table: "attendances", Column: "lesson_id"},
		},
		Dependents: []repository.Count{
			{Name: "exams", Table: "exams", Column: "lesson_id"},
			{Name: "assignments", Table: "assignments", Column: "lesson_id"},
			{Name: "attendances", Table: "attendances", Column: "lesson_id"},
		},
		DeleteBlocked: "Cannot delete lesson with existing exams, assignments or attendances",
		References: map[string]string{
			"fk_lessons_subject": "Subject not found",
			"fk_lessons_class":   "Class not found",
			"fk_lessons_teacher": "Teacher not found",
		},
		Checks: map[string]string{
			"chk_lessons_day":        "Invalid day",
			"chk_lessons_time_range": "End time must be after start time",
		},
		Validate: func(l *model.Lesson) error {
			if !l.EndTime.After(l.StartTime) {
				return pkgerrors.Validation("End time must be after start time")
			}
			return nil
		},
	}, logger)
}
