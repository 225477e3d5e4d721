package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// lessonClassFilter selects rows whose lesson belongs to a class.
func lessonClassFilter() Filter {
	return IntExprFilter("classId", "lesson_id IN (SELECT id FROM lessons WHERE class_id = ?)")
}

// NewExamService creates the exams service. Exams are scheduled against
// a lesson.
func NewExamService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Exam] {
	return NewResource(repo.Exam, Descriptor[model.Exam]{
		Meta:          Meta{Name: "Exam", Plural: "exams", Required: []string{"title", "startTime", "endTime", "lessonId"}},
		IntID:         true,
		SearchColumns: []string{"title"},
		Filters:       []Filter{IntFilter("lessonId", "lesson_id"), lessonClassFilter()},
		Order:         "start_time desc",
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
			{Path: "Lesson.Teacher"},
			{Path: "Results", Order: "score desc"},
			{Path: "Results.Student"},
		},
		WritePreloads: []repository.Preload{{Path: "Lesson"}, {Path: "Lesson.Subject"}, {Path: "Lesson.Class"}},
		Counts:        []repository.Count{{Name: "results", Table: "results", Column: "exam_id"}},
		Dependents:    []repository.Count{{Name: "results", Table: "results", Column: "exam_id"}},
		DeleteBlocked: "Cannot delete exam with existing results",
		References:    map[string]string{"fk_exams_lesson": "Lesson not found"},
		Checks:        map[string]string{"chk_exams_time_range": "End time must be after start time"},
		Validate: func(e *model.Exam) error {
			if !e.EndTime.After(e.StartTime) {
				return pkgerrors.Validation("End time must be after start time")
			}
			return nil
		},
	}, logger)
}
