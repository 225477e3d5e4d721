package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// ValidateResult enforces the score range and that a result points at
// exactly one of an exam or an assignment.
func ValidateResult(r *model.Result) error {
	if r.Score < MinScore || r.Score > MaxScore {
		return pkgerrors.Validation("Score must be between 0 and 100")
	}
	switch {
	case r.ExamID != nil && r.AssignmentID != nil:
		return pkgerrors.Validation("Provide only one of examId or assignmentId")
	case r.ExamID == nil && r.AssignmentID == nil:
		return pkgerrors.Validation("Either examId or assignmentId is required")
	}
	return nil
}

// NewResultService creates the service for student results on exams or
// assignments.
func NewResultService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Result] {
	return NewResource(repo.Result, Descriptor[model.Result]{
		Meta:  Meta{Name: "Result", Plural: "results", Required: []string{"score", "studentId", "examId OR assignmentId"}},
		IntID: true,
		Filters: []Filter{
			TextFilter("studentId", "student_id"),
			IntFilter("examId", "exam_id"),
			IntFilter("assignmentId", "assignment_id"),
		},
		Order: "id desc",
		ListPreloads: []repository.Preload{
			{Path: "Student"},
			{Path: "Student.Class"},
			{Path: "Exam"},
			{Path: "Exam.Lesson"},
			{Path: "Exam.Lesson.Subject"},
			{Path: "Exam.Lesson.Class"},
			{Path: "Assignment"},
			{Path: "Assignment.Lesson"},
			{Path: "Assignment.Lesson.Subject"},
			{Path: "Assignment.Lesson.Class"},
		},
		DetailPreloads: []repository.Preload{
			{Path: "Student"},
			{Path: "Student.Class"},
			{Path: "Student.Grade"},
			{Path: "Exam"},
			{Path: "Exam.Lesson"},
			{Path: "Exam.Lesson.Subject"},
			{Path: "Exam.Lesson.Class"},
			{Path: "Exam.Lesson.Teacher"},
			{Path: "Assignment"},
			{Path: "Assignment.Lesson"},
			{Path: "Assignment.Lesson.Subject"},
			{Path: "Assignment.Lesson.Class"},
			{Path: "Assignment.Lesson.Teacher"},
		},
		WritePreloads: []repository.Preload{
			{Path: "Student"},
			{Path: "Exam"},
			{Path: "Exam.Lesson"},
			{Path: "Exam.Lesson.Subject"},
			{Path: "Assignment"},
			{Path: "Assignment.Lesson"},
			{Path: "Assignment.Lesson.Subject"},
		},
		References: map[string]string{
			"fk_results_student":    "Student not found",
			"fk_results_exam":       "Exam not found",
			"fk_results_assignment": "Assignment not found",
		},
		Checks: map[string]string{
			"chk_results_score":  "Score must be between 0 and 100",
			"chk_results_source": "Provide only one of examId or assignmentId",
		},
		Validate: ValidateResult,
	}, logger)
}
