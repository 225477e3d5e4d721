package dto

import (
	"github.com/polinatih/school-proj/internal/model"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// ── results ──

// CreateResultRequest POST /api/results. Exactly one of ExamID and
// AssignmentID must be given; "only one" is checked on the built record.
type CreateResultRequest struct {
	Score        *FlexInt `json:"score"     binding:"required"`
	StudentID    string   `json:"studentId" binding:"required"`
	ExamID       *FlexInt `json:"examId"`
	AssignmentID *FlexInt `json:"assignmentId"`
}

func (r CreateResultRequest) Build() (*model.Result, []model.Link, error) {
	examID, assignmentID := positive(r.ExamID), positive(r.AssignmentID)
	if examID == nil && assignmentID == nil {
		return nil, nil, pkgerrors.Validation("Either examId or assignmentId is required")
	}
	return &model.Result{
		Score:        r.Score.Int(),
		StudentID:    r.StudentID,
		ExamID:       examID,
		AssignmentID: assignmentID,
	}, nil, nil
}

// UpdateResultRequest PUT /api/results/:id. examId/assignmentId: null
// detaches that source.
type UpdateResultRequest struct {
	Score        *FlexInt          `json:"score"`
	StudentID    *string           `json:"studentId" binding:"omitempty,min=1"`
	ExamID       Optional[FlexInt] `json:"examId"`
	AssignmentID Optional[FlexInt] `json:"assignmentId"`
}

func (r UpdateResultRequest) Apply(res *model.Result) ([]model.Link, error) {
	if r.Score != nil {
		res.Score = r.Score.Int()
	}
	if r.StudentID != nil {
		res.StudentID = *r.StudentID
	}
	applyNullableInt(&res.ExamID, r.ExamID)
	applyNullableInt(&res.AssignmentID, r.AssignmentID)
	return nil, nil
}

// positive treats nil and 0 as absent.
func positive(n *FlexInt) *int {
	if n == nil || *n == 0 {
		return nil
	}
	return IntPtr(n)
}
