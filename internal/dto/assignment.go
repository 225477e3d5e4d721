package dto

import "github.com/polinatih/school-proj/internal/model"

// ── assignments ──

// CreateAssignmentRequest POST /api/assignments
type CreateAssignmentRequest struct {
	Title     string   `json:"title"     binding:"required,max=200"`
	StartDate string   `json:"startDate" binding:"required"`
	DueDate   string   `json:"dueDate"   binding:"required"`
	LessonID  *FlexInt `json:"lessonId"  binding:"required"`
}

func (r CreateAssignmentRequest) Build() (*model.Assignment, []model.Link, error) {
	start, err := ParseTime("startDate", r.StartDate)
	if err != nil {
		return nil, nil, err
	}
	due, err := ParseTime("dueDate", r.DueDate)
	if err != nil {
		return nil, nil, err
	}
	return &model.Assignment{
		Title:     r.Title,
		StartDate: start,
		DueDate:   due,
		LessonID:  r.LessonID.Int(),
	}, nil, nil
}

// UpdateAssignmentRequest PUT /api/assignments/:id
type UpdateAssignmentRequest struct {
	Title     *string  `json:"title" binding:"omitempty,min=1,max=200"`
	StartDate *string  `json:"startDate"`
	DueDate   *string  `json:"dueDate"`
	LessonID  *FlexInt `json:"lessonId"`
}

func (r UpdateAssignmentRequest) Apply(a *model.Assignment) ([]model.Link, error) {
	if r.Title != nil {
		a.Title = *r.Title
	}
	if err := patchTime(&a.StartDate, "startDate", r.StartDate); err != nil {
		return nil, err
	}
	if err := patchTime(&a.DueDate, "dueDate", r.DueDate); err != nil {
		return nil, err
	}
	if r.LessonID != nil {
		a.LessonID = r.LessonID.Int()
	}
	return nil, nil
}
