package dto

import "github.com/polinatih/school-proj/internal/model"

// ── exams ──

// CreateExamRequest POST /api/exams
type CreateExamRequest struct {
	Title     string   `json:"title"     binding:"required,max=200"`
	StartTime string   `json:"startTime" binding:"required"`
	EndTime   string   `json:"endTime"   binding:"required"`
	LessonID  *FlexInt `json:"lessonId"  binding:"required"`
}

func (r CreateExamRequest) Build() (*model.Exam, []model.Link, error) {
	start, err := ParseTime("startTime", r.StartTime)
	if err != nil {
		return nil, nil, err
	}
	end, err := ParseTime("endTime", r.EndTime)
	if err != nil {
		return nil, nil, err
	}
	return &model.Exam{
		Title:     r.Title,
		StartTime: start,
		EndTime:   end,
		LessonID:  r.LessonID.Int(),
	}, nil, nil
}

// UpdateExamRequest PUT /api/exams/:id
type UpdateExamRequest struct {
	Title     *string  `json:"title" binding:"omitempty,min=1,max=200"`
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
	LessonID  *FlexInt `json:"lessonId"`
}

func (r UpdateExamRequest) Apply(e *model.Exam) ([]model.Link, error) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if err := patchTime(&e.StartTime, "startTime", r.StartTime); err != nil {
		return nil, err
	}
	if err := patchTime(&e.EndTime, "endTime", r.EndTime); err != nil {
		return nil, err
	}
	if r.LessonID != nil {
		e.LessonID = r.LessonID.Int()
	}
	return nil, nil
}
