package dto

import "github.com/polinatih/school-proj/internal/model"

// ── attendances ──

// CreateAttendanceRequest POST /api/attendances
type CreateAttendanceRequest struct {
	Date      string   `json:"date"      binding:"required"`
	Present   *bool    `json:"present"   binding:"required"`
	StudentID string   `json:"studentId" binding:"required"`
	LessonID  *FlexInt `json:"lessonId"  binding:"required"`
}

func (r CreateAttendanceRequest) Build() (*model.Attendance, []model.Link, error) {
	date, err := ParseTime("date", r.Date)
	if err != nil {
		return nil, nil, err
	}
	return &model.Attendance{
		Date:      date,
		Present:   *r.Present,
		StudentID: r.StudentID,
		LessonID:  r.LessonID.Int(),
	}, nil, nil
}

// UpdateAttendanceRequest PUT /api/attendances/:id
type UpdateAttendanceRequest struct {
	Date      *string  `json:"date"`
	Present   *bool    `json:"present"`
	StudentID *string  `json:"studentId" binding:"omitempty,min=1"`
	LessonID  *FlexInt `json:"lessonId"`
}

func (r UpdateAttendanceRequest) Apply(a *model.Attendance) ([]model.Link, error) {
	if err := patchTime(&a.Date, "date", r.Date); err != nil {
		return nil, err
	}
	if r.Present != nil {
		a.Present = *r.Present
	}
	if r.StudentID != nil {
		a.StudentID = *r.StudentID
	}
	if r.LessonID != nil {
		a.LessonID = r.LessonID.Int()
	}
	return nil, nil
}
