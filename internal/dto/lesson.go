package dto

import "github.com/polinatih/school-proj/internal/model"

// ── lessons ──

// CreateLessonRequest POST /api/lessons
type CreateLessonRequest struct {
	Name      string   `json:"name"      binding:"required,max=100"`
	Day       string   `json:"day"       binding:"required"`
	StartTime string   `json:"startTime" binding:"required"`
	EndTime   string   `json:"endTime"   binding:"required"`
	SubjectID *FlexInt `json:"subjectId" binding:"required"`
	ClassID   *FlexInt `json:"classId"   binding:"required"`
	TeacherID string   `json:"teacherId" binding:"required"`
}

func (r CreateLessonRequest) Build() (*model.Lesson, []model.Link, error) {
	day, err := ParseDay(r.Day)
	if err != nil {
		return nil, nil, err
	}
	start, err := ParseTime("startTime", r.StartTime)
	if err != nil {
		return nil, nil, err
	}
	end, err := ParseTime("endTime", r.EndTime)
	if err != nil {
		return nil, nil, err
	}
	return &model.Lesson{
		Name:      r.Name,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		SubjectID: r.SubjectID.Int(),
		ClassID:   r.ClassID.Int(),
		TeacherID: r.TeacherID,
	}, nil, nil
}

// UpdateLessonRequest PUT /api/lessons/:id
type UpdateLessonRequest struct {
	Name      *string  `json:"name"      binding:"omitempty,min=1,max=100"`
	Day       *string  `json:"day"`
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
	SubjectID *FlexInt `json:"subjectId"`
	ClassID   *FlexInt `json:"classId"`
	TeacherID *string  `json:"teacherId" binding:"omitempty,min=1"`
}

func (r UpdateLessonRequest) Apply(l *model.Lesson) ([]model.Link, error) {
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.Day != nil {
		day, err := ParseDay(*r.Day)
		if err != nil {
			return nil, err
		}
		l.Day = day
	}
	if err := patchTime(&l.StartTime, "startTime", r.StartTime); err != nil {
		return nil, err
	}
	if err := patchTime(&l.EndTime, "endTime", r.EndTime); err != nil {
		return nil, err
	}
	if r.SubjectID != nil {
		l.SubjectID = r.SubjectID.Int()
	}
	if r.ClassID != nil {
		l.ClassID = r.ClassID.Int()
	}
	if r.TeacherID != nil {
		l.TeacherID = *r.TeacherID
	}
	return nil, nil
}
