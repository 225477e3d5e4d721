package dto

import "github.com/polinatih/school-proj/internal/model"

// ── events ──

// CreateEventRequest POST /api/events. Without classId the event is
// school-wide.
type CreateEventRequest struct {
	Title       string   `json:"title"     binding:"required,max=200"`
	Description *string  `json:"description"`
	StartTime   string   `json:"startTime" binding:"required"`
	EndTime     string   `json:"endTime"   binding:"required"`
	ClassID     *FlexInt `json:"classId"`
}

func (r CreateEventRequest) Build() (*model.Event, []model.Link, error) {
	start, err := ParseTime("startTime", r.StartTime)
	if err != nil {
		return nil, nil, err
	}
	end, err := ParseTime("endTime", r.EndTime)
	if err != nil {
		return nil, nil, err
	}
	return &model.Event{
		Title:       r.Title,
		Description: nonEmpty(r.Description),
		StartTime:   start,
		EndTime:     end,
		ClassID:     positive(r.ClassID),
	}, nil, nil
}

// UpdateEventRequest PUT /api/events/:id
type UpdateEventRequest struct {
	Title       *string           `json:"title" binding:"omitempty,min=1,max=200"`
	Description Optional[string]  `json:"description"`
	StartTime   *string           `json:"startTime"`
	EndTime     *string           `json:"endTime"`
	ClassID     Optional[FlexInt] `json:"classId"`
}

func (r UpdateEventRequest) Apply(e *model.Event) ([]model.Link, error) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	applyNullableString(&e.Description, r.Description)
	if err := patchTime(&e.StartTime, "startTime", r.StartTime); err != nil {
		return nil, err
	}
	if err := patchTime(&e.EndTime, "endTime", r.EndTime); err != nil {
		return nil, err
	}
	applyNullableInt(&e.ClassID, r.ClassID)
	return nil, nil
}
