package dto

import "github.com/polinatih/school-proj/internal/model"

// ── announcements ──

// CreateAnnouncementRequest POST /api/announcements
type CreateAnnouncementRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description *string  `json:"description"`
	Date        string   `json:"date"  binding:"required"`
	ClassID     *FlexInt `json:"classId"`
}

func (r CreateAnnouncementRequest) Build() (*model.Announcement, []model.Link, error) {
	date, err := ParseTime("date", r.Date)
	if err != nil {
		return nil, nil, err
	}
	return &model.Announcement{
		Title:       r.Title,
		Description: nonEmpty(r.Description),
		Date:        date,
		ClassID:     positive(r.ClassID),
	}, nil, nil
}

// UpdateAnnouncementRequest PUT /api/announcements/:id
type UpdateAnnouncementRequest struct {
	Title       *string           `json:"title" binding:"omitempty,min=1,max=200"`
	Description Optional[string]  `json:"description"`
	Date        *string           `json:"date"`
	ClassID     Optional[FlexInt] `json:"classId"`
}

func (r UpdateAnnouncementRequest) Apply(a *model.Announcement) ([]model.Link, error) {
	if r.Title != nil {
		a.Title = *r.Title
	}
	applyNullableString(&a.Description, r.Description)
	if err := patchTime(&a.Date, "date", r.Date); err != nil {
		return nil, err
	}
	applyNullableInt(&a.ClassID, r.ClassID)
	return nil, nil
}
