package dto

import "github.com/polinatih/school-proj/internal/model"

// ── grades ──

// CreateGradeRequest POST /api/grades
type CreateGradeRequest struct {
	Level *FlexInt `json:"level" binding:"required"`
}

func (r CreateGradeRequest) Build() (*model.Grade, []model.Link, error) {
	return &model.Grade{Level: r.Level.Int()}, nil, nil
}

// UpdateGradeRequest PUT /api/grades/:id
type UpdateGradeRequest struct {
	Level *FlexInt `json:"level"`
}

func (r UpdateGradeRequest) Apply(g *model.Grade) ([]model.Link, error) {
	if r.Level != nil {
		g.Level = r.Level.Int()
	}
	return nil, nil
}
