package dto

import "github.com/polinatih/school-proj/internal/model"

// ── classes ──

// CreateClassRequest POST /api/classes
type CreateClassRequest struct {
	Name         string   `json:"name"         binding:"required,max=100"`
	Capacity     *FlexInt `json:"capacity"     binding:"required"`
	GradeID      *FlexInt `json:"gradeId"      binding:"required"`
	SupervisorID *string  `json:"supervisorId"`
}

func (r CreateClassRequest) Build() (*model.Class, []model.Link, error) {
	return &model.Class{
		Name:         r.Name,
		Capacity:     r.Capacity.Int(),
		GradeID:      r.GradeID.Int(),
		SupervisorID: nonEmpty(r.SupervisorID),
	}, nil, nil
}

// UpdateClassRequest PUT /api/classes/:id. supervisorId: null detaches the
// supervisor.
type UpdateClassRequest struct {
	Name         *string          `json:"name"     binding:"omitempty,min=1,max=100"`
	Capacity     *FlexInt         `json:"capacity"`
	GradeID      *FlexInt         `json:"gradeId"`
	SupervisorID Optional[string] `json:"supervisorId"`
}

func (r UpdateClassRequest) Apply(c *model.Class) ([]model.Link, error) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Capacity != nil {
		c.Capacity = r.Capacity.Int()
	}
	if r.GradeID != nil {
		c.GradeID = r.GradeID.Int()
	}
	applyNullableString(&c.SupervisorID, r.SupervisorID)
	return nil, nil
}
