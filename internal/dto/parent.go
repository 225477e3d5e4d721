package dto

import (
	"github.com/google/uuid"

	"github.com/polinatih/school-proj/internal/model"
)

// ── parents ──

// CreateParentRequest POST /api/parents
type CreateParentRequest struct {
	ID       string  `json:"id"`
	Username string  `json:"username" binding:"required,max=100"`
	Name     string  `json:"name"     binding:"required,max=100"`
	Surname  string  `json:"surname"  binding:"required,max=100"`
	Phone    string  `json:"phone"    binding:"required,max=50"`
	Email    *string `json:"email"    binding:"omitempty,max=255"`
	Address  *string `json:"address"  binding:"omitempty,max=255"`
}

func (r CreateParentRequest) Build() (*model.Parent, []model.Link, error) {
	p := &model.Parent{
		ID:       r.ID,
		Username: r.Username,
		Name:     r.Name,
		Surname:  r.Surname,
		Phone:    r.Phone,
		Email:    nonEmpty(r.Email),
		Address:  nonEmpty(r.Address),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p, nil, nil
}

// UpdateParentRequest PUT /api/parents/:id
type UpdateParentRequest struct {
	Username *string          `json:"username" binding:"omitempty,min=1,max=100"`
	Name     *string          `json:"name"     binding:"omitempty,min=1,max=100"`
	Surname  *string          `json:"surname"  binding:"omitempty,min=1,max=100"`
	Phone    *string          `json:"phone"    binding:"omitempty,min=1,max=50"`
	Email    Optional[string] `json:"email"`
	Address  Optional[string] `json:"address"`
}

func (r UpdateParentRequest) Apply(p *model.Parent) ([]model.Link, error) {
	if r.Username != nil {
		p.Username = *r.Username
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Surname != nil {
		p.Surname = *r.Surname
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	applyNullableString(&p.Email, r.Email)
	applyNullableString(&p.Address, r.Address)
	return nil, nil
}
