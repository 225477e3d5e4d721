package dto

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/polinatih/school-proj/internal/model"
)

// ── admins ──

// CreateAdminRequest POST /api/admins
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (r CreateAdminRequest) Build() (*model.Admin, []model.Link, error) {
	hash, err := HashPassword(r.Password)
	if err != nil {
		return nil, nil, err
	}
	return &model.Admin{
		Username: strings.TrimSpace(r.Username),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hash,
	}, nil, nil
}

// UpdateAdminRequest PUT /api/admins/:id
type UpdateAdminRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

func (r UpdateAdminRequest) Apply(a *model.Admin) ([]model.Link, error) {
	if r.Username != nil {
		a.Username = strings.TrimSpace(*r.Username)
	}
	if r.Email != nil {
		a.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	// an unchanged password keeps its hash, so repeating an update is a no-op
	if r.Password != nil && !CheckPassword(a.Password, *r.Password) {
		hash, err := HashPassword(*r.Password)
		if err != nil {
			return nil, err
		}
		a.Password = hash
	}
	return nil, nil
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a plain password.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
