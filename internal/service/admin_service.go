package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// NewAdminService creates the admin accounts service. The password hash
// never leaves the model.
func NewAdminService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Admin] {
	return NewResource(repo.Admin, Descriptor[model.Admin]{
		Meta:          Meta{Name: "Admin", Plural: "admins", Required: []string{"username", "email", "password"}},
		IntID:         true,
		SearchColumns: []string{"username", "email"},
		Order:         "username asc",
		Conflict:      "Admin with this username or email already exists",
	}, logger)
}
