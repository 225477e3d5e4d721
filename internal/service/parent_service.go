package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// NewParentService creates the parents service. A parent with enrolled
// students cannot be deleted.
func NewParentService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Parent] {
	return NewResource(repo.Parent, Descriptor[model.Parent]{
		Meta:          Meta{Name: "Parent", Plural: "parents", Required: []string{"username", "name", "surname", "phone"}},
		SearchColumns: []string{"name", "surname", "email", "phone"},
		Order:         "created_at desc",
		ListPreloads:  []repository.Preload{{Path: "Students"}, {Path: "Students.Class"}},
		DetailPreloads: []repository.Preload{
			{Path: "Students", Order: "surname asc"},
			{Path: "Students.Class"},
			{Path: "Students.Grade"},
		},
		WritePreloads: []repository.Preload{{Path: "Students"}},
		Counts:        []repository.Count{{Name: "students", Table: "students", Column: "parent_id"}},
		Dependents:    []repository.Count{{Name: "students", Table: "students", Column: "parent_id"}},
		DeleteBlocked: "Cannot delete parent with existing students",
		Conflict:      "Parent with this username or email already exists",
	}, logger)
}
