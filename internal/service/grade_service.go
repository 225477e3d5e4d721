package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// NewGradeService creates the grades service. Grades are referenced by
// classes and students, so a grade in use cannot be deleted.
func NewGradeService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Grade] {
	return NewResource(repo.Grade, Descriptor[model.Grade]{
		Meta:  Meta{Name: "Grade", Plural: "grades", Required: []string{"level"}},
		IntID: true,
		Order: "level asc",
		DetailPreloads: []repository.Preload{
			{Path: "Classes", Order: "name asc"},
			{Path: "Students", Order: "surname asc"},
		},
		Counts: []repository.Count{
			{Name: "classes", Table: "classes", Column: "grade_id"},
			{Name: "students", Table: "students", Column: "grade_id"},
		},
		Dependents: []repository.Count{
			{Name: "classes", Table: "classes", Column: "grade_id"},
			{Name: "students", Table: "students", Column: "grade_id"},
		},
		DeleteBlocked: "Cannot delete grade with existing classes or students",
		Conflict:      "Grade with this level already exists",
		Validate: func(g *model.Grade) error {
			if g.Level <= 0 {
				return pkgerrors.Validation("Level must be a positive number")
			}
			return nil
		},
	}, logger)
}
