package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// NewSubjectService creates the subjects service. teacherIds replace the
// linked teacher set.
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Subject] {
	return NewResource(repo.Subject, Descriptor[model.Subject]{
		Meta:          Meta{Name: "Subject", Plural: "subjects", Required: []string{"name"}},
		IntID:         true,
		SearchColumns: []string{"name"},
		Order:         "name asc",
		ListPreloads:  []repository.Preload{{Path: "Teachers", Order: "surname asc"}},
		DetailPreloads: []repository.Preload{
			{Path: "Teachers", Order: "surname asc"},
			{Path: "Lessons"},
			{Path: "Lessons.Class"},
			{Path: "Lessons.Teacher"},
		},
		WritePreloads: []repository.Preload{{Path: "Teachers", Order: "surname asc"}},
		Counts: []repository.Count{
			{Name: "teachers", Table: "subject_teachers", Column: "subject_id"},
			{Name: "lessons", Table: "lessons", Column: "subject_id"},
		},
		Dependents:    []repository.Count{{Name: "lessons", Table: "lessons", Column: "subject_id"}},
		DeleteBlocked: "Cannot delete subject with existing lessons",
		Conflict:      "Subject with this name already exists",
		References: map[string]string{
			"fk_subject_teachers_teacher": "Teacher not found",
		},
	}, logger)
}
