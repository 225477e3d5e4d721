// Package seed loads a small demo data set: grades, one admin, two teachers
// with their subjects, two classes, and two families.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/model"
)

// Default admin credentials created by Run.
const (
	AdminUsername = "admin"
	AdminEmail    = "admin@school.com"
	AdminPassword = "admin123"
)

// GradeLevels are seeded in order; classes and students land in the first.
var GradeLevels = []int{1, 2, 3, 4, 5}

// Run inserts the demo records that are missing. Existing rows, matched by
// their unique column, are left untouched, so Run can be repeated.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		grades, err := seedGrades(tx)
		if err != nil {
			return err
		}
		logger.Info("grades seeded", zap.Int("count", len(grades)))

		if err := seedAdmin(tx); err != nil {
			return err
		}
		logger.Info("admin seeded", zap.String("username", AdminUsername))

		john := &model.Teacher{
			ID: "teacher1", Username: "teacher1", Name: "John", Surname: "Doe",
			Email: strPtr("john.doe@school.com"), Phone: strPtr("1234567890"), Address: strPtr("123 Main St"),
			Sex: model.SexMale, Birthday: date(1980, time.January, 1),
		}
		jane := &model.Teacher{
			ID: "teacher2", Username: "teacher2", Name: "Jane", Surname: "Smith",
			Email: strPtr("jane.smith@school.com"), Phone: strPtr("0987654321"), Address: strPtr("456 Oak Ave"),
			Sex: model.SexFemale, Birthday: date(1985, time.May, 15),
		}
		for _, t := range []*model.Teacher{john, jane} {
			if err := tx.Where(model.Teacher{Username: t.Username}).FirstOrCreate(t).Error; err != nil {
				return fmt.Errorf("seed teacher %s: %w", t.Username, err)
			}
		}
		logger.Info("teachers seeded")

		subjects := []struct {
			name    string
			teacher *model.Teacher
		}{
			{"Mathematics", john},
			{"English", jane},
		}
		for _, s := range subjects {
			sub := &model.Subject{Name: s.name}
			if err := tx.Where(model.Subject{Name: s.name}).FirstOrCreate(sub).Error; err != nil {
				return fmt.Errorf("seed subject %s: %w", s.name, err)
			}
			link := map[string]interface{}{"subject_id": sub.ID, "teacher_id": s.teacher.ID}
			if err := tx.Table("subject_teachers").Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
				return fmt.Errorf("link subject %s: %w", s.name, err)
			}
		}
		logger.Info("subjects seeded")

		first := grades[0].ID
		class1A := &model.Class{Name: "1A", Capacity: 20, GradeID: first, SupervisorID: &john.ID}
		class1B := &model.Class{Name: "1B", Capacity: 22, GradeID: first, SupervisorID: &jane.ID}
		for _, c := range []*model.Class{class1A, class1B} {
			if err := tx.Where(model.Class{Name: c.Name}).FirstOrCreate(c).Error; err != nil {
				return fmt.Errorf("seed class %s: %w", c.Name, err)
			}
		}
		logger.Info("classes seeded")

		michael := &model.Parent{
			ID: "parent1", Username: "parent1", Name: "Michael", Surname: "Johnson",
			Email: strPtr("michael.j@email.com"), Phone: "5551234567", Address: strPtr("789 Elm St"),
		}
		sarah := &model.Parent{
			ID: "parent2", Username: "parent2", Name: "Sarah", Surname: "Williams",
			Email: strPtr("sarah.w@email.com"), Phone: "5559876543", Address: strPtr("321 Pine Rd"),
		}
		for _, p := range []*model.Parent{michael, sarah} {
			if err := tx.Where(model.Parent{Username: p.Username}).FirstOrCreate(p).Error; err != nil {
				return fmt.Errorf("seed parent %s: %w", p.Username, err)
			}
		}
		logger.Info("parents seeded")

		students := []*model.Student{
			{
				ID: "student1", Username: "student1", Name: "Alex", Surname: "Johnson",
				Email: strPtr("alex.j@student.com"), Phone: strPtr("5551111111"), Address: strPtr("789 Elm St"),
				Sex: model.SexMale, Birthday: date(2010, time.March, 15),
				ParentID: michael.ID, ClassID: class1A.ID, GradeID: first,
			},
			{
				ID: "student2", Username: "student2", Name: "Emma", Surname: "Williams",
				Email: strPtr("emma.w@student.com"), Phone: strPtr("5552222222"), Address: strPtr("321 Pine Rd"),
				Sex: model.SexFemale, Birthday: date(2010, time.July, 22),
				ParentID: sarah.ID, ClassID: class1A.ID, GradeID: first,
			},
		}
		for _, s := range students {
			if err := tx.Where(model.Student{Username: s.Username}).FirstOrCreate(s).Error; err != nil {
				return fmt.Errorf("seed student %s: %w", s.Username, err)
			}
		}
		logger.Info("students seeded")
		return nil
	})
}

func seedGrades(tx *gorm.DB) ([]model.Grade, error) {
	grades := make([]model.Grade, len(GradeLevels))
	for i, level := range GradeLevels {
		grades[i] = model.Grade{Level: level}
		if err := tx.Where(model.Grade{Level: level}).FirstOrCreate(&grades[i]).Error; err != nil {
			return nil, fmt.Errorf("seed grade %d: %w", level, err)
		}
	}
	return grades, nil
}

func seedAdmin(tx *gorm.DB) error {
	var existing int64
	if err := tx.Model(&model.Admin{}).Where("email = ?", AdminEmail).Count(&existing).Error; err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if existing > 0 {
		return nil
	}
	hash, err := dto.HashPassword(AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.Admin{Username: AdminUsername, Email: AdminEmail, Password: hash}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
