package repository

import (
	"gorm.io/gorm"

	"github.com/polinatih/school-proj/internal/model"
)

// Repository aggregates one Store per table.
type Repository struct {
	Grade        Store[model.Grade]
	Admin        Store[model.Admin]
	Teacher      Store[model.Teacher]
	Subject      Store[model.Subject]
	Class        Store[model.Class]
	Parent       Store[model.Parent]
	Student      Store[model.Student]
	Lesson       Store[model.Lesson]
	Exam         Store[model.Exam]
	Assignment   Store[model.Assignment]
	Result       Store[model.Result]
	Attendance   Store[model.Attendance]
	Event        Store[model.Event]
	Announcement Store[model.Announcement]
}

// NewRepository wires gorm stores for every table.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Grade:        NewStore[model.Grade](db),
		Admin:        NewStore[model.Admin](db),
		Teacher:      NewStore[model.Teacher](db),
		Subject:      NewStore[model.Subject](db),
		Class:        NewStore[model.Class](db),
		Parent:       NewStore[model.Parent](db),
		Student:      NewStore[model.Student](db),
		Lesson:       NewStore[model.Lesson](db),
		Exam:         NewStore[model.Exam](db),
		Assignment:   NewStore[model.Assignment](db),
		Result:       NewStore[model.Result](db),
		Attendance:   NewStore[model.Attendance](db),
		Event:        NewStore[model.Event](db),
		Announcement: NewStore[model.Announcement](db),
	}
}
