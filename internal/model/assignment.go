package model

import "time"

// Assignment homework with a due date, table assignments
type Assignment struct {
	ID        int       `gorm:"primaryKey"                  json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	StartDate time.Time `gorm:"not null"                    json:"startDate"`
	DueDate   time.Time `gorm:"not null"                    json:"dueDate"`
	LessonID  int       `gorm:"not null"                    json:"lessonId"`
	Timestamps
	RefCounts

	Lesson  *Lesson  `gorm:"foreignKey:LessonID"     json:"lesson,omitempty"`
	Results []Result `gorm:"foreignKey:AssignmentID" json:"results,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }

func (a *Assignment) Key() interface{} { return a.ID }
