package model

import "time"

// Attendance presence of a student at a lesson on a date, table attendances
type Attendance struct {
	ID        int       `gorm:"primaryKey"         json:"id"`
	Date      time.Time `gorm:"not null"           json:"date"`
	Present   bool      `gorm:"not null"           json:"present"`
	StudentID string    `gorm:"type:text;not null" json:"studentId"`
	LessonID  int       `gorm:"not null"           json:"lessonId"`
	Timestamps
	RefCounts

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Lesson  *Lesson  `gorm:"foreignKey:LessonID"  json:"lesson,omitempty"`
}

func (Attendance) TableName() string { return "attendances" }

func (a *Attendance) Key() interface{} { return a.ID }
