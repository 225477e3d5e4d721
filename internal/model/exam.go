package model

import "time"

// Exam, table exams
type Exam struct {
	ID        int       `gorm:"primaryKey"                  json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	StartTime time.Time `gorm:"not null"                    json:"startTime"`
	EndTime   time.Time `gorm:"not null"                    json:"endTime"`
	LessonID  int       `gorm:"not null"                    json:"lessonId"`
	Timestamps
	RefCounts

	Lesson  *Lesson  `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Results []Result `gorm:"foreignKey:ExamID"   json:"results,omitempty"`
}

func (Exam) TableName() string { return "exams" }

func (e *Exam) Key() interface{} { return e.ID }
