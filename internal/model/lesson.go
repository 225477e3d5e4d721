package model

import "time"

// Lesson weekly timetable slot, table lessons
type Lesson struct {
	ID        int       `gorm:"primaryKey"                  json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Day       string    `gorm:"type:varchar(10);not null"  json:"day"`
	StartTime time.Time `gorm:"not null"                    json:"startTime"`
	EndTime   time.Time `gorm:"not null"                    json:"endTime"`
	SubjectID int       `gorm:"not null"                    json:"subjectId"`
	ClassID   int       `gorm:"not null"                    json:"classId"`
	TeacherID string    `gorm:"type:text;not null"          json:"teacherId"`
	Timestamps
	RefCounts

	Subject     *Subject     `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Class       *Class       `gorm:"foreignKey:ClassID"   json:"class,omitempty"`
	Teacher     *Teacher     `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Exams       []Exam       `gorm:"foreignKey:LessonID"  json:"exams,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:LessonID"  json:"assignments,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:LessonID"  json:"attendances,omitempty"`
}

func (Lesson) TableName() string { return "lessons" }

func (l *Lesson) Key() interface{} { return l.ID }
