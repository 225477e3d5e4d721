package model

import "time"

// Student, table students
type Student struct {
	ID        string    `gorm:"type:text;primaryKey"       json:"id"`
	Username  string    `gorm:"type:varchar(100);not null" json:"username"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Surname   string    `gorm:"type:varchar(100);not null" json:"surname"`
	Email     *string   `gorm:"type:varchar(255)"          json:"email"`
	Phone     *string   `gorm:"type:varchar(50)"           json:"phone"`
	Address   *string   `gorm:"type:varchar(255)"          json:"address"`
	Img       *string   `gorm:"type:text"                  json:"img"`
	BloodType *string   `gorm:"type:varchar(10)"           json:"bloodType"`
	Sex       string    `gorm:"type:varchar(10);not null"  json:"sex"`
	Birthday  time.Time `gorm:"not null"                   json:"birthday"`
	ParentID  string    `gorm:"type:text;not null"         json:"parentId"`
	ClassID   int       `gorm:"not null"                   json:"classId"`
	GradeID   int       `gorm:"not null"                   json:"gradeId"`
	Timestamps
	RefCounts

	Parent      *Parent      `gorm:"foreignKey:ParentID"  json:"parent,omitempty"`
	Class       *Class       `gorm:"foreignKey:ClassID"   json:"class,omitempty"`
	Grade       *Grade       `gorm:"foreignKey:GradeID"   json:"grade,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:StudentID" json:"attendances,omitempty"`
	Results     []Result     `gorm:"foreignKey:StudentID" json:"results,omitempty"`
}

func (Student) TableName() string { return "students" }

func (s *Student) Key() interface{} { return s.ID }

// FullName "Name Surname".
func (s *Student) FullName() string { return s.Name + " " + s.Surname }
