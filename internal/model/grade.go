package model

import "strconv"

// Grade school year level, table grades
type Grade struct {
	ID    int `gorm:"primaryKey"     json:"id"`
	Level int `gorm:"not null;unique" json:"level"`
	Timestamps
	RefCounts

	Classes  []Class   `gorm:"foreignKey:GradeID" json:"classes,omitempty"`
	Students []Student `gorm:"foreignKey:GradeID" json:"students,omitempty"`
}

func (Grade) TableName() string { return "grades" }

func (g *Grade) Key() interface{} { return g.ID }

func (g *Grade) String() string { return "Grade " + strconv.Itoa(g.Level) }
