package model

// Class, table classes
type Class struct {
	ID           int     `gorm:"primaryKey"                  json:"id"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	Capacity     int     `gorm:"not null"                    json:"capacity"`
	GradeID      int     `gorm:"not null"                    json:"gradeId"`
	SupervisorID *string `gorm:"type:text"                   json:"supervisorId"`
	Timestamps
	RefCounts

	Grade         *Grade         `gorm:"foreignKey:GradeID"      json:"grade,omitempty"`
	Supervisor    *Teacher       `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Students      []Student      `gorm:"foreignKey:ClassID"      json:"students,omitempty"`
	Lessons       []Lesson       `gorm:"foreignKey:ClassID"      json:"lessons,omitempty"`
	Events        []Event        `gorm:"foreignKey:ClassID"      json:"events,omitempty"`
	Announcements []Announcement `gorm:"foreignKey:ClassID"      json:"announcements,omitempty"`
}

func (Class) TableName() string { return "classes" }

func (c *Class) Key() interface{} { return c.ID }
