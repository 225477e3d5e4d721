package model

import "time"

// Teacher, table teachers
type Teacher struct {
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
	Timestamps
	RefCounts

	Subjects []Subject `gorm:"many2many:subject_teachers" json:"subjects,omitempty"`
	Lessons  []Lesson  `gorm:"foreignKey:TeacherID"       json:"lessons,omitempty"`
	Classes  []Class   `gorm:"foreignKey:SupervisorID"    json:"classes,omitempty"`
}

func (Teacher) TableName() string { return "teachers" }

func (t *Teacher) Key() interface{} { return t.ID }

// FullName "Name Surname".
func (t *Teacher) FullName() string { return t.Name + " " + t.Surname }
