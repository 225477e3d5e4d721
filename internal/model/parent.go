package model

// Parent guardian of one or more students, table parents
type Parent struct {
	ID       string  `gorm:"type:text;primaryKey"       json:"id"`
	Username string  `gorm:"type:varchar(100);not null" json:"username"`
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	Surname  string  `gorm:"type:varchar(100);not null" json:"surname"`
	Email    *string `gorm:"type:varchar(255)"          json:"email"`
	Phone    string  `gorm:"type:varchar(50);not null"  json:"phone"`
	Address  *string `gorm:"type:varchar(255)"          json:"address"`
	Timestamps
	RefCounts

	Students []Student `gorm:"foreignKey:ParentID" json:"students,omitempty"`
}

func (Parent) TableName() string { return "parents" }

func (p *Parent) Key() interface{} { return p.ID }

// FullName "Name Surname".
func (p *Parent) FullName() string { return p.Name + " " + p.Surname }
