package model

// Admin back-office account, table admins
type Admin struct {
	ID       int    `gorm:"primaryKey"                  json:"id"`
	Username string `gorm:"type:varchar(100);not null" json:"username"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Timestamps
	RefCounts
}

func (Admin) TableName() string { return "admins" }

func (a *Admin) Key() interface{} { return a.ID }
