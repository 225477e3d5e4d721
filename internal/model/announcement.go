package model

import "time"

// Announcement, table announcements
type Announcement struct {
	ID          int       `gorm:"primaryKey"                  json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description *string   `gorm:"type:text"                   json:"description"`
	Date        time.Time `gorm:"not null"                    json:"date"`
	ClassID     *int      `json:"classId"`
	Timestamps
	RefCounts

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (Announcement) TableName() string { return "announcements" }

func (a *Announcement) Key() interface{} { return a.ID }
