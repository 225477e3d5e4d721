package model

import "time"

// Event school or class event, table events
type Event struct {
	ID          int       `gorm:"primaryKey"                  json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description *string   `gorm:"type:text"                   json:"description"`
	StartTime   time.Time `gorm:"not null"                    json:"startTime"`
	EndTime     time.Time `gorm:"not null"                    json:"endTime"`
	ClassID     *int      `json:"classId"`
	Timestamps
	RefCounts

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (Event) TableName() string { return "events" }

func (e *Event) Key() interface{} { return e.ID }
