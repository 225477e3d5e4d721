package model

import "time"

// Entity is implemented by every table model (on its pointer).
type Entity interface {
	// Key returns the primary key value with its column type (int or string).
	Key() interface{}
	// SetCount stores one aggregated child count under name.
	SetCount(name string, n int64)
}

// Timestamps are the audit columns carried by every table.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// RefCounts holds child counts computed by the store, rendered as "_count".
type RefCounts struct {
	Count map[string]int64 `gorm:"-" json:"_count,omitempty"`
}

// SetCount implements Entity.
func (r *RefCounts) SetCount(name string, n int64) {
	if r.Count == nil {
		r.Count = make(map[string]int64)
	}
	r.Count[name] = n
}

// Link describes a many-to-many write against a join table: the owner's
// rows in Table are replaced by one row per target id.
type Link struct {
	Table        string
	OwnerColumn  string
	TargetColumn string
	TargetIDs    []interface{}
}

// Weekdays in lesson order.
var Weekdays = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// IsWeekday reports whether day is one of Weekdays.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Sexes accepted for people records.
const (
	SexMale   = "male"
	SexFemale = "female"
)
