package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// recentWindow bounds the announcements "recent" filter.
const recentWindow = 30 * 24 * time.Hour

// clock is replaced in tests.
var clock = time.Now

// NewEventService creates the calendar events service. An event without a
// class is school-wide.
func NewEventService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Event] {
	return NewResource(repo.Event, Descriptor[model.Event]{
		Meta:          Meta{Name: "Event", Plural: "events", Required: []string{"title", "startTime", "endTime"}},
		IntID:         true,
		SearchColumns: []string{"title"},
		Filters: []Filter{
			IntFilter("classId", "class_id"),
			FlagFilter("upcoming", func() repository.Condition {
				return repository.Where("start_time >= ?", clock())
			}),
		},
		Order:        "start_time desc",
		ListPreloads: []repository.Preload{{Path: "Class"}, {Path: "Class.Grade"}},
		DetailPreloads: []repository.Preload{
			{Path: "Class"},
			{Path: "Class.Grade"},
			{Path: "Class.Students", Order: "surname asc"},
		},
		WritePreloads: []repository.Preload{{Path: "Class"}},
		References:    map[string]string{"fk_events_class": "Class not found"},
		Checks:        map[string]string{"chk_events_time_range": "End time must be after start time"},
		Validate: func(e *model.Event) error {
			if !e.EndTime.After(e.StartTime) {
				return pkgerrors.Validation("End time must be after start time")
			}
			return nil
		},
	}, logger)
}

// NewAnnouncementService creates the announcements service. Notices may
// be scoped to one class.
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) ResourceService[model.Announcement] {
	return NewResource(repo.Announcement, Descriptor[model.Announcement]{
		Meta:          Meta{Name: "Announcement", Plural: "announcements", Required: []string{"title", "date"}},
		IntID:         true,
		SearchColumns: []string{"title"},
		Filters: []Filter{
			IntFilter("classId", "class_id"),
			FlagFilter("recent", func() repository.Condition {
				return repository.Where("date >= ?", clock().Add(-recentWindow))
			}),
		},
		Order:        "date desc",
		ListPreloads: []repository.Preload{{Path: "Class"}, {Path: "Class.Grade"}},
		DetailPreloads: []repository.Preload{
			{Path: "Class"},
			{Path: "Class.Grade"},
			{Path: "Class.Students", Order: "surname asc"},
		},
		WritePreloads: []repository.Preload{{Path: "Class"}},
		References:    map[string]string{"fk_announcements_class": "Class not found"},
	}, logger)
}
