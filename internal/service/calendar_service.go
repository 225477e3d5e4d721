package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// ── iCalendar feed and import ──────────────────────────────
//
// Export: events (school-wide plus the class's own) and exams as one
// VCALENDAR. Exams are scoped to a class through their lesson.
// Import: every VEVENT with a summary and a start becomes an Event.
// DTEND wins over DURATION; an event without either is skipped.
// ───────────────────────────────────────────────────────────

const (
	// MaxCalendarSize bounds .ics uploads.
	MaxCalendarSize = 5 << 20
	// maxImportEvents caps one import.
	maxImportEvents = 500
	// calendarLookback is how far back the feed reaches without "from".
	calendarLookback = 30 * 24 * time.Hour
)

const calendarProductID = "-//school-proj//calendar//EN"

// CalendarService renders and imports iCalendar data.
type CalendarService interface {
	ExportCalendar(ctx context.Context, req *dto.CalendarExportRequest) ([]byte, string, error)
	ImportEvents(ctx context.Context, req *dto.CalendarImportRequest, r io.Reader) (*dto.CalendarImportResponse, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// ────────────────────── Export ──────────────────────

func (s *calendarService) ExportCalendar(ctx context.Context, req *dto.CalendarExportRequest) ([]byte, string, error) {
	from := clock().Add(-calendarLookback)
	if strings.TrimSpace(req.From) != "" {
		t, err := dto.ParseTime("from", req.From)
		if err != nil {
			return nil, "", err
		}
		from = t
	}

	eventQ := repository.ListQuery{
		Limit:      exportRowLimit,
		Order:      "start_time asc",
		Conditions: []repository.Condition{repository.Where("end_time >= ?", from)},
		Preloads:   []repository.Preload{{Path: "Class"}},
	}
	examQ := repository.ListQuery{
		Limit:      exportRowLimit,
		Order:      "start_time asc",
		Conditions: []repository.Condition{repository.Where("end_time >= ?", from)},
		Preloads:   []repository.Preload{{Path: "Lesson"}, {Path: "Lesson.Subject"}, {Path: "Lesson.Class"}},
	}
	filename := "calendar.ics"
	if req.ClassID > 0 {
		eventQ.Conditions = append(eventQ.Conditions, repository.Where("(class_id = ? OR class_id IS NULL)", req.ClassID))
		examQ.Conditions = append(examQ.Conditions, repository.Where("lesson_id IN (SELECT id FROM lessons WHERE class_id = ?)", req.ClassID))
		filename = "calendar-class-" + strconv.Itoa(req.ClassID) + ".ics"
	}

	events, _, err := s.repo.Event.List(ctx, eventQ)
	if err != nil {
		s.logger.Error("export calendar: list events failed", zap.Error(err))
		return nil, "", pkgerrors.Internal("Failed to export calendar", err)
	}
	exams, _, err := s.repo.Exam.List(ctx, examQ)
	if err != nil {
		s.logger.Error("export calendar: list exams failed", zap.Error(err))
		return nil, "", pkgerrors.Internal("Failed to export calendar", err)
	}

	return []byte(buildCalendar(events, exams)), filename, nil
}

func buildCalendar(events []model.Event, exams []model.Exam) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	for i := range events {
		e := &events[i]
		vevent := cal.AddEvent(fmt.Sprintf("event-%d@school-proj", e.ID))
		stampEvent(vevent, e.CreatedAt, e.UpdatedAt, e.StartTime, e.EndTime)
		vevent.SetSummary(e.Title)
		if e.Description != nil && *e.Description != "" {
			vevent.SetDescription(*e.Description)
		}
		if e.Class != nil {
			vevent.SetLocation("Class " + e.Class.Name)
		}
	}

	for i := range exams {
		x := &exams[i]
		vevent := cal.AddEvent(fmt.Sprintf("exam-%d@school-proj", x.ID))
		stampEvent(vevent, x.CreatedAt, x.UpdatedAt, x.StartTime, x.EndTime)
		vevent.SetSummary("Exam: " + x.Title)
		if l := x.Lesson; l != nil {
			desc := l.Name
			if l.Subject != nil {
				desc = l.Subject.Name + " / " + l.Name
			}
			vevent.SetDescription(desc)
			if l.Class != nil {
				vevent.SetLocation("Class " + l.Class.Name)
			}
		}
	}

	return cal.Serialize()
}

func stampEvent(v *ics.VEvent, created, updated, start, end time.Time) {
	v.SetDtStampTime(clock().UTC())
	if !created.IsZero() {
		v.SetCreatedTime(created.UTC())
	}
	if !updated.IsZero() {
		v.SetModifiedAt(updated.UTC())
	}
	v.SetStartAt(start.UTC())
	v.SetEndAt(end.UTC())
}

// ────────────────────── Import ──────────────────────

func (s *calendarService) ImportEvents(ctx context.Context, req *dto.CalendarImportRequest, r io.Reader) (*dto.CalendarImportResponse, error) {
	var classID *int
	if req.ClassID > 0 {
		if _, err := s.repo.Class.Get(ctx, req.ClassID, repository.GetQuery{}); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, pkgerrors.NotFound("Class not found")
			}
			s.logger.Error("import events: class lookup failed", zap.Error(err))
			return nil, pkgerrors.Internal("Failed to import events", err)
		}
		id := req.ClassID
		classID = &id
	}

	parsed, skipped, err := ParseEvents(io.LimitReader(r, MaxCalendarSize), time.UTC)
	if err != nil {
		return nil, pkgerrors.Validation("Invalid calendar file")
	}
	if len(parsed) > maxImportEvents {
		return nil, pkgerrors.Validation(fmt.Sprintf("Calendar has more than %d events", maxImportEvents))
	}

	resp := &dto.CalendarImportResponse{Skipped: skipped, EventIDs: make([]int, 0, len(parsed))}
	for i := range parsed {
		ev := parsed[i]
		ev.ClassID = classID
		if err := s.repo.Event.Create(ctx, &ev); err != nil {
			if ce, ok := repository.AsConstraintError(err); ok && ce.Kind == repository.CheckViolation {
				resp.Skipped++
				continue
			}
			s.logger.Error("import events: create failed", zap.String("title", ev.Title), zap.Error(err))
			return nil, pkgerrors.Internal("Failed to import events", err)
		}
		resp.Created++
		resp.EventIDs = append(resp.EventIDs, ev.ID)
	}

	s.logger.Info("events imported",
		zap.Int("created", resp.Created),
		zap.Int("skipped", resp.Skipped),
		zap.Any("class_id", classID),
	)
	return resp, nil
}

// ParseEvents reads VEVENTs into unsaved events. skipped counts the
// components that lack a summary, a start, or a positive duration.
func ParseEvents(r io.Reader, loc *time.Location) ([]model.Event, int, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parse calendar: %w", err)
	}

	var (
		events  []model.Event
		skipped int
	)
	for _, vevent := range cal.Events() {
		ev, ok := parseVEvent(vevent, loc)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	return events, skipped, nil
}

func parseVEvent(v *ics.VEvent, loc *time.Location) (model.Event, bool) {
	summary := v.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return model.Event{}, false
	}

	start, err := parseICSDateTime(v, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return model.Event{}, false
	}
	end, err := parseICSDateTime(v, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		dur := v.GetProperty(ics.ComponentProperty(ics.PropertyDuration))
		if dur == nil {
			return model.Event{}, false
		}
		d, ok := parseICSDuration(dur.Value)
		if !ok {
			return model.Event{}, false
		}
		end = start.Add(d)
	}
	if !end.After(start) {
		return model.Event{}, false
	}

	ev := model.Event{
		Title:     unescapeText(strings.TrimSpace(summary.Value)),
		StartTime: start,
		EndTime:   end,
	}
	if desc := v.GetProperty(ics.ComponentPropertyDescription); desc != nil && strings.TrimSpace(desc.Value) != "" {
		d := unescapeText(strings.TrimSpace(desc.Value))
		ev.Description = &d
	}
	return ev, true
}

// parseICSDateTime reads a DATE or DATE-TIME property, honoring TZID.
// Floating times are read in loc.
func parseICSDateTime(v *ics.VEvent, prop ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	p := v.GetProperty(prop)
	if p == nil {
		return time.Time{}, fmt.Errorf("missing property %s", prop)
	}
	val := strings.TrimSpace(p.Value)

	tzid := ""
	for k, vals := range p.ICalParameters {
		if strings.EqualFold(k, "TZID") && len(vals) > 0 {
			tzid = vals[0]
		}
	}

	for _, layout := range []string{"20060102T150405Z", "20060102T150405", "20060102"} {
		t, err := time.Parse(layout, val)
		if err != nil {
			continue
		}
		if strings.HasSuffix(layout, "Z") {
			return t.UTC(), nil
		}
		in := loc
		if tzid != "" {
			if tz, err := time.LoadLocation(tzid); err == nil {
				in = tz
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, in).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", val)
}

var icsDuration = regexp.MustCompile(`^\+?P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseICSDuration reads an RFC 5545 dur-value such as "PT1H30M" or "P1D".
func parseICSDuration(s string) (time.Duration, bool) {
	m := icsDuration.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, false
	}
	units := []time.Duration{7 * 24 * time.Hour, 24 * time.Hour, time.Hour, time.Minute, time.Second}
	var d time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		d += time.Duration(n) * unit
	}
	return d, d > 0
}

var icsTextUnescaper = strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)

func unescapeText(s string) string {
	return icsTextUnescaper.Replace(s)
}
