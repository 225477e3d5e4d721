package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/polinatih/school-proj/internal/model"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// Creator builds a new record from a create request.
type Creator[T any] interface {
	Build() (*T, []model.Link, error)
}

// Patcher applies an update request onto a loaded record. Only supplied
// fields change.
type Patcher[T any] interface {
	Apply(rec *T) ([]model.Link, error)
}

// ── FlexInt ──

// FlexInt is an integer that also accepts a numeric JSON string, as sent
// by HTML forms.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && f == float64(int(f)) {
			*n = FlexInt(int(f))
			return nil
		}
		return fmt.Errorf("invalid integer %s", string(b))
	}
	*n = FlexInt(v)
	return nil
}

// Int returns the plain value.
func (n FlexInt) Int() int { return int(n) }

// IntPtr converts an optional FlexInt.
func IntPtr(n *FlexInt) *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

// Ints converts a FlexInt slice.
func Ints(ns []FlexInt) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = int(n)
	}
	return out
}

// ── Optional ──

// Optional distinguishes an absent field from an explicit null in a patch.
type Optional[V any] struct {
	Set   bool
	Null  bool
	Value V
}

func (o *Optional[V]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// applyNullableString patches a nullable text column; null and "" clear it.
func applyNullableString(dst **string, o Optional[string]) {
	if !o.Set {
		return
	}
	*dst = nonEmpty(&o.Value)
	if o.Null {
		*dst = nil
	}
}

// applyNullableInt patches a nullable reference column.
func applyNullableInt(dst **int, o Optional[FlexInt]) {
	if !o.Set {
		return
	}
	if o.Null || o.Value == 0 {
		*dst = nil
		return
	}
	v := int(o.Value)
	*dst = &v
}

// nonEmpty maps nil and "" to nil.
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ── dates ──

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC 3339, local date-time and plain date forms.
func ParseTime(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pkgerrors.Validation("Invalid date for " + field)
}

// patchTime parses s into dst when s is supplied.
func patchTime(dst *time.Time, field string, s *string) error {
	if s == nil {
		return nil
	}
	t, err := ParseTime(field, *s)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

// ── enums ──

// ParseSex normalizes the sex field.
func ParseSex(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case model.SexMale, model.SexFemale:
		return v, nil
	default:
		return "", pkgerrors.Validation("Invalid sex")
	}
}

// ParseDay upper-cases and checks a weekday.
func ParseDay(s string) (string, error) {
	d := strings.ToUpper(strings.TrimSpace(s))
	if !model.IsWeekday(d) {
		return "", pkgerrors.Validation("Invalid day")
	}
	return d, nil
}
