package domain

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a calendar date (2006-01-02) into a UTC midnight date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", s, ErrValidation)
	}
	return NewDate(t), nil
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// ParseClock parses a time of day in 15:04 or 15:04:05 form.
func ParseClock(s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q: %w", s, ErrValidation)
}

func FormatClock(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// TimeRange is a half-open [Start, End) interval within one day.
type TimeRange struct {
	Start datatypes.Time
	End   datatypes.Time
}

func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, err
	}
	r := TimeRange{Start: s, End: e}
	if !r.Valid() {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return r, nil
}

func (r TimeRange) Valid() bool {
	return r.End > r.Start
}

// Overlaps reports whether the two ranges share an instant. Ranges that only
// touch at an endpoint do not overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r TimeRange) String() string {
	return FormatClock(r.Start) + "-" + FormatClock(r.End)
}
