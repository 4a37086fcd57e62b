package resample

import (
	"fmt"
	"strings"
	"time"
)

// Level represents the time bucket size
type Level string

const (
	LevelHourly  Level = "1h"
	LevelDaily   Level = "1d"
	LevelWeekly  Level = "1w"
	LevelMonthly Level = "1M"
	LevelYearly  Level = "1y"
)

// ParseLevel accepts a calendar level (1h, 1d, 1w, 1M, 1y) or any
// positive Go duration such as "15m" or "4h".
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelHourly, LevelDaily, LevelWeekly, LevelMonthly, LevelYearly:
		return Level(s), nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	if d <= 0 {
		return "", fmt.Errorf("%w: %q must be positive", ErrInvalidLevel, s)
	}
	return Level(d.String()), nil
}

// Truncate returns the start of the bucket holding t, in t's location
func (l Level) Truncate(t time.Time) time.Time {
	switch l {
	case LevelDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case LevelWeekly:
		// Weeks start on Monday
		day := TruncateToDay(t)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case LevelMonthly:
		return TruncateToMonth(t)
	case LevelYearly:
		return TruncateToYear(t)
	}
	return t.Truncate(l.Duration())
}

// Duration returns the nominal length of a bucket
func (l Level) Duration() time.Duration {
	switch l {
	case LevelHourly:
		return time.Hour
	case LevelDaily:
		return 24 * time.Hour
	case LevelWeekly:
		return 7 * 24 * time.Hour
	case LevelMonthly:
		return 30 * 24 * time.Hour
	case LevelYearly:
		return 365 * 24 * time.Hour
	}
	d, err := time.ParseDuration(string(l))
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// TruncateToDay truncates time to midnight
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TruncateToMonth truncates time to the start of the month
func TruncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TruncateToYear truncates time to the start of the year
func TruncateToYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}
