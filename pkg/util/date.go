package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// SeasonPhase labels the phase of the season derived from the calendar.
type SeasonPhase string

const (
	PhasePre  SeasonPhase = "PRE"
	PhaseReg  SeasonPhase = "REG"
	PhasePost SeasonPhase = "POST"
)

// CurrentSeason derives (year, phase) from the calendar date: months
// 9-12 and 1-2 map to the regular season of the containing year, 3-5 to
// preseason, 6-8 to postseason.
func CurrentSeason(now time.Time) (int, SeasonPhase) {
	switch now.Month() {
	case time.March, time.April, time.May:
		return now.Year(), PhasePre
	case time.June, time.July, time.August:
		return now.Year(), PhasePost
	default:
		return now.Year(), PhaseReg
	}
}
