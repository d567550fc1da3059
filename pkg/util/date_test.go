package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-10-12T13:00:00Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2025, 10, 12, 13, 0, 0, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		month time.Month
		phase SeasonPhase
	}{
		{time.January, PhaseReg},
		{time.February, PhaseReg},
		{time.March, PhasePre},
		{time.May, PhasePre},
		{time.June, PhasePost},
		{time.August, PhasePost},
		{time.September, PhaseReg},
		{time.December, PhaseReg},
	}
	for _, c := range cases {
		year, phase := CurrentSeason(time.Date(2025, c.month, 10, 0, 0, 0, 0, time.UTC))
		if year != 2025 {
			t.Fatalf("month %v: unexpected year %d", c.month, year)
		}
		if phase != c.phase {
			t.Fatalf("month %v: got %s want %s", c.month, phase, c.phase)
		}
	}
}
