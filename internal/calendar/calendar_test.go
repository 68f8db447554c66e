package calendar

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDayIndexBoundaries(t *testing.T) {
	anchor := date("2026-10-08")
	start := StartDate(anchor)

	if got := DayIndex(anchor, start); got != 0 {
		t.Fatalf("DayIndex(start)=%d, want 0", got)
	}
	if got := DayIndex(anchor, start.AddDate(0, 0, -3)); got != 0 {
		t.Fatalf("DayIndex(before start)=%d, want 0 (clamped)", got)
	}
	if got := DayIndex(anchor, start.AddDate(0, 0, 5)); got != 5 {
		t.Fatalf("DayIndex(start+5)=%d, want 5", got)
	}
	if got := DayIndex(anchor, anchor); got != ProgramDays {
		t.Fatalf("DayIndex(anchor)=%d, want %d", got, ProgramDays)
	}
	// No upper clamp: overdue days keep counting.
	if got := DayIndex(anchor, anchor.AddDate(0, 0, 14)); got != ProgramDays+14 {
		t.Fatalf("DayIndex(anchor+14)=%d, want %d", got, ProgramDays+14)
	}
}

func TestDayIndexIgnoresTimeOfDay(t *testing.T) {
	anchor := date("2026-10-08")
	start := StartDate(anchor)

	lateNight := start.AddDate(0, 0, 3).Add(23*time.Hour + 59*time.Minute)
	if got := DayIndex(anchor, lateNight); got != 3 {
		t.Fatalf("DayIndex(day 3, 23:59)=%d, want 3", got)
	}
	midnight := start.AddDate(0, 0, 4)
	if got := DayIndex(anchor, midnight); got != 4 {
		t.Fatalf("DayIndex(day 4, 00:00)=%d, want 4", got)
	}
}

func TestDateForIndexRoundTrip(t *testing.T) {
	anchor := date("2026-10-08")
	for _, day := range []int{0, 1, 7, 100, 279, 280} {
		d := DateForIndex(anchor, day)
		if got := DayIndex(anchor, d); got != day {
			t.Fatalf("round trip day %d: got %d", day, got)
		}
	}
	if got := DateForIndex(anchor, ProgramDays); !got.Equal(anchor) {
		t.Fatalf("DateForIndex(ProgramDays)=%s, want anchor", got)
	}
}

func TestWeek(t *testing.T) {
	cases := []struct {
		day  int
		want int
	}{
		{0, 1},
		{6, 1},
		{7, 2},
		{279, 40},
		{293, 42},
		{400, 42}, // capped
	}
	for _, c := range cases {
		if got := Week(c.day); got != c.want {
			t.Fatalf("Week(%d)=%d, want %d", c.day, got, c.want)
		}
	}
}

func TestParseAnchor(t *testing.T) {
	if _, err := ParseAnchor("2026-10-08"); err != nil {
		t.Fatalf("ParseAnchor valid: %v", err)
	}
	if _, err := ParseAnchor(" 2026-10-08 "); err != nil {
		t.Fatalf("ParseAnchor trims whitespace: %v", err)
	}
	for _, bad := range []string{"", "not-a-date", "08/10/2026", "2026-13-40"} {
		if _, err := ParseAnchor(bad); err == nil {
			t.Fatalf("ParseAnchor(%q): expected error", bad)
		}
	}
}

func TestMapperSimulation(t *testing.T) {
	anchor := date("2026-10-08")
	fixed := StartDate(anchor).AddDate(0, 0, 12)
	m := NewMapper(anchor, func() time.Time { return fixed })

	if got := m.EffectiveDayIndex(); got != 12 {
		t.Fatalf("real clock index=%d, want 12", got)
	}
	m.Simulate(40)
	if !m.Simulated() {
		t.Fatalf("expected simulated mode")
	}
	if got := m.EffectiveDayIndex(); got != 40 {
		t.Fatalf("simulated index=%d, want 40", got)
	}
	if got := m.EffectiveDate(); got != DateForIndex(anchor, 40).Format(DateLayout) {
		t.Fatalf("EffectiveDate=%s", got)
	}
	m.Simulate(-5)
	if got := m.EffectiveDayIndex(); got != 0 {
		t.Fatalf("negative simulated index=%d, want 0", got)
	}
	m.ClearSimulation()
	if got := m.EffectiveDayIndex(); got != 12 {
		t.Fatalf("after clear index=%d, want 12", got)
	}
}
