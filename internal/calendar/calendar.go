// Package calendar maps the countdown anchor date to day indexes and back.
// The program runs ProgramDays days; day 0 is the start, the anchor date is
// the target the countdown runs toward.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	// ProgramDays is the fixed length of the countdown program.
	ProgramDays = 280

	// MaxWeek caps the derived week number.
	MaxWeek = 42

	// DateLayout is the canonical date format used across the ledger.
	DateLayout = "2006-01-02"
)

// ParseAnchor parses a user-supplied anchor (target) date.
func ParseAnchor(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid anchor date %q: %w", s, err)
	}
	return t, nil
}

// StartDate is the calendar date of day 0.
func StartDate(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, -ProgramDays)
}

// DateForIndex returns the calendar date corresponding to a day index.
func DateForIndex(anchor time.Time, day int) time.Time {
	return anchor.AddDate(0, 0, -(ProgramDays - day))
}

// DayIndex computes the day index in force at the given wall-clock time.
// It is clamped at 0 for times before the program start; there is no upper
// clamp since the program keeps issuing overdue missions past the anchor.
func DayIndex(anchor, now time.Time) int {
	start := truncateToDay(StartDate(anchor))
	days := int(truncateToDay(now).Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Week derives the 1-based program week for a day index, capped at MaxWeek.
func Week(day int) int {
	w := 1 + day/7
	if w > MaxWeek {
		return MaxWeek
	}
	return w
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Mapper resolves the effective day index from either the real clock or an
// operator-set simulated day. The zero value is not usable; construct with
// NewMapper.
type Mapper struct {
	anchor    time.Time
	now       func() time.Time
	simulated *int
}

func NewMapper(anchor time.Time, now func() time.Time) *Mapper {
	if now == nil {
		now = time.Now
	}
	return &Mapper{anchor: anchor, now: now}
}

// Simulate pins the effective day index to an explicit value. Negative input
// is clamped to 0.
func (m *Mapper) Simulate(day int) {
	if day < 0 {
		day = 0
	}
	m.simulated = &day
}

// ClearSimulation returns the mapper to the real clock.
func (m *Mapper) ClearSimulation() {
	m.simulated = nil
}

// Simulated reports whether the mapper is pinned to a simulated day.
func (m *Mapper) Simulated() bool { return m.simulated != nil }

// EffectiveDayIndex returns the day index currently in force.
func (m *Mapper) EffectiveDayIndex() int {
	if m.simulated != nil {
		return *m.simulated
	}
	return DayIndex(m.anchor, m.now())
}

// EffectiveDate returns the canonical date string for the effective day index.
func (m *Mapper) EffectiveDate() string {
	return DateForIndex(m.anchor, m.EffectiveDayIndex()).Format(DateLayout)
}

// DateFor formats the calendar date for an arbitrary day index.
func (m *Mapper) DateFor(day int) string {
	return DateForIndex(m.anchor, day).Format(DateLayout)
}

// Anchor returns the configured anchor date.
func (m *Mapper) Anchor() time.Time { return m.anchor }
