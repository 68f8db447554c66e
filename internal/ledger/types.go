// Package ledger holds the authoritative progression state for one user and
// the pure mutation pipeline over it. Every operation is a snapshot
// transform: it takes a Ledger value and returns the next one, so callers
// can never observe a partial write.
package ledger

import (
	"strings"

	"missionlog/internal/catalog"
)

// State is the single lifecycle tag of a mission instance. Exactly one
// applies at a time; completed and failed are terminal (restore being the
// one sanctioned exception).
type State string

const (
	StateActive    State = "active"
	StatePostponed State = "postponed"
	StateScheduled State = "scheduled"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Priority orders instances within the active list. Restored missions run
// at highest priority: they are on their last chance.
type Priority string

const (
	PriorityNormal  Priority = ""
	PriorityHighest Priority = "highest"
)

// Instance is a mission template bound to lifecycle state.
type Instance struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	Points       int      `json:"points"`
	BigMilestone bool     `json:"big_milestone,omitempty"`
	Daily        bool     `json:"daily,omitempty"`
	State        State    `json:"state"`
	ScheduledDate string  `json:"scheduled_date,omitempty"`
	CompletedDate string  `json:"completed_date,omitempty"`
	RestoredCount int     `json:"restored_count,omitempty"`
	Penalized    bool     `json:"penalized,omitempty"`
	Priority     Priority `json:"priority,omitempty"`
}

// FromTemplate binds catalog content to a fresh active instance.
func FromTemplate(t catalog.Template) Instance {
	return Instance{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Category:     t.Category,
		Points:       t.Points,
		BigMilestone: t.BigMilestone,
		Daily:        true,
		State:        StateActive,
	}
}

// IsCustom reports whether the instance was authored by the user rather
// than emitted by the day catalog.
func (in Instance) IsCustom() bool {
	return strings.HasPrefix(in.ID, "custom_")
}

// Badge records one unlocked achievement.
type Badge struct {
	ID           string `json:"id"`
	UnlockedDate string `json:"unlocked_date"`
}

// Ledger is the per-user aggregate. All fields are value types or owned
// slices; mutations deep-copy before changing anything.
type Ledger struct {
	Points         int        `json:"points"`
	Streak         int        `json:"streak"`
	LastEngagement string     `json:"last_engagement,omitempty"`
	Watermark      int        `json:"watermark"`
	History        []Instance `json:"history,omitempty"`
	Postponed      []Instance `json:"postponed,omitempty"`
	Scheduled      []Instance `json:"scheduled,omitempty"`
	AccountedDayIDs []string  `json:"accounted_day_ids,omitempty"`
	CompletedIDs   []string   `json:"completed_ids,omitempty"`
	Badges         []Badge    `json:"badges,omitempty"`
}

func New() Ledger {
	return Ledger{}
}

// HasBadge reports whether an achievement id has already been unlocked.
func (l Ledger) HasBadge(id string) bool {
	for _, b := range l.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (l Ledger) accounted(id string) bool {
	for _, v := range l.AccountedDayIDs {
		if v == id {
			return true
		}
	}
	return false
}

// CompletedCount is the number of missions ever completed.
func (l Ledger) CompletedCount() int { return len(l.CompletedIDs) }

// clone deep-copies the snapshot so transforms never alias the input.
func (l Ledger) clone() Ledger {
	out := l
	out.History = append([]Instance(nil), l.History...)
	out.Postponed = append([]Instance(nil), l.Postponed...)
	out.Scheduled = append([]Instance(nil), l.Scheduled...)
	out.AccountedDayIDs = append([]string(nil), l.AccountedDayIDs...)
	out.CompletedIDs = append([]string(nil), l.CompletedIDs...)
	out.Badges = append([]Badge(nil), l.Badges...)
	return out
}

func removeByID(pool []Instance, id string) []Instance {
	out := pool[:0:0]
	for _, in := range pool {
		if in.ID != id {
			out = append(out, in)
		}
	}
	return out
}

func findByID(pool []Instance, id string) (Instance, bool) {
	for _, in := range pool {
		if in.ID == id {
			return in, true
		}
	}
	return Instance{}, false
}
