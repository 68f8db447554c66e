package ledger

import (
	"time"

	"missionlog/internal/calendar"
	"missionlog/internal/catalog"
)

// CompleteReport describes what a completion changed.
type CompleteReport struct {
	PointsAwarded int
	Streak        int
}

// Complete moves an instance into history as completed, stamps it with the
// effective date, adds its points and recomputes the streak:
// same day unchanged, next day +1, longer gap resets to 1, first
// engagement ever starts at 1.
func Complete(l Ledger, in Instance, effectiveDate string) (Ledger, CompleteReport) {
	next := l.clone()

	next.Scheduled = removeByID(next.Scheduled, in.ID)
	next.Postponed = removeByID(next.Postponed, in.ID)
	next.History = removeByID(next.History, in.ID)

	done := in
	done.State = StateCompleted
	done.CompletedDate = effectiveDate
	done.Penalized = false
	next.History = append([]Instance{done}, next.History...)

	next.Points += in.Points
	next.CompletedIDs = append(next.CompletedIDs, in.ID)
	if in.Daily && !next.accounted(in.ID) {
		next.AccountedDayIDs = append(next.AccountedDayIDs, in.ID)
	}

	next.Streak = nextStreak(l.LastEngagement, effectiveDate, l.Streak)
	next.LastEngagement = effectiveDate

	return next, CompleteReport{PointsAwarded: in.Points, Streak: next.Streak}
}

func nextStreak(last, today string, streak int) int {
	if last == "" {
		return 1
	}
	lastDay, err1 := time.Parse(calendar.DateLayout, last)
	curDay, err2 := time.Parse(calendar.DateLayout, today)
	if err1 != nil || err2 != nil {
		return 1
	}
	switch diff := int(curDay.Sub(lastDay).Hours() / 24); {
	case diff == 0:
		return streak
	case diff == 1:
		return streak + 1
	default:
		return 1
	}
}

// Postpone moves an instance to the postponed pool with no target date.
// A daily mission is also accounted for so it does not resurface in the
// same day's active list.
func Postpone(l Ledger, in Instance) Ledger {
	next := l.clone()

	next.Scheduled = removeByID(next.Scheduled, in.ID)
	next.Postponed = removeByID(next.Postponed, in.ID)

	moved := in
	moved.State = StatePostponed
	moved.ScheduledDate = ""
	next.Postponed = append(next.Postponed, moved)

	if in.Daily && !next.accounted(in.ID) {
		next.AccountedDayIDs = append(next.AccountedDayIDs, in.ID)
	}
	return next
}

// Schedule moves an instance (active or postponed) into the scheduled pool
// with a target date.
func Schedule(l Ledger, in Instance, date string) Ledger {
	next := l.clone()

	next.Postponed = removeByID(next.Postponed, in.ID)
	next.Scheduled = removeByID(next.Scheduled, in.ID)

	moved := in
	moved.State = StateScheduled
	moved.ScheduledDate = date
	next.Scheduled = append(next.Scheduled, moved)

	if in.Daily && !next.accounted(in.ID) {
		next.AccountedDayIDs = append(next.AccountedDayIDs, in.ID)
	}
	return next
}

// Restore gives a failed instance a second chance: it leaves history, its
// failure flags are cleared, restoredCount is bumped and it re-enters the
// scheduled pool at highest priority with a new target date. This is the
// only operation allowed to take an instance back out of history.
func Restore(l Ledger, in Instance, date string) Ledger {
	next := l.clone()

	next.History = removeByID(next.History, in.ID)
	next.Postponed = removeByID(next.Postponed, in.ID)
	next.Scheduled = removeByID(next.Scheduled, in.ID)

	revived := in
	revived.State = StateScheduled
	revived.ScheduledDate = date
	revived.CompletedDate = ""
	revived.Penalized = false
	revived.RestoredCount++
	revived.Priority = PriorityHighest
	next.Scheduled = append(next.Scheduled, revived)

	return next
}

// AddCustom appends a user-authored mission to the scheduled pool. The id
// is supplied by the caller (the engine mints custom_<uuid> ids).
func AddCustom(l Ledger, id, title, description, date string) Ledger {
	next := l.clone()
	next.Scheduled = append(next.Scheduled, Instance{
		ID:            id,
		Title:         title,
		Description:   description,
		Category:      "custom_order",
		Points:        catalog.DefaultCustomPoints,
		State:         StateScheduled,
		ScheduledDate: date,
	})
	return next
}

// RemoveCustom deletes a user-authored mission from the live pools.
// History entries stay: deleting a mission does not rewrite the record.
func RemoveCustom(l Ledger, id string) Ledger {
	next := l.clone()
	next.Scheduled = removeByID(next.Scheduled, id)
	next.Postponed = removeByID(next.Postponed, id)
	return next
}

// Active derives the mission list in force for a day: that day's catalog
// missions minus anything already accounted for or parked in a pool, plus
// scheduled-pool instances that are due. Restored instances whose date has
// passed are excluded here; the synchronizer will expire them.
func Active(l Ledger, day int, effectiveDate string) []Instance {
	var out []Instance

	for _, tpl := range catalog.ForDay(day) {
		if l.accounted(tpl.ID) {
			continue
		}
		if _, ok := findByID(l.Postponed, tpl.ID); ok {
			continue
		}
		if _, ok := findByID(l.Scheduled, tpl.ID); ok {
			continue
		}
		out = append(out, FromTemplate(tpl))
	}

	var due []Instance
	for _, in := range l.Scheduled {
		if !scheduledIsDue(in, effectiveDate) {
			continue
		}
		live := in
		live.State = StateActive
		due = append(due, live)
	}
	// Last-chance missions surface first.
	for _, in := range due {
		if in.Priority == PriorityHighest {
			out = append(out, in)
		}
	}
	for _, in := range due {
		if in.Priority != PriorityHighest {
			out = append(out, in)
		}
	}

	return out
}

func scheduledIsDue(in Instance, effectiveDate string) bool {
	switch {
	case in.ScheduledDate == "":
		return true
	case in.ScheduledDate == effectiveDate:
		return true
	case in.ScheduledDate < effectiveDate:
		// Overdue: a restored instance is out of chances and waits for the
		// synchronizer; an ordinary one just stays on the list.
		return in.RestoredCount == 0
	default:
		return false
	}
}

// Find looks an instance up across every pool and history.
func Find(l Ledger, id string) (Instance, bool) {
	if in, ok := findByID(l.Scheduled, id); ok {
		return in, true
	}
	if in, ok := findByID(l.Postponed, id); ok {
		return in, true
	}
	if in, ok := findByID(l.History, id); ok {
		return in, true
	}
	return Instance{}, false
}
