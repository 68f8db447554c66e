package ledger

import (
	"sort"

	"missionlog/internal/catalog"
)

// RestorePenalty is deducted when a restored mission expires unfinished.
// Ordinary misses are free; the second chance is the one that costs.
const RestorePenalty = 30

// SyncReport describes what a catch-up pass materialized.
type SyncReport struct {
	Advanced      bool
	MissedCount   int
	Expired       []Instance
	PointsChanged bool
}

// Sync reconciles the gap between the ledger watermark and the target day
// index. It is idempotent: a target at or below the watermark is a no-op,
// and re-running with the same target produces no duplicate history
// entries.
//
// dateFor maps a day index to its calendar date string.
func Sync(l Ledger, target int, dateFor func(int) string) (Ledger, SyncReport) {
	if target <= l.Watermark {
		return l, SyncReport{}
	}

	next := l.clone()
	report := SyncReport{Advanced: true}

	inHistory := make(map[string]bool, len(next.History))
	for _, in := range next.History {
		inHistory[in.ID] = true
	}
	parked := make(map[string]bool, len(next.Postponed)+len(next.Scheduled))
	for _, in := range next.Postponed {
		parked[in.ID] = true
	}
	for _, in := range next.Scheduled {
		parked[in.ID] = true
	}

	// Unattended catalog missions become ordinary failures. No deduction.
	for d := l.Watermark; d < target; d++ {
		for _, tpl := range catalog.ForDay(d) {
			if next.accounted(tpl.ID) || parked[tpl.ID] || inHistory[tpl.ID] {
				continue
			}
			miss := FromTemplate(tpl)
			miss.State = StateFailed
			miss.CompletedDate = dateFor(d)
			next.History = append(next.History, miss)
			inHistory[miss.ID] = true
			report.MissedCount++
		}
	}

	// Restored missions past their date are out of chances: penalized
	// failure and a point deduction, floored at zero.
	cutoff := dateFor(target)
	var kept []Instance
	for _, in := range next.Scheduled {
		if in.RestoredCount >= 1 && in.ScheduledDate != "" && in.ScheduledDate < cutoff {
			expired := in
			expired.State = StateFailed
			expired.Penalized = true
			expired.CompletedDate = in.ScheduledDate
			next.History = append(next.History, expired)
			next.Points -= RestorePenalty
			if next.Points < 0 {
				next.Points = 0
			}
			report.Expired = append(report.Expired, expired)
			continue
		}
		kept = append(kept, in)
	}
	next.Scheduled = kept
	report.PointsChanged = next.Points != l.Points

	sort.SliceStable(next.History, func(i, j int) bool {
		return next.History[i].CompletedDate > next.History[j].CompletedDate
	})

	next.Watermark = target
	return next, report
}
