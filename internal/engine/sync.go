package engine

import (
	"context"

	"go.uber.org/zap"

	"missionlog/internal/ledger"
)

// SyncResult describes a catch-up pass.
type SyncResult struct {
	Day         int
	Advanced    bool
	MissedCount int
	Expired     []ledger.Instance
	Unlocked    []ledger.Definition
	Rank        ledger.Tier
	RankUp      bool
}

// Sync reconciles the ledger with the effective day index. The first pass
// after Load runs silently: unlocks and expirations that merely reflect
// stored state are applied without announcements. Subsequent passes notify
// normally. Without an anchor this is a cheap no-op.
func (s *Service) Sync(ctx context.Context) (SyncResult, error) {
	if s.mapper == nil {
		s.settled = true
		return SyncResult{}, nil
	}
	day := s.mapper.EffectiveDayIndex()

	prev := s.cur.Points
	next, report := ledger.Sync(s.cur, day, s.mapper.DateFor)
	s.cur = next

	if report.Advanced {
		s.log.Debug("synchronized ledger",
			zap.Int("day", day),
			zap.Int("missed", report.MissedCount),
			zap.Int("expired", len(report.Expired)))
	}

	unlocked, rank, rankUp := s.settle(ctx, prev)
	s.settled = true

	return SyncResult{
		Day:         day,
		Advanced:    report.Advanced,
		MissedCount: report.MissedCount,
		Expired:     report.Expired,
		Unlocked:    unlocked,
		Rank:        rank,
		RankUp:      rankUp,
	}, nil
}
