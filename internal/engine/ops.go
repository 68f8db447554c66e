package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"missionlog/internal/ledger"
)

// MutationResult carries what a mutation changed, for the CLI to render.
type MutationResult struct {
	Instance      ledger.Instance
	PointsAwarded int
	Streak        int
	Unlocked      []ledger.Definition
	Rank          ledger.Tier
	RankUp        bool
}

// findActive resolves an id against the currently active list first, then
// the pools and history, so catalog missions that exist only as derived
// instances can still be operated on.
func (s *Service) findActive(id string) (ledger.Instance, error) {
	if s.mapper != nil {
		for _, in := range ledger.Active(s.cur, s.mapper.EffectiveDayIndex(), s.mapper.EffectiveDate()) {
			if in.ID == id {
				return in, nil
			}
		}
	}
	if in, ok := ledger.Find(s.cur, id); ok {
		return in, nil
	}
	return ledger.Instance{}, fmt.Errorf("no mission %q", id)
}

// Complete marks a mission done, awards its points and settles.
func (s *Service) Complete(ctx context.Context, id string) (MutationResult, error) {
	in, err := s.findActive(id)
	if err != nil {
		return MutationResult{}, err
	}
	if in.State == ledger.StateCompleted {
		return MutationResult{}, fmt.Errorf("mission %q is already completed", id)
	}
	if in.State == ledger.StateFailed {
		return MutationResult{}, fmt.Errorf("mission %q is failed; give it a second chance with `ml restore`", id)
	}
	date, err := s.EffectiveDate()
	if err != nil {
		return MutationResult{}, err
	}

	prev := s.cur.Points
	next, report := ledger.Complete(s.cur, in, date)
	s.cur = next

	unlocked, rank, rankUp := s.settle(ctx, prev)
	return MutationResult{
		Instance:      in,
		PointsAwarded: report.PointsAwarded,
		Streak:        report.Streak,
		Unlocked:      unlocked,
		Rank:          rank,
		RankUp:        rankUp,
	}, nil
}

// Postpone parks a mission with no target date.
func (s *Service) Postpone(ctx context.Context, id string) (MutationResult, error) {
	in, err := s.findActive(id)
	if err != nil {
		return MutationResult{}, err
	}
	if in.State == ledger.StateCompleted || in.State == ledger.StateFailed {
		return MutationResult{}, fmt.Errorf("mission %q is settled and cannot be postponed", id)
	}

	prev := s.cur.Points
	s.cur = ledger.Postpone(s.cur, in)
	unlocked, rank, rankUp := s.settle(ctx, prev)
	return MutationResult{Instance: in, Unlocked: unlocked, Rank: rank, RankUp: rankUp}, nil
}

// Schedule parks a mission with a concrete target date.
func (s *Service) Schedule(ctx context.Context, id, date string) (MutationResult, error) {
	in, err := s.findActive(id)
	if err != nil {
		return MutationResult{}, err
	}
	if in.State == ledger.StateCompleted || in.State == ledger.StateFailed {
		return MutationResult{}, fmt.Errorf("mission %q is settled and cannot be scheduled", id)
	}

	prev := s.cur.Points
	s.cur = ledger.Schedule(s.cur, in, date)
	unlocked, rank, rankUp := s.settle(ctx, prev)
	return MutationResult{Instance: in, Unlocked: unlocked, Rank: rank, RankUp: rankUp}, nil
}

// Restore gives a failed mission its one second chance, rescheduled at
// highest priority for the given date.
func (s *Service) Restore(ctx context.Context, id, date string) (MutationResult, error) {
	in, ok := ledger.Find(s.cur, id)
	if !ok {
		return MutationResult{}, fmt.Errorf("no mission %q", id)
	}
	if in.State != ledger.StateFailed {
		return MutationResult{}, fmt.Errorf("mission %q is not failed; only failed missions can be restored", id)
	}
	if in.RestoredCount >= 1 {
		return MutationResult{}, fmt.Errorf("mission %q already used its second chance", id)
	}

	prev := s.cur.Points
	s.cur = ledger.Restore(s.cur, in, date)
	unlocked, rank, rankUp := s.settle(ctx, prev)

	restored, _ := ledger.Find(s.cur, id)
	return MutationResult{Instance: restored, Unlocked: unlocked, Rank: rank, RankUp: rankUp}, nil
}

// AddCustom mints a new user-authored mission and schedules it.
func (s *Service) AddCustom(ctx context.Context, title, description, date string) (MutationResult, error) {
	if title == "" {
		return MutationResult{}, fmt.Errorf("a custom mission needs a title")
	}
	id := "custom_" + uuid.NewString()

	prev := s.cur.Points
	s.cur = ledger.AddCustom(s.cur, id, title, description, date)
	unlocked, rank, rankUp := s.settle(ctx, prev)

	in, _ := ledger.Find(s.cur, id)
	return MutationResult{Instance: in, Unlocked: unlocked, Rank: rank, RankUp: rankUp}, nil
}

// RemoveCustom deletes a user-authored mission from the live pools.
func (s *Service) RemoveCustom(ctx context.Context, id string) error {
	in, ok := ledger.Find(s.cur, id)
	if !ok {
		return fmt.Errorf("no mission %q", id)
	}
	if !in.IsCustom() {
		return fmt.Errorf("mission %q is not a custom mission", id)
	}
	s.cur = ledger.RemoveCustom(s.cur, id)
	s.persist(ctx)
	return nil
}
