// Package engine wires the calendar, catalog, ledger pipeline and
// collaborators into the operations the CLI and TUI call. Every mutation
// derives the next ledger from the latest in-memory snapshot, replaces it
// atomically, then settles: achievement evaluation, rank resolution,
// best-effort persistence and notification.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"missionlog/internal/calendar"
	"missionlog/internal/ledger"
	"missionlog/internal/notify"
	"missionlog/internal/storage"
)

// DefaultUser is the single local profile.
const DefaultUser = "main"

// ErrNoAnchor is returned by operations that need an effective date before
// the target date has been configured.
var ErrNoAnchor = errors.New("anchor date not set (run: ml anchor <yyyy-mm-dd>)")

type Service struct {
	ledgers  *storage.LedgerRepo
	settings *storage.SettingsRepo
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time

	userID string
	defs   []ledger.Definition

	cur     ledger.Ledger
	mapper  *calendar.Mapper
	loaded  bool
	settled bool
}

type Option func(*Service)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithUser(id string) Option {
	return func(s *Service) { s.userID = id }
}

func WithAchievements(defs []ledger.Definition) Option {
	return func(s *Service) { s.defs = defs }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		ledgers:  storage.NewLedgerRepo(db),
		settings: storage.NewSettingsRepo(db),
		notifier: notify.Noop{},
		log:      zap.NewNop(),
		now:      time.Now,
		userID:   DefaultUser,
		defs:     ledger.Achievements,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load pulls the stored ledger and operator settings into memory. A
// missing ledger starts fresh; an invalid anchor is logged and leaves the
// mapper unset, which silently disables sync until corrected.
func (s *Service) Load(ctx context.Context) error {
	stored, err := s.ledgers.Load(ctx, s.userID)
	if err != nil {
		return err
	}
	if stored != nil {
		s.cur = *stored
	} else {
		s.cur = ledger.New()
	}
	s.loaded = true
	s.settled = false

	s.mapper = nil
	raw, err := s.settings.Get(ctx, s.userID, storage.SettingAnchorDate)
	if err != nil {
		return err
	}
	if raw != "" {
		anchor, err := calendar.ParseAnchor(raw)
		if err != nil {
			s.log.Warn("invalid anchor date, sync disabled until corrected",
				zap.String("anchor", raw), zap.Error(err))
		} else {
			s.mapper = calendar.NewMapper(anchor, s.now)
		}
	}
	if s.mapper != nil {
		if sim, err := s.settings.Get(ctx, s.userID, storage.SettingSimulatedDay); err != nil {
			return err
		} else if sim != "" {
			day, convErr := strconv.Atoi(sim)
			if convErr != nil {
				s.log.Warn("invalid simulated day, using real clock", zap.String("value", sim))
			} else {
				s.mapper.Simulate(day)
			}
		}
	}
	return nil
}

// Snapshot returns the current ledger value.
func (s *Service) Snapshot() ledger.Ledger { return s.cur }

// Rank resolves the current tier from points.
func (s *Service) Rank() ledger.Tier { return ledger.Resolve(s.cur.Points) }

// HasAnchor reports whether an effective day index can be computed.
func (s *Service) HasAnchor() bool { return s.mapper != nil }

// Simulated reports whether the day index is pinned by the operator.
func (s *Service) Simulated() bool { return s.mapper != nil && s.mapper.Simulated() }

// EffectiveDay returns the day index currently in force.
func (s *Service) EffectiveDay() (int, error) {
	if s.mapper == nil {
		return 0, ErrNoAnchor
	}
	return s.mapper.EffectiveDayIndex(), nil
}

// EffectiveDate returns the calendar date for the effective day index.
func (s *Service) EffectiveDate() (string, error) {
	if s.mapper == nil {
		return "", ErrNoAnchor
	}
	return s.mapper.EffectiveDate(), nil
}

// Week returns the derived program week for the effective day.
func (s *Service) Week() int {
	if s.mapper == nil {
		return 1
	}
	return calendar.Week(s.mapper.EffectiveDayIndex())
}

// Active returns the missions in force right now.
func (s *Service) Active() ([]ledger.Instance, error) {
	if s.mapper == nil {
		return nil, ErrNoAnchor
	}
	return ledger.Active(s.cur, s.mapper.EffectiveDayIndex(), s.mapper.EffectiveDate()), nil
}

// SetAnchor stores a new target date and rebuilds the mapper. A pinned
// simulated day survives the edit, and both settings land in one
// transaction. The day index may jump backward after an anchor edit; that
// is an accepted correction, not an error, and the watermark simply waits
// for the clock to catch back up.
func (s *Service) SetAnchor(ctx context.Context, date string) error {
	anchor, err := calendar.ParseAnchor(date)
	if err != nil {
		return err
	}

	kv := map[string]string{
		storage.SettingAnchorDate: anchor.Format(calendar.DateLayout),
	}
	prev := s.mapper
	if prev != nil && prev.Simulated() {
		kv[storage.SettingSimulatedDay] = strconv.Itoa(prev.EffectiveDayIndex())
	}
	if err := s.settings.SetMany(ctx, s.userID, kv); err != nil {
		return err
	}

	s.mapper = calendar.NewMapper(anchor, s.now)
	if prev != nil && prev.Simulated() {
		s.mapper.Simulate(prev.EffectiveDayIndex())
	}
	return nil
}

// SimulateDay pins the effective day index (the operator/debug surface).
func (s *Service) SimulateDay(ctx context.Context, day int) error {
	if s.mapper == nil {
		return ErrNoAnchor
	}
	if day < 0 {
		day = 0
	}
	if err := s.settings.Set(ctx, s.userID, storage.SettingSimulatedDay, strconv.Itoa(day)); err != nil {
		return err
	}
	s.mapper.Simulate(day)
	return nil
}

// UseRealClock drops the simulated day.
func (s *Service) UseRealClock(ctx context.Context) error {
	if err := s.settings.Delete(ctx, s.userID, storage.SettingSimulatedDay); err != nil {
		return err
	}
	if s.mapper != nil {
		s.mapper.ClearSimulation()
	}
	return nil
}

// persist saves the current ledger. Failures are logged, never fatal: the
// in-memory ledger stays authoritative for the session.
func (s *Service) persist(ctx context.Context) {
	if err := s.ledgers.Save(ctx, s.userID, s.cur); err != nil {
		s.log.Warn("ledger save failed, continuing in memory", zap.Error(err))
	}
}

// settle runs the post-mutation pipeline on the latest snapshot:
// achievements, rank delta against prevPoints, persistence, notification.
// During the initial silent window (before the first sync pass finishes)
// unlocks are recorded but not announced.
func (s *Service) settle(ctx context.Context, prevPoints int) ([]ledger.Definition, ledger.Tier, bool) {
	date := ""
	if s.mapper != nil {
		date = s.mapper.EffectiveDate()
	} else {
		date = s.now().UTC().Format(calendar.DateLayout)
	}

	next, unlocked := ledger.Evaluate(s.defs, s.cur, s.Week(), date)
	s.cur = next

	before := ledger.Resolve(prevPoints)
	after := ledger.Resolve(s.cur.Points)
	rankUp := after.Level > before.Level

	s.persist(ctx)

	if s.settled {
		for _, def := range unlocked {
			s.notifier.Send(fmt.Sprintf("%s New achievement: %s", def.Icon, def.Title), def.Description)
		}
		if rankUp {
			s.notifier.Send(fmt.Sprintf("%s Promotion: %s", after.Icon, after.Name),
				fmt.Sprintf("Tier %d reached at %d points.", after.Level, s.cur.Points))
		}
	}
	return unlocked, after, rankUp
}
