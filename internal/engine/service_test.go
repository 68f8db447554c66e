package engine

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"missionlog/internal/calendar"
	"missionlog/internal/ledger"
	"missionlog/internal/storage"
)

type memoNotifier struct {
	sent []string
}

func (m *memoNotifier) Send(title, body string) {
	m.sent = append(m.sent, title)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestService opens a fresh DB, anchors the program so the fixed clock
// lands on day 0, and runs the initial (silent) sync.
func newTestService(t *testing.T, db *sql.DB, n *memoNotifier) *Service {
	t.Helper()
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	anchor := now.AddDate(0, 0, calendar.ProgramDays)

	svc := NewService(db,
		WithClock(func() time.Time { return now }),
		WithNotifier(n),
	)
	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := svc.SetAnchor(ctx, anchor.Format(calendar.DateLayout)); err != nil {
		t.Fatalf("set anchor: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	return svc
}

func TestCompleteAwardsPointsAndPersists(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	res, err := svc.Complete(ctx, "daily_0_0")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.PointsAwarded != 45 {
		t.Fatalf("points awarded = %d, want 45", res.PointsAwarded)
	}
	if res.Streak != 1 {
		t.Fatalf("streak = %d, want 1", res.Streak)
	}
	// first_blood fires on the same settle pass.
	if len(res.Unlocked) != 1 || res.Unlocked[0].ID != "first_blood" {
		t.Fatalf("unlocked = %+v, want first_blood", res.Unlocked)
	}

	// A second service over the same DB sees the committed state.
	reload := NewService(db)
	if err := reload.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reload.Snapshot()
	if got.Points != 45+50 {
		t.Fatalf("persisted points = %d, want 95", got.Points)
	}
	if len(got.History) != 1 || got.History[0].ID != "daily_0_0" {
		t.Fatalf("persisted history = %+v", got.History)
	}
}

func TestCompleteUnknownAndDouble(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	if _, err := svc.Complete(ctx, "daily_0_99"); err == nil {
		t.Fatal("expected error for unknown mission")
	}
	if _, err := svc.Complete(ctx, "daily_0_0"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Complete(ctx, "daily_0_0"); err == nil {
		t.Fatal("expected error for double completion")
	}
}

func TestActiveRequiresAnchor(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := svc.Active(); err != ErrNoAnchor {
		t.Fatalf("err = %v, want ErrNoAnchor", err)
	}
	if _, err := svc.Complete(context.Background(), "daily_0_0"); err == nil {
		t.Fatal("expected completion to fail without an anchor")
	}
}

func TestSyncMaterializesMissesWithoutPenalty(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	if err := svc.SimulateDay(ctx, 2); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	res, err := svc.Sync(ctx)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !res.Advanced {
		t.Fatal("sync did not advance")
	}
	// Days 0 and 1 are scripted with two missions each.
	if res.MissedCount != 4 {
		t.Fatalf("missed = %d, want 4", res.MissedCount)
	}
	if got := svc.Snapshot().Points; got != 0 {
		t.Fatalf("points = %d, ordinary misses must be free", got)
	}
	for _, in := range svc.Snapshot().History {
		if in.State != ledger.StateFailed || in.Penalized {
			t.Fatalf("bad miss entry: %+v", in)
		}
	}
}

func TestInitialSyncIsSilent(t *testing.T) {
	db := openTestDB(t)
	n := &memoNotifier{}
	svc := newTestService(t, db, n)
	ctx := context.Background()

	if len(n.sent) != 0 {
		t.Fatalf("initial sync notified: %v", n.sent)
	}

	// After settling, unlocks announce.
	if _, err := svc.Complete(ctx, "daily_0_0"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(n.sent) == 0 {
		t.Fatal("expected an achievement notification after the silent window")
	}
	if !strings.Contains(n.sent[0], "First Blood") {
		t.Fatalf("notification = %q", n.sent[0])
	}
}

func TestRestoreIsOneShot(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	// Miss day 0, then restore one of the failures.
	if err := svc.SimulateDay(ctx, 1); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}

	date, err := svc.EffectiveDate()
	if err != nil {
		t.Fatalf("effective date: %v", err)
	}
	res, err := svc.Restore(ctx, "daily_0_0", date)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if res.Instance.RestoredCount != 1 {
		t.Fatalf("restored count = %d, want 1", res.Instance.RestoredCount)
	}
	if res.Instance.Priority != ledger.PriorityHighest {
		t.Fatalf("priority = %q, want highest", res.Instance.Priority)
	}

	// Let it expire again, then a second restore must be refused.
	if err := svc.SimulateDay(ctx, 3); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	sync, err := svc.Sync(ctx)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(sync.Expired) != 1 {
		t.Fatalf("expired = %+v, want one entry", sync.Expired)
	}
	if _, err := svc.Restore(ctx, "daily_0_0", svc.Snapshot().History[0].CompletedDate); err == nil {
		t.Fatal("expected second restore to be refused")
	}
}

func TestCompleteRefusesFailedMission(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	// Miss day 0 so daily_0_0 fails into history.
	if err := svc.SimulateDay(ctx, 1); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// Failure is terminal: history only opens back up through restore.
	if _, err := svc.Complete(ctx, "daily_0_0"); err == nil {
		t.Fatal("expected completing a failed mission to be refused")
	}
	snap := svc.Snapshot()
	if snap.Points != 0 {
		t.Fatalf("points = %d, refused completion must not award", snap.Points)
	}
	in, ok := ledger.Find(snap, "daily_0_0")
	if !ok || in.State != ledger.StateFailed {
		t.Fatalf("instance = %+v, want it still failed in history", in)
	}

	// A penalized, already-restored mission stays closed too.
	date, _ := svc.EffectiveDate()
	if _, err := svc.Restore(ctx, "daily_0_0", date); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := svc.SimulateDay(ctx, 3); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, err := svc.Complete(ctx, "daily_0_0"); err == nil {
		t.Fatal("expected completing an expired restored mission to be refused")
	}
}

func TestRestoreRequiresFailedState(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	if _, err := svc.Complete(ctx, "daily_0_0"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Restore(ctx, "daily_0_0", "2026-01-16"); err == nil {
		t.Fatal("expected restore of a completed mission to fail")
	}
}

func TestExpiredRestoreDeductsPoints(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	// Bank some points first so the deduction is visible.
	if _, err := svc.Complete(ctx, "daily_0_0"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	before := svc.Snapshot().Points

	if err := svc.SimulateDay(ctx, 1); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	date, _ := svc.EffectiveDate()
	if _, err := svc.Restore(ctx, "daily_0_1", date); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := svc.SimulateDay(ctx, 4); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}

	got := svc.Snapshot().Points
	if got != before-ledger.RestorePenalty {
		t.Fatalf("points = %d, want %d", got, before-ledger.RestorePenalty)
	}
}

func TestAddAndRemoveCustom(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	res, err := svc.AddCustom(ctx, "Build the crib", "Instructions say 40 minutes. Budget two hours.", "")
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if !res.Instance.IsCustom() {
		t.Fatalf("id = %q, want custom_ prefix", res.Instance.ID)
	}
	if res.Instance.Points != 50 {
		t.Fatalf("points = %d, want 50", res.Instance.Points)
	}

	active, err := svc.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	found := false
	for _, in := range active {
		if in.ID == res.Instance.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("custom mission not in active list: %+v", active)
	}

	if err := svc.RemoveCustom(ctx, res.Instance.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveCustom(ctx, res.Instance.ID); err == nil {
		t.Fatal("expected removing twice to fail")
	}
	if err := svc.RemoveCustom(ctx, "daily_0_0"); err == nil {
		t.Fatal("expected removing a catalog mission to fail")
	}
	if _, err := svc.AddCustom(ctx, "", "", ""); err == nil {
		t.Fatal("expected empty title to be rejected")
	}
}

func TestPostponeAndScheduleRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	if _, err := svc.Postpone(ctx, "daily_0_0"); err != nil {
		t.Fatalf("postpone: %v", err)
	}
	active, err := svc.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	for _, in := range active {
		if in.ID == "daily_0_0" {
			t.Fatal("postponed mission still active")
		}
	}

	// Scheduling it for today brings it back as due.
	date, _ := svc.EffectiveDate()
	if _, err := svc.Schedule(ctx, "daily_0_0", date); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	active, _ = svc.Active()
	found := false
	for _, in := range active {
		if in.ID == "daily_0_0" {
			found = true
		}
	}
	if !found {
		t.Fatal("scheduled-for-today mission not active")
	}

	// Settled missions reject parking.
	if _, err := svc.Complete(ctx, "daily_0_0"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Postpone(ctx, "daily_0_0"); err == nil {
		t.Fatal("expected postponing a completed mission to fail")
	}
}

func TestSimulatedDaySurvivesReload(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	if err := svc.SimulateDay(ctx, 42); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	reload := NewService(db, WithClock(func() time.Time {
		return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	}))
	if err := reload.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	day, err := reload.EffectiveDay()
	if err != nil {
		t.Fatalf("effective day: %v", err)
	}
	if day != 42 {
		t.Fatalf("day = %d, want 42", day)
	}
	if !reload.Simulated() {
		t.Fatal("reload not simulated")
	}

	if err := reload.UseRealClock(ctx); err != nil {
		t.Fatalf("real clock: %v", err)
	}
	day, _ = reload.EffectiveDay()
	if day != 0 {
		t.Fatalf("day = %d after clearing simulation, want 0", day)
	}
}

func TestSetAnchorKeepsSimulatedDayPinned(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &memoNotifier{})
	ctx := context.Background()

	if err := svc.SimulateDay(ctx, 7); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if err := svc.SetAnchor(ctx, "2027-03-01"); err != nil {
		t.Fatalf("set anchor: %v", err)
	}
	if !svc.Simulated() {
		t.Fatal("anchor edit dropped the simulated day")
	}

	// Both settings were written together; a fresh load sees them.
	reload := NewService(db)
	if err := reload.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	day, err := reload.EffectiveDay()
	if err != nil {
		t.Fatalf("effective day: %v", err)
	}
	if day != 7 {
		t.Fatalf("day = %d after reload, want 7", day)
	}
	anchor, err := calendar.ParseAnchor("2027-03-01")
	if err != nil {
		t.Fatalf("parse anchor: %v", err)
	}
	want := calendar.DateForIndex(anchor, 7).Format(calendar.DateLayout)
	if got, _ := reload.EffectiveDate(); got != want {
		t.Fatalf("effective date = %q, want %q", got, want)
	}
}

func TestInvalidAnchorDisablesSyncNotLoad(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	settings := storage.NewSettingsRepo(db)
	if err := settings.Set(ctx, DefaultUser, storage.SettingAnchorDate, "not-a-date"); err != nil {
		t.Fatalf("seed setting: %v", err)
	}

	svc := NewService(db)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if svc.HasAnchor() {
		t.Fatal("invalid anchor should leave the mapper unset")
	}
	res, err := svc.Sync(ctx)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if res.Advanced {
		t.Fatal("sync must be a no-op without an anchor")
	}
}

func TestRankUpNotifiesOnce(t *testing.T) {
	db := openTestDB(t)
	n := &memoNotifier{}
	svc := newTestService(t, db, n)
	ctx := context.Background()

	// day 13 carries the 100-point milestone; with accumulated achievement
	// XP this crosses the 150-point tier threshold.
	if err := svc.SimulateDay(ctx, 13); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	res, err := svc.Complete(ctx, "daily_13_0")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !res.RankUp {
		t.Fatalf("expected a rank up at %d points", svc.Snapshot().Points)
	}
	promos := 0
	for _, msg := range n.sent {
		if strings.Contains(msg, "Promotion") {
			promos++
		}
	}
	if promos != 1 {
		t.Fatalf("promotions announced = %d, want 1", promos)
	}
}
