package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"missionlog/internal/ledger"
)

// LedgerSchemaVersion is the current payload version. Version 1 is the
// flat blob imported from earlier builds, with merged mission pools; it is
// upgraded transparently on load.
const LedgerSchemaVersion = 2

// LedgerRepo persists one versioned ledger snapshot per user.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// Load returns the stored ledger, or nil when the user has none yet.
// Old payload versions are migrated in memory; the row is rewritten at the
// current version on the next Save.
func (r *LedgerRepo) Load(ctx context.Context, userID string) (*ledger.Ledger, error) {
	row := r.db.QueryRowContext(ctx, `SELECT version, payload FROM ledgers WHERE user_id = ?`, userID)

	var version int
	var payload string
	if err := row.Scan(&version, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ledger load: %w", err)
	}

	switch version {
	case LedgerSchemaVersion:
		var l ledger.Ledger
		if err := json.Unmarshal([]byte(payload), &l); err != nil {
			return nil, fmt.Errorf("ledger decode v%d: %w", version, err)
		}
		return &l, nil
	case 1:
		l, err := migrateV1(payload)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("ledger load: unsupported schema version %d", version)
	}
}

// Save upserts the ledger at the current schema version.
func (r *LedgerRepo) Save(ctx context.Context, userID string, l ledger.Ledger) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("ledger encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ledgers (user_id, version, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`, userID, LedgerSchemaVersion, string(payload))
	if err != nil {
		return fmt.Errorf("ledger save: %w", err)
	}
	return nil
}

// ledgerV1 is the legacy import format: one custom pool holding both
// backlog and dated missions, badge ids without unlock dates, and the
// watermark under its old name.
type ledgerV1 struct {
	Points                int               `json:"points"`
	Streak                int               `json:"streak"`
	LastEngagementDate    string            `json:"last_engagement_date"`
	LastProcessedDayIndex int               `json:"last_processed_day_index"`
	MissionHistory        []ledger.Instance `json:"mission_history"`
	CustomMissions        []ledger.Instance `json:"custom_missions"`
	PostponedMissions     []ledger.Instance `json:"postponed_missions"`
	CompletedDailyIDs     []string          `json:"completed_daily_mission_ids"`
	CompletedTasks        []string          `json:"completed_tasks"`
	Badges                []string          `json:"badges"`
}

func migrateV1(payload string) (*ledger.Ledger, error) {
	var old ledgerV1
	if err := json.Unmarshal([]byte(payload), &old); err != nil {
		return nil, fmt.Errorf("ledger decode v1: %w", err)
	}

	l := ledger.New()
	l.Points = old.Points
	if l.Points < 0 {
		l.Points = 0
	}
	l.Streak = old.Streak
	l.LastEngagement = old.LastEngagementDate
	l.Watermark = old.LastProcessedDayIndex
	l.AccountedDayIDs = old.CompletedDailyIDs
	l.CompletedIDs = old.CompletedTasks

	for _, in := range old.MissionHistory {
		if in.State == "" {
			in.State = ledger.StateCompleted
		}
		l.History = append(l.History, in)
	}
	for _, in := range old.PostponedMissions {
		in.State = ledger.StatePostponed
		in.ScheduledDate = ""
		l.Postponed = append(l.Postponed, in)
	}
	for _, in := range old.CustomMissions {
		in.State = ledger.StateScheduled
		l.Scheduled = append(l.Scheduled, in)
	}
	for _, id := range old.Badges {
		l.Badges = append(l.Badges, ledger.Badge{ID: id})
	}
	return &l, nil
}
