package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Setting keys. Operator state that is not part of the ledger proper lives
// here, behind the repo, instead of ad hoc key strings in feature code.
const (
	SettingAnchorDate   = "anchor_date"
	SettingSimulatedDay = "simulated_day"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the value for a key, or "" when unset.
func (r *SettingsRepo) Get(ctx context.Context, userID, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE user_id = ? AND key = ?`, userID, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("setting get %s: %w", key, err)
	}
	return v, nil
}

// Set upserts one key.
func (r *SettingsRepo) Set(ctx context.Context, userID, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value
	`, userID, key, value)
	if err != nil {
		return fmt.Errorf("setting set %s: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error.
func (r *SettingsRepo) Delete(ctx context.Context, userID, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE user_id = ? AND key = ?`, userID, key); err != nil {
		return fmt.Errorf("setting delete %s: %w", key, err)
	}
	return nil
}

// SetMany upserts several keys atomically.
func (r *SettingsRepo) SetMany(ctx context.Context, userID string, kv map[string]string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for k, v := range kv {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
				ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value
			`, userID, k, v); err != nil {
				return fmt.Errorf("setting set %s: %w", k, err)
			}
		}
		return nil
	})
}
