package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SettingRepository handles database operations for the settings table.
// Deployment-level flags (such as whether seed data has been installed)
// live here instead of in ambient process state.
type SettingRepository struct {
	db DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the value for key, and whether the key exists
func (r *SettingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value for key
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
