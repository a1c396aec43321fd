package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casaluna/casaluna/internal/domain/model"
)

const settingColumns = `key, value, updated_by, updated_at`

// SettingsRepo provides database operations for the settings key/value store.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get retrieves a setting by key.
func (r *SettingsRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE key = $1`, key)
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Setting])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &out, nil
}

// List retrieves all settings ordered by key.
func (r *SettingsRepo) List(ctx context.Context) ([]*model.Setting, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+settingColumns+` FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Setting])
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Upsert creates or replaces a setting.
func (r *SettingsRepo) Upsert(ctx context.Context, req *model.UpsertSettingRequest) (*model.Setting, error) {
	if req == nil {
		return nil, errors.New("upsert setting request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `
INSERT INTO settings (key, value, updated_by, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = now()
RETURNING `+settingColumns,
		req.Key, req.Value, req.UpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Setting])
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	return &out, nil
}

// Delete removes a setting.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSettingNotFound
	}
	return nil
}
