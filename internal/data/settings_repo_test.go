package data

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaluna/casaluna/internal/domain/model"
)

func TestSettingsRepo_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)

	val := json.RawMessage(`{"url":"/img/hero.jpg","alt":"Dining room"}`)
	mock.ExpectQuery(`INSERT INTO settings`).
		WithArgs("hero_image", val, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "updated_by", "updated_at"}).
			AddRow("hero_image", val, (*string)(nil), time.Now()))

	s, err := r.Upsert(context.Background(), &model.UpsertSettingRequest{
		Key:   model.SettingHeroImage,
		Value: val,
	})
	require.NoError(t, err)
	assert.Equal(t, "hero_image", s.Key)
	assert.JSONEq(t, string(val), string(s.Value))
}

func TestSettingsRepo_Upsert_InvalidJSON(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)

	_, err := r.Upsert(context.Background(), &model.UpsertSettingRequest{
		Key:   "hero_image",
		Value: json.RawMessage(`{oops`),
	})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepo_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)

	mock.ExpectQuery(`SELECT .* FROM settings WHERE key`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "updated_by", "updated_at"}))

	_, err := r.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSettingNotFound)
}

func TestSettingsRepo_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)

	mock.ExpectExec(`DELETE FROM settings`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.ErrorIs(t, r.Delete(context.Background(), "missing"), ErrSettingNotFound)
}
