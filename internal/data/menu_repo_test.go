package data

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaluna/casaluna/internal/domain/model"
)

func newMockDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func menuItemRows() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "name", "description", "price_cents", "category",
		"position", "image_url", "published", "created_at", "updated_at",
	}).AddRow(
		"item-1", "Tagliatelle al ragù", "Slow-braised beef ragù", 1650,
		model.MenuCategoryMain, 1, (*string)(nil), true, now, now,
	)
}

func TestMenuRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewMenuRepo(db)
	ctx := context.Background()

	published := true
	req := &model.CreateMenuItemRequest{
		Name:        "Tagliatelle al ragù",
		Description: "Slow-braised beef ragù",
		PriceCents:  1650,
		Category:    model.MenuCategoryMain,
		Position:    1,
		Published:   &published,
	}

	mock.ExpectQuery(`INSERT INTO menu_items`).
		WithArgs("Tagliatelle al ragù", "Slow-braised beef ragù", 1650, "main", 1, (*string)(nil), true).
		WillReturnRows(menuItemRows())

	item, err := r.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, model.MenuCategoryMain, item.Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewMenuRepo(db)

	req := &model.CreateMenuItemRequest{
		Name:       "Tiramisù",
		PriceCents: 850,
		Category:   model.MenuCategoryDessert,
	}

	mock.ExpectQuery(`INSERT INTO menu_items`).
		WithArgs("Tiramisù", "", 850, "dessert", 0, (*string)(nil), false).
		WillReturnRows(menuItemRows().RowError(0, &pgconn.PgError{Code: "23505"}))

	_, err := r.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrMenuItemExists)
}

func TestMenuRepo_Create_Invalid(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewMenuRepo(db)

	_, err := r.Create(context.Background(), &model.CreateMenuItemRequest{Name: " "})
	assert.Error(t, err)
	// No query should reach the pool for invalid input.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewMenuRepo(db)

	mock.ExpectQuery(`SELECT .* FROM menu_items WHERE id`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "description", "price_cents", "category",
			"position", "image_url", "published", "created_at", "updated_at",
		}))

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestMenuRepo_List_PublishedOnly(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewMenuRepo(db)

	mock.ExpectQuery(`SELECT .* FROM menu_items WHERE 1=1 AND published ORDER BY category, position, name`).
		WithArgs(100, 0).
		WillReturnRows(menuItemRows())

	items, err := r.List(context.Background(), MenuListOptions{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Published)
}

func TestMenuRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	defer mock.Close()
	r := NewMenuRepo(db)

	mock.ExpectExec(`DELETE FROM menu_items`).
		WithArgs("item-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(context.Background(), "item-1"))

	mock.ExpectExec(`DELETE FROM menu_items`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(context.Background(), "missing"), ErrMenuItemNotFound)
}
