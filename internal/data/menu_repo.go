package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/casaluna/casaluna/internal/domain/model"
)

const menuItemColumns = `id, name, description, price_cents, category, position, image_url, published, created_at, updated_at`

// MenuRepo provides database operations for menu items.
type MenuRepo struct {
	db *DB
}

// NewMenuRepo creates a new MenuRepo.
func NewMenuRepo(db *DB) *MenuRepo { return &MenuRepo{db: db} }

// Create inserts a new menu item.
func (r *MenuRepo) Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	if req == nil {
		return nil, errors.New("create menu item request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	rows, err := r.db.Pool.Query(ctx, `
INSERT INTO menu_items (name, description, price_cents, category, position, image_url, published)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+menuItemColumns,
		strings.TrimSpace(req.Name), req.Description, req.PriceCents,
		string(req.Category), req.Position, req.ImageURL, published,
	)
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MenuItem])
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrMenuItemExists
		}
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a menu item by ID.
func (r *MenuRepo) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MenuItem])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &out, nil
}

// MenuListOptions controls filtering for listing menu items.
type MenuListOptions struct {
	Limit         int
	Offset        int
	Category      *model.MenuCategory
	PublishedOnly bool
}

// List retrieves menu items ordered by category and position.
func (r *MenuRepo) List(ctx context.Context, opts MenuListOptions) ([]*model.MenuItem, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	q := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE 1=1`
	args := []any{}
	if opts.Category != nil {
		args = append(args, string(*opts.Category))
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if opts.PublishedOnly {
		q += " AND published"
	}
	args = append(args, opts.Limit)
	q += fmt.Sprintf(" ORDER BY category, position, name LIMIT $%d", len(args))
	args = append(args, opts.Offset)
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.MenuItem])
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// Update applies a partial update to a menu item.
func (r *MenuRepo) Update(ctx context.Context, id string, req *model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	if req == nil {
		return nil, errors.New("update menu item request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	set := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Name != nil {
		add("name", strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.PriceCents != nil {
		add("price_cents", *req.PriceCents)
	}
	if req.Category != nil {
		add("category", string(*req.Category))
	}
	if req.Position != nil {
		add("position", *req.Position)
	}
	if req.ImageURL != nil {
		add("image_url", *req.ImageURL)
	}
	if req.Published != nil {
		add("published", *req.Published)
	}

	q := `UPDATE menu_items SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + menuItemColumns

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MenuItem])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrMenuItemExists
		}
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return &out, nil
}

// Delete removes a menu item.
func (r *MenuRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
