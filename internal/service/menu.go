package service

import (
	"context"

	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/domain/model"
)

// MenuServiceOptions groups dependencies for MenuService.
type MenuServiceOptions struct {
	Repo MenuRepository
}

// MenuService exposes menu item CRUD to the handlers.
type MenuService struct {
	repo MenuRepository
}

// NewMenuService constructs a new MenuService.
func NewMenuService(opts MenuServiceOptions) *MenuService {
	return &MenuService{repo: opts.Repo}
}

// Create creates a menu item.
func (s *MenuService) Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a menu item by ID.
func (s *MenuService) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of menu items.
func (s *MenuService) List(ctx context.Context, opts data.MenuListOptions) ([]*model.MenuItem, error) {
	return s.repo.List(ctx, normalizeMenuListOptions(opts))
}

// Update applies a partial update to a menu item.
func (s *MenuService) Update(ctx context.Context, id string, req *model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes a menu item.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizeMenuListOptions(opts data.MenuListOptions) data.MenuListOptions {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 100
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
