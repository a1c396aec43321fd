package service

import (
	"context"

	"github.com/casaluna/casaluna/internal/domain/model"
)

// FAQServiceOptions groups dependencies for FAQService.
type FAQServiceOptions struct {
	Repo FAQRepository
}

// FAQService exposes FAQ entry CRUD to the handlers.
type FAQService struct {
	repo FAQRepository
}

// NewFAQService constructs a new FAQService.
func NewFAQService(opts FAQServiceOptions) *FAQService {
	return &FAQService{repo: opts.Repo}
}

// Create creates an FAQ entry.
func (s *FAQService) Create(ctx context.Context, req *model.CreateFAQRequest) (*model.FAQEntry, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves an FAQ entry by ID.
func (s *FAQService) GetByID(ctx context.Context, id string) (*model.FAQEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of FAQ entries.
func (s *FAQService) List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.FAQEntry, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset, publishedOnly)
}

// Update applies a partial update to an FAQ entry.
func (s *FAQService) Update(ctx context.Context, id string, req *model.UpdateFAQRequest) (*model.FAQEntry, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes an FAQ entry.
func (s *FAQService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
