package service

import (
	"context"

	"github.com/casaluna/casaluna/internal/domain/model"
)

// NewsServiceOptions groups dependencies for NewsService.
type NewsServiceOptions struct {
	Repo NewsRepository
}

// NewsService exposes news post CRUD to the handlers.
type NewsService struct {
	repo NewsRepository
}

// NewNewsService constructs a new NewsService.
func NewNewsService(opts NewsServiceOptions) *NewsService {
	return &NewsService{repo: opts.Repo}
}

// Create creates a news post.
func (s *NewsService) Create(ctx context.Context, req *model.CreateNewsPostRequest) (*model.NewsPost, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a news post by ID.
func (s *NewsService) GetByID(ctx context.Context, id string) (*model.NewsPost, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of news posts, newest first.
func (s *NewsService) List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.NewsPost, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset, publishedOnly)
}

// Update applies a partial update to a news post.
func (s *NewsService) Update(ctx context.Context, id string, req *model.UpdateNewsPostRequest) (*model.NewsPost, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes a news post.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
