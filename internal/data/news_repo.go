package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/casaluna/casaluna/internal/domain/model"
)

const newsColumns = `id, title, body, image_url, published_at, created_at, updated_at`

// NewsRepo provides database operations for news posts.
type NewsRepo struct {
	db *DB
}

// NewNewsRepo creates a new NewsRepo.
func NewNewsRepo(db *DB) *NewsRepo { return &NewsRepo{db: db} }

// Create inserts a new news post.
func (r *NewsRepo) Create(ctx context.Context, req *model.CreateNewsPostRequest) (*model.NewsPost, error) {
	if req == nil {
		return nil, errors.New("create news post request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `
INSERT INTO news_posts (title, body, image_url, published_at)
VALUES ($1, $2, $3, $4)
RETURNING `+newsColumns,
		strings.TrimSpace(req.Title), req.Body, req.ImageURL, req.PublishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create news post: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.NewsPost])
	if err != nil {
		return nil, fmt.Errorf("create news post: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a news post by ID.
func (r *NewsRepo) GetByID(ctx context.Context, id string) (*model.NewsPost, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news_posts WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get news post: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.NewsPost])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNewsPostNotFound
		}
		return nil, fmt.Errorf("get news post: %w", err)
	}
	return &out, nil
}

// List retrieves news posts, most recent first. publishedOnly limits the
// result to posts whose published_at is in the past.
func (r *NewsRepo) List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.NewsPost, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + newsColumns + ` FROM news_posts`
	if publishedOnly {
		q += ` WHERE published_at IS NOT NULL AND published_at <= now()`
	}
	q += ` ORDER BY COALESCE(published_at, created_at) DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list news posts: %w", err)
	}
	defer rows.Close()

	posts, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.NewsPost])
	if err != nil {
		return nil, fmt.Errorf("list news posts: %w", err)
	}
	return posts, nil
}

// Update applies a partial update to a news post.
func (r *NewsRepo) Update(ctx context.Context, id string, req *model.UpdateNewsPostRequest) (*model.NewsPost, error) {
	if req == nil {
		return nil, errors.New("update news post request is required")
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
	if req.Title != nil {
		add("title", strings.TrimSpace(*req.Title))
	}
	if req.Body != nil {
		add("body", *req.Body)
	}
	if req.ImageURL != nil {
		add("image_url", *req.ImageURL)
	}
	if req.PublishedAt != nil {
		add("published_at", *req.PublishedAt)
	}
	if req.Unpublish {
		set = append(set, "published_at = NULL")
	}

	q := `UPDATE news_posts SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + newsColumns

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update news post: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.NewsPost])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNewsPostNotFound
		}
		return nil, fmt.Errorf("update news post: %w", err)
	}
	return &out, nil
}

// Delete removes a news post.
func (r *NewsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM news_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNewsPostNotFound
	}
	return nil
}
