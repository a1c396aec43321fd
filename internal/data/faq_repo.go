package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/casaluna/casaluna/internal/domain/model"
)

const faqColumns = `id, question, answer, position, published, created_at, updated_at`

// FAQRepo provides database operations for FAQ entries.
type FAQRepo struct {
	db *DB
}

// NewFAQRepo creates a new FAQRepo.
func NewFAQRepo(db *DB) *FAQRepo { return &FAQRepo{db: db} }

// Create inserts a new FAQ entry.
func (r *FAQRepo) Create(ctx context.Context, req *model.CreateFAQRequest) (*model.FAQEntry, error) {
	if req == nil {
		return nil, errors.New("create faq request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	rows, err := r.db.Pool.Query(ctx, `
INSERT INTO faq_entries (question, answer, position, published)
VALUES ($1, $2, $3, $4)
RETURNING `+faqColumns,
		strings.TrimSpace(req.Question), req.Answer, req.Position, published,
	)
	if err != nil {
		return nil, fmt.Errorf("create faq entry: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FAQEntry])
	if err != nil {
		return nil, fmt.Errorf("create faq entry: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an FAQ entry by ID.
func (r *FAQRepo) GetByID(ctx context.Context, id string) (*model.FAQEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+faqColumns+` FROM faq_entries WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get faq entry: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FAQEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("get faq entry: %w", err)
	}
	return &out, nil
}

// List retrieves FAQ entries ordered by position.
func (r *FAQRepo) List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.FAQEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + faqColumns + ` FROM faq_entries`
	if publishedOnly {
		q += ` WHERE published`
	}
	q += ` ORDER BY position, created_at LIMIT $1 OFFSET $2`

	rows, err := r.db.Pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list faq entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.FAQEntry])
	if err != nil {
		return nil, fmt.Errorf("list faq entries: %w", err)
	}
	return entries, nil
}

// Update applies a partial update to an FAQ entry.
func (r *FAQRepo) Update(ctx context.Context, id string, req *model.UpdateFAQRequest) (*model.FAQEntry, error) {
	if req == nil {
		return nil, errors.New("update faq request is required")
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
	if req.Question != nil {
		add("question", strings.TrimSpace(*req.Question))
	}
	if req.Answer != nil {
		add("answer", *req.Answer)
	}
	if req.Position != nil {
		add("position", *req.Position)
	}
	if req.Published != nil {
		add("published", *req.Published)
	}

	q := `UPDATE faq_entries SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + faqColumns

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update faq entry: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FAQEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("update faq entry: %w", err)
	}
	return &out, nil
}

// Delete removes an FAQ entry.
func (r *FAQRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM faq_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faq entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFAQNotFound
	}
	return nil
}
