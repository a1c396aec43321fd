package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// ProfileRepo reads profile rows keyed by the identity provider's user ID.
// The profile row is the single source of truth for a user's role.
type ProfileRepo struct {
	db *DB
}

// NewProfileRepo constructs a profile repository.
func NewProfileRepo(db *DB) *ProfileRepo { return &ProfileRepo{db: db} }

// GetProfileByIdentity returns the profile for the given identity ID.
func (r *ProfileRepo) GetProfileByIdentity(ctx context.Context, identityID string) (domainauth.User, error) {
	if identityID == "" {
		return domainauth.User{}, ErrProfileNotFound
	}

	const q = `
SELECT id, email, display_name, COALESCE(avatar_url, '') AS avatar_url, role
FROM profiles WHERE id = $1`
	var (
		u    domainauth.User
		role string
	)
	err := r.db.Pool.QueryRow(ctx, q, identityID).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.AvatarURL, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.User{}, ErrProfileNotFound
		}
		return domainauth.User{}, fmt.Errorf("get profile: %w", err)
	}
	u.Role = domainauth.ParseRole(role)
	return u, nil
}

// EnsureProfile inserts a profile row for a newly seen identity with the
// lowest role, leaving existing rows untouched.
func (r *ProfileRepo) EnsureProfile(ctx context.Context, identity domainauth.Identity) error {
	const q = `
INSERT INTO profiles (id, email, display_name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, identity.ID, identity.Email, identity.Email, string(domainauth.RoleUser))
	if err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	return nil
}
