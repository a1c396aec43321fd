package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrProfileNotFound is returned when no profile row exists for an identity.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrMenuItemNotFound is returned when a menu item is not found.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrMenuItemExists is returned on a duplicate menu item name within a category.
	ErrMenuItemExists = errors.New("menu item already exists")
	// ErrFAQNotFound is returned when an FAQ entry is not found.
	ErrFAQNotFound = errors.New("faq entry not found")
	// ErrNewsPostNotFound is returned when a news post is not found.
	ErrNewsPostNotFound = errors.New("news post not found")
	// ErrSettingNotFound is returned when a setting key is not found.
	ErrSettingNotFound = errors.New("setting not found")
)

// isUniqueViolation reports whether the error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == pgerrcode.UniqueViolation
}
