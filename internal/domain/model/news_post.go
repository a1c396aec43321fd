//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTitleLen = 200
	maxBodyLen  = 20000
)

// NewsPost is one announcement shown on the public news page.
type NewsPost struct {
	ID          string     `json:"id"           db:"id"`
	Title       string     `json:"title"        db:"title"`
	Body        string     `json:"body"         db:"body"`
	ImageURL    *string    `json:"image_url,omitempty" db:"image_url"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"   db:"updated_at"`
}

// Published reports whether the post is visible on the public site.
func (p *NewsPost) Published(now time.Time) bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// CreateNewsPostRequest represents parameters to create a NewsPost.
type CreateNewsPostRequest struct {
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	ImageURL    *string    `json:"image_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// UpdateNewsPostRequest represents parameters to update a NewsPost.
type UpdateNewsPostRequest struct {
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Unpublish   bool       `json:"unpublish,omitempty"`
}

// Validate validates CreateNewsPostRequest.
func (r *CreateNewsPostRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return errors.New("title exceeds maximum length")
	}
	if utf8.RuneCountInString(r.Body) > maxBodyLen {
		return errors.New("body exceeds maximum length")
	}
	return nil
}

// Validate validates UpdateNewsPostRequest.
func (r *UpdateNewsPostRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			return errors.New("title exceeds maximum length")
		}
	}
	if r.Body != nil && utf8.RuneCountInString(*r.Body) > maxBodyLen {
		return errors.New("body exceeds maximum length")
	}
	if r.Unpublish && r.PublishedAt != nil {
		return errors.New("cannot set published_at and unpublish together")
	}
	return nil
}
