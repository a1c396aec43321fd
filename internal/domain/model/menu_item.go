//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxMenuItemNameLen = 120
	maxDescriptionLen  = 2000
)

// MenuCategory groups menu items on the public site.
type MenuCategory string

const (
	MenuCategoryStarter MenuCategory = "starter"
	MenuCategoryMain    MenuCategory = "main"
	MenuCategoryDessert MenuCategory = "dessert"
	MenuCategoryDrink   MenuCategory = "drink"
)

// Valid reports whether the menu category is supported.
func (c MenuCategory) Valid() bool {
	switch c {
	case MenuCategoryStarter, MenuCategoryMain, MenuCategoryDessert, MenuCategoryDrink:
		return true
	default:
		return false
	}
}

// ParseMenuCategory normalizes a category string and reports whether it is supported.
func ParseMenuCategory(value string) (MenuCategory, bool) {
	c := MenuCategory(strings.ToLower(strings.TrimSpace(value)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// MenuItem is one dish or drink on the menu.
type MenuItem struct {
	ID          string       `json:"id"           db:"id"`
	Name        string       `json:"name"         db:"name"`
	Description string       `json:"description"  db:"description"`
	PriceCents  int          `json:"price_cents"  db:"price_cents"`
	Category    MenuCategory `json:"category"     db:"category"`
	Position    int          `json:"position"     db:"position"`
	ImageURL    *string      `json:"image_url,omitempty" db:"image_url"`
	Published   bool         `json:"published"    db:"published"`
	CreatedAt   time.Time    `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"   db:"updated_at"`
}

// CreateMenuItemRequest represents parameters to create a MenuItem.
type CreateMenuItemRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	PriceCents  int          `json:"price_cents"`
	Category    MenuCategory `json:"category"`
	Position    int          `json:"position"`
	ImageURL    *string      `json:"image_url,omitempty"`
	Published   *bool        `json:"published,omitempty"`
}

// UpdateMenuItemRequest represents parameters to update a MenuItem.
type UpdateMenuItemRequest struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	PriceCents  *int          `json:"price_cents,omitempty"`
	Category    *MenuCategory `json:"category,omitempty"`
	Position    *int          `json:"position,omitempty"`
	ImageURL    *string       `json:"image_url,omitempty"`
	Published   *bool         `json:"published,omitempty"`
}

// Validate validates CreateMenuItemRequest.
func (r *CreateMenuItemRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxMenuItemNameLen {
		return errors.New("name exceeds maximum length")
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLen {
		return errors.New("description exceeds maximum length")
	}
	if r.PriceCents < 0 {
		return errors.New("price_cents cannot be negative")
	}
	if !r.Category.Valid() {
		return errors.New("category is invalid")
	}
	return nil
}

// Validate validates UpdateMenuItemRequest.
func (r *UpdateMenuItemRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxMenuItemNameLen {
			return errors.New("name exceeds maximum length")
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxDescriptionLen {
		return errors.New("description exceeds maximum length")
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return errors.New("price_cents cannot be negative")
	}
	if r.Category != nil && !r.Category.Valid() {
		return errors.New("category is invalid")
	}
	return nil
}
