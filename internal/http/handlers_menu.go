// Package httpx provides HTTP handlers and middleware for the Casa Luna API.
package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/domain/model"
	"github.com/casaluna/casaluna/internal/service"
)

const (
	maxContentListLimit = 200 // Maximum number of content rows per page
)

// PayloadInvalidator drops the cached public site payload after a content
// write. Handlers treat it as optional.
type PayloadInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// MenuHandlers provides HTTP handlers for menu item operations.
type MenuHandlers struct {
	Svc  *service.MenuService
	Site PayloadInvalidator
}

// Create handles HTTP requests to create a new menu item.
func (h *MenuHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMenuItemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrMenuItemExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "name_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusCreated, item)
}

// List handles HTTP requests to list menu items with pagination and filters.
func (h *MenuHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 100, maxContentListLimit)

	opts := data.MenuListOptions{
		Limit:         limit,
		Offset:        offset,
		PublishedOnly: parseBoolQuery(r, "published", false),
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, ok := model.ParseMenuCategory(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_category",
				Err:     errors.New("category is invalid"),
			})
			return
		}
		opts.Category = &category
	}

	items, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles HTTP requests to get a menu item by ID.
func (h *MenuHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("menu item id is required")},
		)
		return
	}

	item, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrMenuItemNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "menu_item_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

// Update handles HTTP requests to update a menu item.
func (h *MenuHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("menu item id is required")},
		)
		return
	}

	var req model.UpdateMenuItemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrMenuItemNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "menu_item_not_found", Err: err})
		case errors.Is(err, data.ErrMenuItemExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "name_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, item)
}

// Delete handles HTTP requests to delete a menu item.
func (h *MenuHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("menu item id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, data.ErrMenuItemNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "menu_item_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// invalidatePayload drops the cached site payload when an invalidator is wired.
func invalidatePayload(r *http.Request, site PayloadInvalidator) {
	if site != nil {
		site.InvalidateCache(r.Context())
	}
}
