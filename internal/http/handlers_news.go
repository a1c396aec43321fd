package httpx

import (
	"errors"
	"net/http"

	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/domain/model"
	"github.com/casaluna/casaluna/internal/service"
)

// NewsHandlers provides HTTP handlers for news post operations.
type NewsHandlers struct {
	Svc  *service.NewsService
	Site PayloadInvalidator
}

// Create handles HTTP requests to create a new news post.
func (h *NewsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNewsPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusCreated, post)
}

// List handles HTTP requests to list news posts, newest first.
func (h *NewsHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxContentListLimit)
	publishedOnly := parseBoolQuery(r, "published", false)

	posts, err := h.Svc.List(r.Context(), limit, offset, publishedOnly)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles HTTP requests to get a news post by ID.
func (h *NewsHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("news post id is required")},
		)
		return
	}

	post, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrNewsPostNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "news_post_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Update handles HTTP requests to update a news post.
func (h *NewsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("news post id is required")},
		)
		return
	}

	var req model.UpdateNewsPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNewsPostNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "news_post_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, post)
}

// Delete handles HTTP requests to delete a news post.
func (h *NewsHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("news post id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, data.ErrNewsPostNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "news_post_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
