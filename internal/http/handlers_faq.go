package httpx

import (
	"errors"
	"net/http"

	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/domain/model"
	"github.com/casaluna/casaluna/internal/service"
)

// FAQHandlers provides HTTP handlers for FAQ entry operations.
type FAQHandlers struct {
	Svc  *service.FAQService
	Site PayloadInvalidator
}

// Create handles HTTP requests to create a new FAQ entry.
func (h *FAQHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateFAQRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	entry, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusCreated, entry)
}

// List handles HTTP requests to list FAQ entries with pagination.
func (h *FAQHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 100, maxContentListLimit)
	publishedOnly := parseBoolQuery(r, "published", false)

	entries, err := h.Svc.List(r.Context(), limit, offset, publishedOnly)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetByID handles HTTP requests to get an FAQ entry by ID.
func (h *FAQHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("faq entry id is required")},
		)
		return
	}

	entry, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrFAQNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "faq_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, entry)
}

// Update handles HTTP requests to update an FAQ entry.
func (h *FAQHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("faq entry id is required")},
		)
		return
	}

	var req model.UpdateFAQRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	entry, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrFAQNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "faq_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, entry)
}

// Delete handles HTTP requests to delete an FAQ entry.
func (h *FAQHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("faq entry id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, data.ErrFAQNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "faq_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
