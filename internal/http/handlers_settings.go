package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/casaluna/casaluna/internal/data"
	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	"github.com/casaluna/casaluna/internal/domain/model"
	"github.com/casaluna/casaluna/internal/service"
)

// SettingsHandlers provides HTTP handlers for the settings key/value table.
type SettingsHandlers struct {
	Svc  *service.SettingsService
	Site PayloadInvalidator
}

// Get handles HTTP requests to read one setting. An optional ?path= query
// applies a JMESPath expression to the JSON value.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("setting key is required")},
		)
		return
	}

	setting, err := h.Svc.Get(r.Context(), key, r.URL.Query().Get("path"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrSettingNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "setting_not_found", Err: err})
		case strings.Contains(err.Error(), "path expression"):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path_expression", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, setting)
}

// List handles HTTP requests to list all settings.
func (h *SettingsHandlers) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// Upsert handles HTTP requests to create or replace a setting.
func (h *SettingsHandlers) Upsert(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("setting key is required")},
		)
		return
	}
	if !h.allowWrite(w, r, key) {
		return
	}

	var req model.UpsertSettingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Key = key
	if user, ok := GetUserFromContext(r.Context()); ok {
		req.UpdatedBy = &user.ID
	}

	setting, err := h.Svc.Upsert(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "upsert_failed", Err: err})
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, setting)
}

// Delete handles HTTP requests to remove a setting.
func (h *SettingsHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("setting key is required")},
		)
		return
	}
	if !h.allowWrite(w, r, key) {
		return
	}

	if err := h.Svc.Delete(r.Context(), key); err != nil {
		if errors.Is(err, data.ErrSettingNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "setting_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	invalidatePayload(r, h.Site)
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// allowWrite enforces the elevated requirement for feature toggle writes.
// The route-level middleware admits admins; flipping feature toggles takes
// a superadmin.
func (h *SettingsHandlers) allowWrite(w http.ResponseWriter, r *http.Request, key string) bool {
	if key != model.SettingFeatureToggles {
		return true
	}
	user, ok := GetUserFromContext(r.Context())
	if !ok || !user.Role.AtLeast(domainauth.RoleSuperadmin) {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("feature toggles require superadmin"),
		})
		return false
	}
	return true
}
