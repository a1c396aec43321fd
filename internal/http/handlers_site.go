package httpx

import (
	"net/http"

	"github.com/casaluna/casaluna/internal/service"
)

// SiteHandlers serves the public site payload.
type SiteHandlers struct {
	Svc *service.SiteService
}

// Payload returns the assembled public content bundle.
// GET /api/site.
func (h *SiteHandlers) Payload(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Svc.Payload(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "site_payload_failed", Err: err})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		return
	}
}
