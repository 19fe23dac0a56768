package handlers

import (
	"net/http"
)

// Health handles GET /health. Storage unavailability is the one failure
// class surfaced as unavailable rather than a typed domain error.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
