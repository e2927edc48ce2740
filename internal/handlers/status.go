package handlers

import (
	"net/http"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/metrics"
)

// Status handles the heartbeat that keeps a participant active.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	name := r.Header.Get(participantHeader)
	if name == "" {
		h.Error(w, http.StatusNotFound, "participant header is required")
		return
	}

	if err := h.registry.Heartbeat(r.Context(), name); err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.HeartbeatsTotal.Inc()
	w.WriteHeader(http.StatusOK)
}
