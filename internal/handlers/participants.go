package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/metrics"
)

// JoinRequest represents the join request body.
type JoinRequest struct {
	Name string `json:"name"`
}

// Join handles participant registration.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.registry.Join(r.Context(), req.Name); err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.ParticipantsJoined.Inc()
	w.WriteHeader(http.StatusCreated)
}

// ListParticipants handles listing all active participants.
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.registry.ListActive(r.Context())
	if err != nil {
		h.DomainError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, participants)
}
