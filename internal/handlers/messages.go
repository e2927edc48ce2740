package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/metrics"
)

// PostMessageRequest represents the post message request body. The sender
// comes from the participant header, not the body.
type PostMessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// PostMessage handles posting a public or private message.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	from := r.Header.Get(participantHeader)

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.log.Post(r.Context(), from, req.To, req.Text, req.Type); err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.MessagesPosted.WithLabelValues(req.Type).Inc()
	w.WriteHeader(http.StatusCreated)
}

// ListMessages handles fetching the messages visible to the viewer named in
// the participant header. A missing, non-numeric or non-positive limit
// returns all visible messages.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	viewer := r.Header.Get(participantHeader)
	if viewer == "" {
		h.Error(w, http.StatusNotFound, "participant header is required")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	messages, err := h.log.ListVisible(r.Context(), viewer, limit)
	if err != nil {
		h.DomainError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, messages)
}
