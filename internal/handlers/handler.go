package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/chat"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/store"
)

// participantHeader carries the acting participant's name on message and
// status requests.
const participantHeader = "participant"

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	registry *chat.Registry
	log      *chat.Log
	ds       store.DataStore
}

// NewHandler creates a new Handler with the given core components.
func NewHandler(registry *chat.Registry, log *chat.Log, ds store.DataStore) *Handler {
	return &Handler{registry: registry, log: log, ds: ds}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// DomainError maps the core error taxonomy onto HTTP status codes:
// validation 422 (with the full list of violations), conflict 409,
// not found 404, anything else 500.
func (h *Handler) DomainError(w http.ResponseWriter, err error) {
	var verr *chat.ValidationError
	if errors.As(err, &verr) {
		h.JSON(w, http.StatusUnprocessableEntity, verr.Fields)
		return
	}

	var cerr *chat.ConflictError
	if errors.As(err, &cerr) {
		h.Error(w, http.StatusConflict, cerr.Error())
		return
	}

	var nerr *chat.NotFoundError
	if errors.As(err, &nerr) {
		h.Error(w, http.StatusNotFound, nerr.Error())
		return
	}

	h.Error(w, http.StatusInternalServerError, "store failure")
}
