package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/store"
)

// Fixed status message texts for join and departure notices.
const (
	enteredText = "entered the room"
	leftText    = "left the room"
)

const timeLayout = "15:04:05"

// Registry tracks active participants and their last-seen timestamp.
type Registry struct {
	ds  store.DataStore
	now func() time.Time
}

// NewRegistry creates a presence registry backed by the given store.
func NewRegistry(ds store.DataStore) *Registry {
	return &Registry{ds: ds, now: time.Now}
}

// Join registers a new participant and broadcasts a status message.
// Returns ValidationError for names shorter than 3 characters and
// ConflictError when the name is already active. The store's unique index
// backs the conflict check, so concurrent joins for the same name cannot
// both succeed.
func (r *Registry) Join(ctx context.Context, name string) error {
	if err := checkInput(joinInput{Name: name}); err != nil {
		return err
	}

	existing, err := r.ds.FindParticipant(ctx, name)
	if err != nil {
		return &StoreError{Op: "find participant", Err: err}
	}
	if existing != nil {
		return &ConflictError{Name: name}
	}

	now := r.now()
	err = r.ds.InsertParticipant(ctx, models.Participant{
		Name:       name,
		LastStatus: now.UnixMilli(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			return &ConflictError{Name: name}
		}
		return &StoreError{Op: "insert participant", Err: err}
	}

	err = r.ds.InsertMessage(ctx, models.Message{
		ID:   ulid.Make().String(),
		From: name,
		To:   models.Broadcast,
		Text: enteredText,
		Type: models.TypeStatus,
		Time: now.Format(timeLayout),
	})
	if err != nil {
		return &StoreError{Op: "insert status message", Err: err}
	}
	return nil
}

// Heartbeat refreshes the participant's lastStatus. Returns NotFoundError
// when no active participant has that name.
func (r *Registry) Heartbeat(ctx context.Context, name string) error {
	found, err := r.ds.TouchParticipant(ctx, name, r.now().UnixMilli())
	if err != nil {
		return &StoreError{Op: "touch participant", Err: err}
	}
	if !found {
		return &NotFoundError{Name: name}
	}
	return nil
}

// ListActive returns all active participant records.
func (r *Registry) ListActive(ctx context.Context) ([]models.Participant, error) {
	participants, err := r.ds.ListParticipants(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list participants", Err: err}
	}
	return participants, nil
}

// SweepExpired evicts every participant whose lastStatus is at or before
// now minus threshold, and broadcasts one departure notice per eviction.
// Deletion and the departure batch are each a single store call; if the
// batch append fails after the delete succeeded, the error names the
// removed participants so the caller can reconcile. Returns the removed
// participants.
func (r *Registry) SweepExpired(ctx context.Context, now time.Time, threshold time.Duration) ([]models.Participant, error) {
	cutoff := now.Add(-threshold).UnixMilli()

	stale, err := r.ds.FindStaleParticipants(ctx, cutoff)
	if err != nil {
		return nil, &StoreError{Op: "find stale participants", Err: err}
	}
	if len(stale) == 0 {
		return nil, nil
	}

	departures := make([]models.Message, len(stale))
	stamp := now.Format(timeLayout)
	for i, p := range stale {
		departures[i] = models.Message{
			ID:   ulid.Make().String(),
			From: p.Name,
			To:   models.Broadcast,
			Text: leftText,
			Type: models.TypeStatus,
			Time: stamp,
		}
	}

	if _, err := r.ds.DeleteStaleParticipants(ctx, cutoff); err != nil {
		return nil, &StoreError{Op: "delete stale participants", Err: err}
	}

	if err := r.ds.InsertMessages(ctx, departures); err != nil {
		names := make([]string, len(stale))
		for i, p := range stale {
			names[i] = p.Name
		}
		return stale, &StoreError{
			Op:  fmt.Sprintf("append departure messages for %v (participants already removed)", names),
			Err: err,
		}
	}
	return stale, nil
}
