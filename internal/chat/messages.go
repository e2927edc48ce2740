package chat

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/store"
)

// Log appends chat entries and filters them per viewer.
type Log struct {
	ds  store.DataStore
	now func() time.Time
}

// NewLog creates a message log backed by the given store.
func NewLog(ds store.DataStore) *Log {
	return &Log{ds: ds, now: time.Now}
}

// Post validates and appends a user message. All field violations are
// reported in one ValidationError. Returns ConflictError when the sender is
// not an active participant.
func (l *Log) Post(ctx context.Context, from, to, text, msgType string) error {
	if err := checkInput(postInput{From: from, To: to, Text: text, Type: msgType}); err != nil {
		return err
	}

	sender, err := l.ds.FindParticipant(ctx, from)
	if err != nil {
		return &StoreError{Op: "find sender", Err: err}
	}
	if sender == nil {
		return &ConflictError{Name: from}
	}

	err = l.ds.InsertMessage(ctx, models.Message{
		ID:   ulid.Make().String(),
		From: from,
		To:   to,
		Text: text,
		Type: msgType,
		Time: l.now().Format(timeLayout),
	})
	if err != nil {
		return &StoreError{Op: "insert message", Err: err}
	}
	return nil
}

// ListVisible returns the messages the viewer may see, in chronological
// order. A message is visible when it is public (type "message"), addressed
// to the viewer, sent by the viewer, or broadcast. When limit is positive
// only the last limit messages are returned; zero or negative means all.
// (The legacy behavior returned nothing for a non-numeric limit; returning
// everything is the deliberate policy here.)
func (l *Log) ListVisible(ctx context.Context, viewer string, limit int) ([]models.Message, error) {
	if err := checkInput(listInput{Viewer: viewer}); err != nil {
		return nil, err
	}

	all, err := l.ds.ListMessages(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list messages", Err: err}
	}

	visible := []models.Message{}
	for _, m := range all {
		if visibleTo(m, viewer) {
			visible = append(visible, m)
		}
	}

	if limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	return visible, nil
}

func visibleTo(m models.Message, viewer string) bool {
	return m.Type == models.TypeMessage ||
		m.To == viewer ||
		m.From == viewer ||
		m.To == models.Broadcast
}
