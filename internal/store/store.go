package store

import (
	"context"
	"errors"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
)

// ErrDuplicateName is returned by InsertParticipant when a participant with
// the same name is already active. The Mongo implementation relies on the
// unique index on participants.name, so concurrent joins cannot both win.
var ErrDuplicateName = errors.New("participant name already active")

// DataStore defines persistent storage over the two collections,
// participants and messages. Both MongoStore and MemoryStore implement it.
type DataStore interface {
	// Connection management
	Close(ctx context.Context) error
	Ping(ctx context.Context) error

	// Participant operations
	FindParticipant(ctx context.Context, name string) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	InsertParticipant(ctx context.Context, p models.Participant) error
	TouchParticipant(ctx context.Context, name string, lastStatus int64) (bool, error)
	FindStaleParticipants(ctx context.Context, cutoff int64) ([]models.Participant, error)
	DeleteStaleParticipants(ctx context.Context, cutoff int64) (int64, error)

	// Message operations
	InsertMessage(ctx context.Context, m models.Message) error
	InsertMessages(ctx context.Context, msgs []models.Message) error
	ListMessages(ctx context.Context) ([]models.Message, error)
}
