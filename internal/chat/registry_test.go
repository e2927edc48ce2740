package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/store"
)

func setupRegistry(t *testing.T) (*Registry, *store.MemoryStore) {
	t.Helper()
	ds := store.NewMemoryStore()
	return NewRegistry(ds), ds
}

func TestJoinRejectsShortNames(t *testing.T) {
	r, _ := setupRegistry(t)

	for _, name := range []string{"", "a", "jo"} {
		err := r.Join(context.Background(), name)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "name %q should fail validation", name)
		assert.NotEmpty(t, verr.Fields)
	}
}

func TestJoinCreatesParticipantAndStatusMessage(t *testing.T) {
	r, ds := setupRegistry(t)

	require.NoError(t, r.Join(context.Background(), "alice"))

	participants, err := ds.ListParticipants(context.Background())
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "alice", participants[0].Name)
	assert.Greater(t, participants[0].LastStatus, int64(0))

	messages, err := ds.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "alice", messages[0].From)
	assert.Equal(t, models.Broadcast, messages[0].To)
	assert.Equal(t, models.TypeStatus, messages[0].Type)
	assert.Equal(t, "entered the room", messages[0].Text)
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, messages[0].Time)
}

func TestJoinDuplicateConflict(t *testing.T) {
	r, ds := setupRegistry(t)

	require.NoError(t, r.Join(context.Background(), "alice"))

	before, err := ds.FindParticipant(context.Background(), "alice")
	require.NoError(t, err)

	err = r.Join(context.Background(), "alice")
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "alice", cerr.Name)

	// The existing record is untouched by the rejected join.
	after, err := ds.FindParticipant(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, before.LastStatus, after.LastStatus)

	messages, err := ds.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Len(t, messages, 1, "no second status message")
}

func TestJoinMapsStoreUniquenessToConflict(t *testing.T) {
	r, ds := setupRegistry(t)

	// Simulate losing the join race: the record appears between the
	// existence check and the insert.
	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "alice", LastStatus: time.Now().UnixMilli(),
	}))

	err := ds.InsertParticipant(context.Background(), models.Participant{
		Name: "alice", LastStatus: time.Now().UnixMilli(),
	})
	require.ErrorIs(t, err, store.ErrDuplicateName)

	var cerr *ConflictError
	require.ErrorAs(t, r.Join(context.Background(), "alice"), &cerr)
}

func TestHeartbeatUnknownNotFound(t *testing.T) {
	r, ds := setupRegistry(t)

	err := r.Heartbeat(context.Background(), "ghost")
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "ghost", nerr.Name)

	// No side effects
	participants, err := ds.ListParticipants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, participants)
	messages, err := ds.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestHeartbeatRefreshesLastStatus(t *testing.T) {
	r, ds := setupRegistry(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }
	require.NoError(t, r.Join(context.Background(), "alice"))

	r.now = func() time.Time { return base.Add(5 * time.Second) }
	require.NoError(t, r.Heartbeat(context.Background(), "alice"))

	p, err := ds.FindParticipant(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, base.Add(5*time.Second).UnixMilli(), p.LastStatus)
}

func TestListActive(t *testing.T) {
	r, _ := setupRegistry(t)

	require.NoError(t, r.Join(context.Background(), "alice"))
	require.NoError(t, r.Join(context.Background(), "bob"))

	participants, err := r.ListActive(context.Background())
	require.NoError(t, err)

	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}

func TestSweepExpiredRemovesOnlyStale(t *testing.T) {
	r, ds := setupRegistry(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	threshold := 10 * time.Second

	// stale: exactly at the cutoff and older
	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "at-cutoff", LastStatus: now.Add(-threshold).UnixMilli(),
	}))
	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "older", LastStatus: now.Add(-time.Minute).UnixMilli(),
	}))
	// fresh: inside the threshold
	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "fresh", LastStatus: now.Add(-threshold + time.Millisecond).UnixMilli(),
	}))

	removed, err := r.SweepExpired(context.Background(), now, threshold)
	require.NoError(t, err)

	removedNames := make([]string, len(removed))
	for i, p := range removed {
		removedNames[i] = p.Name
	}
	assert.ElementsMatch(t, []string{"at-cutoff", "older"}, removedNames)

	participants, err := ds.ListParticipants(context.Background())
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "fresh", participants[0].Name)

	// Exactly one departure notice per removed participant.
	messages, err := ds.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	departed := make([]string, len(messages))
	for i, m := range messages {
		assert.Equal(t, models.TypeStatus, m.Type)
		assert.Equal(t, models.Broadcast, m.To)
		assert.Equal(t, "left the room", m.Text)
		departed[i] = m.From
	}
	assert.ElementsMatch(t, []string{"at-cutoff", "older"}, departed)
}

func TestSweepExpiredNothingStale(t *testing.T) {
	r, ds := setupRegistry(t)

	now := time.Now()
	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "fresh", LastStatus: now.UnixMilli(),
	}))

	removed, err := r.SweepExpired(context.Background(), now, 10*time.Second)
	require.NoError(t, err)
	assert.Empty(t, removed)

	messages, err := ds.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)
}

// failingBatchStore makes the departure batch fail after deletion succeeded.
type failingBatchStore struct {
	store.DataStore
}

func (s *failingBatchStore) InsertMessages(ctx context.Context, msgs []models.Message) error {
	return errors.New("write concern error")
}

func TestSweepSurfacesDepartureAppendFailure(t *testing.T) {
	ds := store.NewMemoryStore()
	r := NewRegistry(&failingBatchStore{DataStore: ds})

	now := time.Now()
	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "stale", LastStatus: now.Add(-time.Minute).UnixMilli(),
	}))

	removed, err := r.SweepExpired(context.Background(), now, 10*time.Second)

	// The participant is gone but the failure is surfaced, naming them.
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Error(), "stale")
	require.Len(t, removed, 1)

	participants, lerr := ds.ListParticipants(context.Background())
	require.NoError(t, lerr)
	assert.Empty(t, participants)
}
