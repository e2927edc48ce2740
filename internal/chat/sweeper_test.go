package chat

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/store"
)

func TestSweeperEvictsStaleParticipants(t *testing.T) {
	ds := store.NewMemoryStore()
	registry := NewRegistry(ds)

	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "stale", LastStatus: time.Now().Add(-time.Minute).UnixMilli(),
	}))
	require.NoError(t, ds.InsertParticipant(context.Background(), models.Participant{
		Name: "fresh", LastStatus: time.Now().Add(time.Minute).UnixMilli(),
	}))

	sweeper := NewSweeper(registry, 5*time.Millisecond, 10*time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		participants, err := ds.ListParticipants(context.Background())
		return err == nil && len(participants) == 1
	}, time.Second, 5*time.Millisecond, "stale participant should be evicted")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}

	participants, err := ds.ListParticipants(context.Background())
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "fresh", participants[0].Name)

	messages, err := ds.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "stale", messages[0].From)
	assert.Equal(t, "left the room", messages[0].Text)
}

func TestSweeperStopsBeforeFirstTick(t *testing.T) {
	ds := store.NewMemoryStore()
	sweeper := NewSweeper(NewRegistry(ds), time.Hour, 10*time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
