package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
)

func TestMemoryStoreUniqueName(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.InsertParticipant(ctx, models.Participant{Name: "alice", LastStatus: 1}))
	assert.ErrorIs(t, s.InsertParticipant(ctx, models.Participant{Name: "alice", LastStatus: 2}), ErrDuplicateName)

	p, err := s.FindParticipant(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.LastStatus, "rejected insert must not touch the record")
}

func TestMemoryStoreStaleBatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.InsertParticipant(ctx, models.Participant{Name: "old", LastStatus: 100}))
	require.NoError(t, s.InsertParticipant(ctx, models.Participant{Name: "edge", LastStatus: 200}))
	require.NoError(t, s.InsertParticipant(ctx, models.Participant{Name: "new", LastStatus: 300}))

	stale, err := s.FindStaleParticipants(ctx, 200)
	require.NoError(t, err)
	assert.Len(t, stale, 2, "cutoff is inclusive")

	deleted, err := s.DeleteStaleParticipants(ctx, 200)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	remaining, err := s.ListParticipants(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Name)
}

func TestMemoryStoreMessageOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.InsertMessage(ctx, models.Message{ID: "1", Text: "first"}))
	require.NoError(t, s.InsertMessages(ctx, []models.Message{
		{ID: "2", Text: "second"},
		{ID: "3", Text: "third"},
	}))

	messages, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "third", messages[2].Text)
}
