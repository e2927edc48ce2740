package store

import (
	"context"
	"sync"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
)

// MemoryStore is an in-process DataStore with the same semantics as
// MongoStore, including the name uniqueness constraint. It backs unit tests
// and store-less local runs.
type MemoryStore struct {
	mu           sync.Mutex
	participants []models.Participant
	messages     []models.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) FindParticipant(ctx context.Context, name string) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.Name == name {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Participant, len(s.participants))
	copy(out, s.participants)
	return out, nil
}

func (s *MemoryStore) InsertParticipant(ctx context.Context, p models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.participants {
		if existing.Name == p.Name {
			return ErrDuplicateName
		}
	}
	s.participants = append(s.participants, p)
	return nil
}

func (s *MemoryStore) TouchParticipant(ctx context.Context, name string, lastStatus int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants {
		if s.participants[i].Name == name {
			s.participants[i].LastStatus = lastStatus
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) FindStaleParticipants(ctx context.Context, cutoff int64) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stale := []models.Participant{}
	for _, p := range s.participants {
		if p.LastStatus <= cutoff {
			stale = append(stale, p)
		}
	}
	return stale, nil
}

func (s *MemoryStore) DeleteStaleParticipants(ctx context.Context, cutoff int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.participants[:0]
	var deleted int64
	for _, p := range s.participants {
		if p.LastStatus <= cutoff {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	s.participants = kept
	return deleted, nil
}

func (s *MemoryStore) InsertMessage(ctx context.Context, m models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return nil
}

func (s *MemoryStore) InsertMessages(ctx context.Context, msgs []models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
	return nil
}

func (s *MemoryStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}
