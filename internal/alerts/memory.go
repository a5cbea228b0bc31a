package alerts

import (
	"context"
	"sort"
	"sync"

	"github.com/albapepper/comeback-scout/internal/model"
)

type pairKey struct {
	matchID  string
	teamName string
}

// memoryStore keeps alerts in process memory. Used for local runs and tests.
type memoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*model.ComebackAlert
	byPair map[pairKey]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() Store {
	return &memoryStore{
		byID:   make(map[string]*model.ComebackAlert),
		byPair: make(map[pairKey]string),
	}
}

func (s *memoryStore) Init(context.Context) error { return nil }
func (s *memoryStore) Ping(context.Context) error { return nil }
func (s *memoryStore) Close() error               { return nil }

func (s *memoryStore) Exists(_ context.Context, matchID, teamName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byPair[pairKey{matchID, teamName}]
	return ok, nil
}

func (s *memoryStore) Insert(_ context.Context, alert model.ComebackAlert) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{alert.MatchID, alert.TeamName}
	if _, ok := s.byPair[key]; ok {
		return false, nil
	}
	a := alert
	s.byID[a.ID] = &a
	s.byPair[key] = a.ID
	return true, nil
}

func (s *memoryStore) List(_ context.Context, limit int) ([]model.ComebackAlert, error) {
	s.mu.RLock()
	out := make([]model.ComebackAlert, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, *a)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit = listLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Read = true
	return nil
}
