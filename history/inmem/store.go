// Package inmem provides a non-persistent history.Store backed by a map,
// grounded on server/dao/inmem's repository pattern.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/mathscript/history"
	"github.com/google/uuid"
)

type store struct {
	mu      sync.Mutex
	entries map[uuid.UUID]history.Entry
}

// NewStore creates a new empty in-memory history.Store.
func NewStore() history.Store {
	return &store{
		entries: make(map[uuid.UUID]history.Entry),
	}
}

func (s *store) Log(ctx context.Context, e history.Entry) (history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := uuid.NewRandom()
	if err != nil {
		return history.Entry{}, err
	}

	e.ID = id
	e.Timestamp = time.Now()
	s.entries[id] = e
	return e, nil
}

func (s *store) Get(ctx context.Context, id uuid.UUID) (history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return history.Entry{}, history.ErrNotFound
	}
	return e, nil
}

func (s *store) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]history.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *store) Close() error {
	return nil
}
