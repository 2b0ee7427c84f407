package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps definitions in memory.
// It is intended for tests and single-process development.
type MemoryStore struct {
	mu     sync.RWMutex
	defs   map[string]Definition
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{defs: make(map[string]Definition)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, d Definition) error {
	if d.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.defs[d.ID] = d.clone()
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, id string) (Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Definition{}, ErrStoreClosed
	}
	d, ok := s.defs[id]
	if !ok {
		return Definition{}, ErrNotFound
	}
	return d.clone(), nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]Definition, 0, len(s.defs))
	for _, d := range s.defs {
		out = append(out, d.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	delete(s.defs, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.defs = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
