package run

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store is the run log: an ordered append-only collection with a
// sequential identifier counter. Implementations must serialize
// appends; the calculator itself is pure and needs no coordination.
type Store interface {
	// Append assigns the next sequential ID, stores the run and
	// returns it as stored.
	Append(ctx context.Context, r Run) (Run, error)
	// List returns all runs ordered by timestamp descending, ties
	// broken by ID descending.
	List(ctx context.Context) ([]Run, error)
}

// MemoryStore is the default in-process backend.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int
	runs   []Run
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(ctx context.Context, r Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	s.runs = append(s.runs, r)
	return r, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	out := make([]Run, len(s.runs))
	copy(out, s.runs)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Count returns the number of recorded runs.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
