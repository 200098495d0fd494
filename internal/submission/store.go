package submission

import (
	"context"
	"fmt"
	"sync"
)

// Store is the persistence collaborator contract. The engine only reads
// submissions; writes happen through a Store owned by the caller.
type Store interface {
	Create(ctx context.Context, sub *Submission) (*Submission, error)
	Get(ctx context.Context, id string) (*Submission, error)
	Update(ctx context.Context, sub *Submission) (*Submission, error)
	ListByApp(ctx context.Context, appID string) ([]*Submission, error)
}

// MemoryStore is an in-memory Store implementation. It is safe for
// concurrent use and is intended for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Submission
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Submission)}
}

func (s *MemoryStore) Create(_ context.Context, sub *Submission) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[sub.ID]; exists {
		return nil, fmt.Errorf("submission %s already exists", sub.ID)
	}
	s.records[sub.ID] = clone(sub)
	out := clone(sub)
	return &out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("submission %s not found", id)
	}
	out := clone(&rec)
	return &out, nil
}

// Update replaces a stored submission. The stored record's UpdatedAt must
// match the caller's copy, which rejects lost updates from concurrent
// writers.
func (s *MemoryStore) Update(_ context.Context, sub *Submission) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[sub.ID]
	if !ok {
		return nil, fmt.Errorf("submission %s not found", sub.ID)
	}
	if !current.UpdatedAt.Equal(sub.UpdatedAt) && !sub.UpdatedAt.After(current.UpdatedAt) {
		return nil, fmt.Errorf("submission %s modified concurrently", sub.ID)
	}
	s.records[sub.ID] = clone(sub)
	out := clone(sub)
	return &out, nil
}

func (s *MemoryStore) ListByApp(_ context.Context, appID string) ([]*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Submission
	for _, rec := range s.records {
		if rec.AppID == appID {
			c := clone(&rec)
			out = append(out, &c)
		}
	}
	return out, nil
}

// clone copies a submission including its data map so callers cannot alias
// store-owned state.
func clone(sub *Submission) Submission {
	out := *sub
	if sub.Data != nil {
		out.Data = make(map[string]any, len(sub.Data))
		for k, v := range sub.Data {
			out.Data[k] = v
		}
	}
	return out
}
