package conversation

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is an in-process Store. Expired entries are dropped lazily on
// read and by List, which the idle sweep calls periodically.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

// Get returns the live state for a phone key.
func (s *MemoryStore) Get(ctx context.Context, phone string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[phone]
	if !ok {
		return State{}, ErrStateNotFound
	}
	if !entry.expiresAt.IsZero() && entry.expiresAt.Before(s.now()) {
		delete(s.data, phone)
		return State{}, ErrStateNotFound
	}
	return entry.state, nil
}

// Put stores the state, replacing any previous entry for the same key.
func (s *MemoryStore) Put(ctx context.Context, state State, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{state: state}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.data[state.Phone] = entry
	return nil
}

// Delete removes the state for a phone key. Missing keys are not an error.
func (s *MemoryStore) Delete(ctx context.Context, phone string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, phone)
	return nil
}

// List returns every live state.
func (s *MemoryStore) List(ctx context.Context) ([]State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]State, 0, len(s.data))
	for phone, entry := range s.data {
		if !entry.expiresAt.IsZero() && entry.expiresAt.Before(now) {
			delete(s.data, phone)
			continue
		}
		out = append(out, entry.state)
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
