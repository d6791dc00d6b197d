package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default Store: a process-local map guarded by a mutex.
// Entries are not durable across restarts. The mutex is held across the
// compare and the delete so only one caller can consume a given entry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Identity] = e
	return nil
}

func (s *MemoryStore) CompareAndDelete(_ context.Context, identity, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[identity]
	if !ok || e.Code != code {
		return false, nil
	}
	if s.now().After(e.ExpiresAt) {
		// Expired entries stay in place; a re-issue will overwrite them.
		return false, nil
	}
	delete(s.entries, identity)
	return true, nil
}
