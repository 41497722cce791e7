package alerts

import (
	"context"
	"sync"
)

// MemoryStore keeps alert lists in process memory.
// Suitable for development, tests and single-instance deployments.
type MemoryStore struct {
	scopes map[string][]Alert
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scopes: make(map[string][]Alert),
	}
}

// Load returns a copy of the scope list. Unknown scopes yield an empty list.
func (s *MemoryStore) Load(ctx context.Context, scope string) ([]Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.scopes[scope]), nil
}

// Append adds alert unless its id is already stored in the scope.
func (s *MemoryStore) Append(ctx context.Context, scope string, alert Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes[scope], _ = AppendUnique(s.scopes[scope], alert.Clone())
	return nil
}

// Replace overwrites the scope list. Duplicate ids keep their first occurrence.
func (s *MemoryStore) Replace(ctx context.Context, scope string, list []Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(list) == 0 {
		delete(s.scopes, scope)
		return nil
	}
	s.scopes[scope] = cloneAll(Dedupe(list))
	return nil
}

// Clear forgets the scope.
func (s *MemoryStore) Clear(ctx context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scopes, scope)
	return nil
}

// Scopes returns the number of scopes holding alerts.
func (s *MemoryStore) Scopes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scopes)
}
