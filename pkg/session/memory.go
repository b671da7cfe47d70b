package session

import "sync"

// MemoryStore is a Provider for tests and ephemeral console runs.
type MemoryStore struct {
	mu       sync.RWMutex
	token    string
	username string
}

// NewMemoryStore returns an empty in-memory session.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token implements Provider.
func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username implements Provider.
func (s *MemoryStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Save implements Provider.
func (s *MemoryStore) Save(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.username = username
	return nil
}

// Clear implements Provider.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
	return nil
}
