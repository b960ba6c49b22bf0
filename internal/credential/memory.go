package credential

import "sync"

// MemoryStore is an in-memory Store used by tests and as a fallback when
// no keyring backend is usable.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  string
	set   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user, s.set = token, user, true
	return nil
}

func (s *MemoryStore) Load() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", "", ErrNotFound
	}
	return s.token, s.user, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user, s.set = "", "", false
	return nil
}
