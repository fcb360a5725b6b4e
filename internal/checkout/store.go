package checkout

import "sync"

// Store keeps in-flight checkout machines keyed by user. Sessions live in
// process memory for the lifetime of the checkout.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]Machine
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]Machine)}
}

func (s *Store) Get(userID int64) (Machine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessions[userID]
	return m, ok
}

func (s *Store) Put(userID int64, m Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = m
}

func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
