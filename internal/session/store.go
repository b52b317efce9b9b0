package session

import "sync"

// State is everything kept per browser session: whether the shared access
// password was entered, and the last rubric text the teacher supplied.
// RubricText is raw text, not structured criteria; it is re-normalized on
// every grading request.
type State struct {
	Authenticated bool
	RubricText    string
}

// Store is an injected key-value abstraction over session state so the
// orchestration layer can be tested without a web stack.
type Store interface {
	Get(id string) (State, bool)
	Put(id string, st State)
	Delete(id string)
}

// MemoryStore keeps sessions in process memory. Concurrent requests from
// the same session race last-writer-wins, which is acceptable for
// single-user sessions.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]State)}
}

func (s *MemoryStore) Get(id string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[id]
	return st, ok
}

func (s *MemoryStore) Put(id string, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = st
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}
