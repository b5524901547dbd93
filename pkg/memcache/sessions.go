package mem

import (
	"sync"

	"carconvo/internal/models/domain_models"
)

// SessionStore keeps live chat sessions in memory for the process lifetime.
// The outer map is guarded by an RWMutex; each session additionally owns its
// own mutex so that operations on one session serialize (at most one rescore
// in flight per id) while independent sessions proceed in parallel.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]*SessionHandle
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		data: make(map[string]*SessionHandle),
	}
}

// Put registers a new session under its id.
func (s *SessionStore) Put(sess domain_models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.ID] = &SessionHandle{sess: sess}
}

// Handle returns the serialization boundary for one session.
func (s *SessionStore) Handle(id string) (*SessionHandle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.data[id]
	return h, ok
}

// Len reports how many sessions are live.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// SessionHandle owns one session's state. All reads and writes go through
// the handle's lock, so a snapshot is always one complete, well-formed state
// and never an interleaving of two updates.
type SessionHandle struct {
	mu   sync.Mutex
	sess domain_models.Session
}

// Update runs fn with exclusive access to the session.
func (h *SessionHandle) Update(fn func(*domain_models.Session)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.sess)
}

// Snapshot returns a copy of the current session state.
func (h *SessionHandle) Snapshot() domain_models.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sess
}
