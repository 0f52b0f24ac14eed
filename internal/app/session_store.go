package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionEntry is the value stored per session id.
type sessionEntry struct {
	userID    int64
	createdAt time.Time
}

// SessionStore holds in-memory sessions. It is owned by whichever
// authenticator it is handed to and is safe for concurrent use; the map is
// never exposed directly.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]sessionEntry)}
}

// Put stores a fresh session for the user and returns its id.
func (s *SessionStore) Put(userID int64) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.entries[id] = sessionEntry{userID: userID, createdAt: time.Now()}
	s.mu.Unlock()
	return id
}

// Get returns the entry for the session id, if present.
func (s *SessionStore) Get(sessionID string) (sessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	return e, ok
}

// Delete removes the session and reports whether it existed. Concurrent
// deletes of the same id report success exactly once.
func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[sessionID]; !ok {
		return false
	}
	delete(s.entries, sessionID)
	return true
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
