package server

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps opaque bearer tokens to user IDs. It is process-scoped
// and in-memory: restarting the server logs everyone out, and tokens never
// expire. Dev scaffolding by intent, isolated here so a persistent
// implementation can replace it without touching handlers.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]uuid.UUID
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]uuid.UUID),
	}
}

// Issue creates a fresh token for a user. Each login gets its own token;
// concurrent sessions for one user are allowed.
func (s *SessionStore) Issue(userID uuid.UUID) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token
}

// Lookup resolves a token to its user ID.
func (s *SessionStore) Lookup(token string) (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok
}

// Revoke removes a token. Revoking an unknown token is a no-op; logout
// always succeeds.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Reset drops every session.
func (s *SessionStore) Reset() {
	s.mu.Lock()
	s.sessions = make(map[string]uuid.UUID)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
