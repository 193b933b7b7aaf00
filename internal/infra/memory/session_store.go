package memory

import (
	"sync"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.QuizSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*app.QuizSession)}
}

func (s *SessionStore) Put(session *app.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

func (s *SessionStore) Get(sessionID string) (*app.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
