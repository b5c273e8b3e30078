package auth

import (
	"sync"
	"time"

	"github.com/GustavoCaso/finbot/internal/util"
)

const sessionIDLength = 32

type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// Sessions is an in-memory session table. Expired sessions are dropped
// lazily on lookup.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]Session
	duration time.Duration
	now      func() time.Time
}

func NewSessions(duration time.Duration) *Sessions {
	return &Sessions{
		sessions: map[string]Session{},
		duration: duration,
		now:      time.Now,
	}
}

func (s *Sessions) Create(userID string) Session {
	session := Session{
		ID:        util.GenerateRandomID(sessionIDLength),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.duration),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return session
}

func (s *Sessions) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}

	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, id)
		return Session{}, false
	}

	return session, true
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}
