package routing

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown planning session.
var ErrSessionNotFound = errors.New("planning session not found")

// SessionStore holds the live planning sessions, each owning its
// waypoint list. Safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*WaypointList
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[uuid.UUID]*WaypointList{}}
}

// Create opens a new planning session with an empty waypoint list.
func (s *SessionStore) Create() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.sessions[id] = NewWaypointList()
	return id
}

// Get returns the waypoint list of the given session.
func (s *SessionStore) Get(id uuid.UUID) (*WaypointList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return list, nil
}

// Close discards the session.
func (s *SessionStore) Close(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
