// Package session holds the volatile, per-organizer event-creation state.
//
// The store is process-local and lost on restart. Each organizer has at
// most one session; a new begin trigger replaces the previous one (last
// write wins). There is no timeout-based expiry: an abandoned session
// persists until it is superseded, finalized, or the process restarts.
//
// Do serializes all state-machine work for one organizer, so no two steps
// for the same organizer execute concurrently. Different organizers
// proceed independently.
package session

import (
	"sync"

	"github.com/snapgala/api/internal/model"
)

// Store is an in-memory session store keyed by organizer identity.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	locks    map[string]*sync.Mutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*model.Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Get returns the organizer's session, or nil when none exists.
func (s *Store) Get(organizerID string) *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[organizerID]
}

// Put stores the organizer's session, replacing any existing one.
func (s *Store) Put(sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.OrganizerID] = sess
}

// Delete removes the organizer's session, if any.
func (s *Store) Delete(organizerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, organizerID)
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Do runs fn while holding the organizer's lock. All creation-flow inputs
// for one organizer go through Do, giving the single-worker-per-session
// model. The per-organizer locks are never removed; they are tiny and the
// organizer population is small.
func (s *Store) Do(organizerID string, fn func()) {
	s.mu.Lock()
	lock, ok := s.locks[organizerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[organizerID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	fn()
}
