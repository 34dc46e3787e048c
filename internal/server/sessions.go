package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
)

// session is one person's editing state. Handlers hold mu only while reading or
// replacing state, never across an export.
type session struct {
	id   string
	gate *export.Gate

	mu        sync.Mutex
	state     cvstate.State
	updatedAt time.Time
}

// snapshot returns the current state.
func (s *session) snapshot() cvstate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// apply replaces the state with fn's result unless fn fails.
func (s *session) apply(fn func(cvstate.State) (cvstate.State, error)) (cvstate.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next
	s.updatedAt = time.Now()
	return next, nil
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (st *sessionStore) create(state cvstate.State) *session {
	sess := &session{
		id:        uuid.NewString(),
		gate:      export.NewGate(),
		state:     state,
		updatedAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[sess.id] = sess
	st.mu.Unlock()
	return sess
}

func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

func (st *sessionStore) delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

func (st *sessionStore) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// prune drops sessions last changed before cutoff. Sessions with an export running are kept.
func (st *sessionStore) prune(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, sess := range st.sessions {
		sess.mu.Lock()
		stale := sess.updatedAt.Before(cutoff) && !sess.state.Exporting
		sess.mu.Unlock()
		if stale {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}
