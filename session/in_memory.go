package session

import (
	"errors"
	"sync"

	"github.com/restyhq/resty/core"
)

// ErrNotFound is returned when a session id is unknown to the store.
var ErrNotFound = errors.New("session not found")

// InMemoryStore is a volatile SessionStore implementation storing sessions
// in a process local map. It is safe for concurrent access. Each returned
// session is cloned to prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Create stores a fresh session with the given id, overwriting any previous
// session under the same id.
func (s *InMemoryStore) Create(id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := core.NewSession(id)
	s.sessions[id] = sess
	return sess.Clone(), nil
}

// Get returns a clone of an existing session or ErrNotFound.
func (s *InMemoryStore) Get(id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.Clone(), nil
}

// AppendMessage adds a turn to an existing session's history.
func (s *InMemoryStore) AppendMessage(sessionID string, msg core.Message) error {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	sess.AppendMessage(msg)
	return nil
}

// MergeCriteria folds an extracted delta into the session accumulator and
// returns the merged criteria.
func (s *InMemoryStore) MergeCriteria(sessionID string, delta core.Criteria) (core.Criteria, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return core.Criteria{}, err
	}
	return sess.MergeCriteria(delta), nil
}

// SetRestaurants attaches the loaded restaurant table to a session.
func (s *InMemoryStore) SetRestaurants(sessionID string, records []core.Restaurant) error {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	sess.SetRestaurants(records)
	return nil
}

func (s *InMemoryStore) lookup(sessionID string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}
