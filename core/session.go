package core

import (
	"sync"
	"time"
)

// Session is the per-conversation container tracking the ordered message
// history, the criteria accumulated across turns and the restaurant table
// loaded for this conversation. It is safe for concurrent access.
//
// Contract:
//   - Mutations update the Updated timestamp
//   - Messages returns a defensive copy to avoid external mutation
//   - MergeCriteria applies field-level merge-with-overwrite-on-non-empty
//   - The restaurant table is set once and treated as immutable afterwards
//   - Clone performs deep copies of slices for safe divergence.
type Session struct {
	ID          string       `json:"id"`
	History     []Message    `json:"history"`
	Criteria    Criteria     `json:"criteria"`
	Restaurants []Restaurant `json:"restaurants,omitempty"`
	Created     time.Time    `json:"created"`
	Updated     time.Time    `json:"updated"`
	mu          sync.RWMutex
}

// NewSession creates an empty session with the given ID.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{ID: id, History: []Message{}, Created: now, Updated: now}
}

// AppendMessage adds a turn to the history.
func (s *Session) AppendMessage(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, msg)
	s.Updated = time.Now().UTC()
}

// Messages returns a copy of the full message history.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.History))
	copy(out, s.History)
	return out
}

// MergeCriteria folds an extracted criteria delta into the accumulator and
// returns the merged result.
func (s *Session) MergeCriteria(delta Criteria) Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Criteria = s.Criteria.Merge(delta)
	s.Updated = time.Now().UTC()
	return s.Criteria
}

// CurrentCriteria returns the accumulated criteria.
func (s *Session) CurrentCriteria() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Criteria
}

// SetRestaurants attaches the loaded table. Called once after the first
// successful fetch; later calls replace the table wholesale.
func (s *Session) SetRestaurants(records []Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Restaurants = records
	s.Updated = time.Now().UTC()
}

// Table returns the restaurant table loaded for this session (may be nil).
// The table is shared, not copied; it is immutable once set.
func (s *Session) Table() []Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Restaurants
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{
		ID:       s.ID,
		History:  make([]Message, len(s.History)),
		Criteria: s.Criteria,
		Created:  s.Created,
		Updated:  s.Updated,
	}
	copy(clone.History, s.History)
	if s.Restaurants != nil {
		clone.Restaurants = make([]Restaurant, len(s.Restaurants))
		copy(clone.Restaurants, s.Restaurants)
	}
	if s.Criteria.NeedsReservation != nil {
		v := *s.Criteria.NeedsReservation
		clone.Criteria.NeedsReservation = &v
	}
	return clone
}

// SessionStore persists sessions and their evolving criteria and history.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
	AppendMessage(sessionID string, msg Message) error
	MergeCriteria(sessionID string, delta Criteria) (Criteria, error)
	SetRestaurants(sessionID string, records []Restaurant) error
}
