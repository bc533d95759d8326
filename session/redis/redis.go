// Package redis provides a Redis-backed SessionStore. Sessions are stored
// as JSON blobs under a configurable key prefix with an optional TTL, so a
// dormant conversation expires instead of accumulating forever.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/session"
)

// Options configure the Redis session store.
type Options struct {
	// KeyPrefix namespaces session keys in a shared Redis instance.
	KeyPrefix string
	// TTL is refreshed on every write; zero disables expiry.
	TTL time.Duration
	// OpTimeout bounds each Redis round trip. The SessionStore interface
	// carries no context, so the store supplies its own deadline.
	OpTimeout time.Duration
}

// Store implements core.SessionStore on Redis.
//
// Mutations are read-modify-write without optimistic locking: the concierge
// serializes turns per session, so two writers for the same session id do
// not occur in normal operation.
type Store struct {
	client *redis.Client
	opts   Options
}

// NewStore creates a session store on an existing Redis client.
func NewStore(client *redis.Client, optFns ...func(o *Options)) *Store {
	opts := Options{
		KeyPrefix: "resty:session:",
		TTL:       24 * time.Hour,
		OpTimeout: 3 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{client: client, opts: opts}
}

// Create stores a fresh session, overwriting any previous one under the id.
func (s *Store) Create(id string) (*core.Session, error) {
	sess := core.NewSession(id)
	if err := s.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session or returns session.ErrNotFound.
func (s *Store) Get(id string) (*core.Session, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", id, err)
	}

	var sess core.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", id, err)
	}
	return &sess, nil
}

// AppendMessage adds a turn to an existing session's history.
func (s *Store) AppendMessage(sessionID string, msg core.Message) error {
	return s.update(sessionID, func(sess *core.Session) {
		sess.AppendMessage(msg)
	})
}

// MergeCriteria folds an extracted delta into the session accumulator and
// returns the merged criteria.
func (s *Store) MergeCriteria(sessionID string, delta core.Criteria) (core.Criteria, error) {
	var merged core.Criteria
	err := s.update(sessionID, func(sess *core.Session) {
		merged = sess.MergeCriteria(delta)
	})
	return merged, err
}

// SetRestaurants attaches the loaded restaurant table to a session.
func (s *Store) SetRestaurants(sessionID string, records []core.Restaurant) error {
	return s.update(sessionID, func(sess *core.Session) {
		sess.SetRestaurants(records)
	})
}

func (s *Store) update(sessionID string, mutate func(*core.Session)) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	mutate(sess)
	return s.save(sess)
}

func (s *Store) save(sess *core.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %q: %w", sess.ID, err)
	}

	ctx, cancel := s.opCtx()
	defer cancel()
	if err := s.client.Set(ctx, s.key(sess.ID), raw, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("store session %q: %w", sess.ID, err)
	}
	return nil
}

func (s *Store) key(id string) string { return s.opts.KeyPrefix + id }

func (s *Store) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opts.OpTimeout)
}
