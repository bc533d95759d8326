// Package resty provides a high-level façade over the concierge pipeline:
// criteria extraction, staged restaurant matching and response generation.
// Most applications interact with this package by:
//  1. Creating a Concierge via New() with a model backend and a data source
//  2. Starting a session per conversation (StartSession)
//  3. Driving turns with Chat()
//
// Each turn runs the sequential pipeline: extract criteria from the latest
// message, merge them into the session accumulator, match the restaurant
// table against the accumulated criteria, and generate the reply with the
// bounded candidate set embedded in the prompt. All defaults are safe for
// local development and testing; production deployments typically supply a
// Redis-backed session store, a cached sheet source and a structured logger.
package resty

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/extract"
	"github.com/restyhq/resty/logging"
	"github.com/restyhq/resty/match"
	"github.com/restyhq/resty/model"
	"github.com/restyhq/resty/respond"
	"github.com/restyhq/resty/session"
	"github.com/restyhq/resty/sheet"
)

// DefaultGreeting seeds every new session's history so the first thing a
// user sees frames what the concierge can do.
const DefaultGreeting = "Hi there! I'm Resty, your AI restaurant concierge for London. Tell me what kind of restaurant you're looking for and I'll help you find the perfect dining spot!"

var (
	// ErrTurnInProgress is returned when a turn arrives for a session that
	// is still processing a previous turn. Conversations are inherently
	// ordered; interleaving merges would corrupt the criteria accumulator,
	// so overlapping turns are rejected rather than queued.
	ErrTurnInProgress = errors.New("turn already in progress for this session")

	// ErrEmptyMessage is returned for a blank user message.
	ErrEmptyMessage = errors.New("message must not be empty")
)

// Options configures the Concierge.
type Options struct {
	// SessionStore persists conversations (defaults to in-memory).
	SessionStore core.SessionStore

	// Greeting is appended as the first assistant message of every new
	// session. Empty disables the greeting.
	Greeting string

	// MatchOptions tune the matcher bounds for every turn.
	MatchOptions []func(o *match.Options)

	// ExtractOptions and RespondOptions tune the two model call sites.
	ExtractOptions []func(o *extract.Options)
	RespondOptions []func(o *respond.Options)

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Concierge aggregates the pipeline stages behind a per-turn Chat call.
type Concierge struct {
	source    sheet.Source
	store     core.SessionStore
	extractor *extract.Extractor
	responder *respond.Responder
	logger    logging.Logger
	opts      Options

	mu     sync.Mutex
	inTurn map[string]bool
}

// New creates a Concierge on the given model backend and restaurant source.
func New(m model.Model, source sheet.Source, optFns ...func(o *Options)) *Concierge {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Greeting:     DefaultGreeting,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	extractOpts := append([]func(o *extract.Options){func(o *extract.Options) {
		o.Logger = opts.Logger
	}}, opts.ExtractOptions...)
	respondOpts := append([]func(o *respond.Options){func(o *respond.Options) {
		o.Logger = opts.Logger
	}}, opts.RespondOptions...)

	return &Concierge{
		source:    source,
		store:     opts.SessionStore,
		extractor: extract.New(m, extractOpts...),
		responder: respond.New(m, respondOpts...),
		logger:    opts.Logger,
		opts:      opts,
		inTurn:    make(map[string]bool),
	}
}

// StartSession creates a new conversation and returns it. The restaurant
// table is loaded lazily on the first turn, so starting a session never
// touches the data source.
func (c *Concierge) StartSession() (*core.Session, error) {
	id := core.NewID()
	sess, err := c.store.Create(id)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if c.opts.Greeting != "" {
		greeting := core.NewMessage(core.RoleAssistant, c.opts.Greeting)
		if err := c.store.AppendMessage(id, greeting); err != nil {
			return nil, fmt.Errorf("seed greeting: %w", err)
		}
		sess.AppendMessage(greeting)
	}
	c.logger.Info("session started", "session_id", id)
	return sess, nil
}

// Chat processes one conversation turn and returns the assistant reply.
//
// Failure semantics follow the pipeline stages: an unreachable data source
// is a hard error (the concierge cannot match against no data), extraction
// failures silently contribute an empty criteria delta, and the matcher
// never fails. Session history is only appended once the reply has been
// generated, so a failed turn can simply be retried.
func (c *Concierge) Chat(ctx context.Context, sessionID, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}
	if !c.beginTurn(sessionID) {
		return "", ErrTurnInProgress
	}
	defer c.endTurn(sessionID)

	sess, err := c.store.Get(sessionID)
	if err != nil {
		return "", err
	}
	history := sess.Messages()

	table, err := c.ensureTable(ctx, sess)
	if err != nil {
		return "", err
	}

	delta := c.extractor.Extract(ctx, message, history)
	merged, err := c.store.MergeCriteria(sessionID, delta)
	if err != nil {
		return "", err
	}
	c.logger.Debug("criteria merged", "session_id", sessionID, "delta_empty", delta.IsEmpty())

	candidates := match.Match(table, merged, c.opts.MatchOptions...)
	c.logger.Info("restaurants matched", "session_id", sessionID, "candidates", len(candidates))

	reply, err := c.responder.Respond(ctx, message, history, merged, candidates)
	if err != nil {
		return "", err
	}

	if err := c.store.AppendMessage(sessionID, core.NewMessage(core.RoleUser, message)); err != nil {
		return "", err
	}
	if err := c.store.AppendMessage(sessionID, core.NewMessage(core.RoleAssistant, reply)); err != nil {
		return "", err
	}
	return reply, nil
}

// Criteria returns the criteria accumulated for a session so far.
func (c *Concierge) Criteria(sessionID string) (core.Criteria, error) {
	sess, err := c.store.Get(sessionID)
	if err != nil {
		return core.Criteria{}, err
	}
	return sess.CurrentCriteria(), nil
}

// Session returns a snapshot of a session.
func (c *Concierge) Session(sessionID string) (*core.Session, error) {
	return c.store.Get(sessionID)
}

// ensureTable returns the session's restaurant table, loading it from the
// source on the first turn. A session keeps the table it first saw, so
// rankings stay stable even if the sheet changes mid-conversation.
func (c *Concierge) ensureTable(ctx context.Context, sess *core.Session) ([]core.Restaurant, error) {
	if table := sess.Table(); len(table) > 0 {
		return table, nil
	}
	records, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("load restaurant table: %w", err)
	}
	if err := c.store.SetRestaurants(sess.ID, records); err != nil {
		return nil, err
	}
	c.logger.Info("restaurant table attached", "session_id", sess.ID, "rows", len(records))
	return records, nil
}

func (c *Concierge) beginTurn(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inTurn[sessionID] {
		return false
	}
	c.inTurn[sessionID] = true
	return true
}

func (c *Concierge) endTurn(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inTurn, sessionID)
}
