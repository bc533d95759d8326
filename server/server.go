// Package server exposes the concierge pipeline as a small JSON HTTP API
// for the chat widget: create a session, post a turn, inspect the
// accumulated criteria. The CORS wrapper exists because the widget is
// embedded in a marketing site served from a different origin.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/logging"
)

// Concierge is the narrow surface the API needs from the pipeline façade.
type Concierge interface {
	StartSession() (*core.Session, error)
	Chat(ctx context.Context, sessionID, message string) (string, error)
	Criteria(sessionID string) (core.Criteria, error)
}

// Options configure the HTTP surface.
type Options struct {
	AllowedOrigins []string
	Logger         logging.Logger
}

// New builds the routed, CORS-wrapped handler for the chat API.
func New(c Concierge, optFns ...func(o *Options)) http.Handler {
	opts := Options{
		AllowedOrigins: []string{"*"},
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{concierge: c, logger: opts.Logger}
	r := mux.NewRouter()
	h.registerRoutes(r)

	return cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}
