package respond

import (
	"context"
	"fmt"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/logging"
	"github.com/restyhq/resty/model"
)

// Options configure the responder.
type Options struct {
	// HistoryWindow bounds how many recent turns accompany the latest
	// message. Wider than the extraction window so the reply can stay
	// coherent with the whole recent exchange.
	HistoryWindow int
	Temperature   float64
	MaxTokens     int64
	Logger        logging.Logger
}

// Responder produces the user-facing reply for one chat turn.
type Responder struct {
	model model.Model
	opts  Options
}

// New creates a Responder backed by the given model.
func New(m model.Model, optFns ...func(o *Options)) *Responder {
	opts := Options{
		HistoryWindow: 10,
		Temperature:   0.7,
		MaxTokens:     800,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Responder{model: m, opts: opts}
}

// Respond sends the bounded conversation window plus the latest message to
// the model under the concierge instructions and returns the reply text
// verbatim. Transport failures propagate to the caller; the enclosing turn
// decides how to present them.
func (r *Responder) Respond(
	ctx context.Context,
	message string,
	history []core.Message,
	criteria core.Criteria,
	candidates []core.RestaurantSummary,
) (string, error) {
	window := core.LastN(history, r.opts.HistoryWindow)
	messages := make([]core.Message, 0, len(window)+1)
	messages = append(messages, window...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: message})

	resp, err := r.model.Generate(ctx, model.Request{
		Instructions: buildInstructions(criteria, candidates),
		Messages:     messages,
		Temperature:  r.opts.Temperature,
		MaxTokens:    r.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}
	r.opts.Logger.Debug("response generated", "finish_reason", resp.FinishReason)
	return resp.Text, nil
}
