package extract

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/logging"
	"github.com/restyhq/resty/model"
)

// Options configure the extractor.
type Options struct {
	// HistoryWindow bounds how many recent turns accompany the latest
	// message. Older context is truncated to bound token cost; criteria
	// mentioned earlier survive through the session-level merge instead.
	HistoryWindow int
	Temperature   float64
	MaxTokens     int64
	Logger        logging.Logger
}

// Extractor converts a user utterance plus recent conversation history into
// a partial criteria record.
type Extractor struct {
	model model.Model
	opts  Options
}

// New creates an Extractor backed by the given model.
func New(m model.Model, optFns ...func(o *Options)) *Extractor {
	opts := Options{
		HistoryWindow: 5,
		Temperature:   0.3,
		MaxTokens:     200,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Extractor{model: m, opts: opts}
}

// Extract returns the criteria found in the latest message given the recent
// history. It always returns a valid (possibly empty) record: transport and
// parsing failures are swallowed so extraction can never block a turn.
func (e *Extractor) Extract(ctx context.Context, message string, history []core.Message) core.Criteria {
	window := core.LastN(history, e.opts.HistoryWindow)
	messages := make([]core.Message, 0, len(window)+1)
	messages = append(messages, window...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: message})

	resp, err := e.model.Generate(ctx, model.Request{
		Instructions: instructions(),
		Messages:     messages,
		JSONOnly:     true,
		Temperature:  e.opts.Temperature,
		MaxTokens:    e.opts.MaxTokens,
	})
	if err != nil {
		e.opts.Logger.Warn("criteria extraction failed", "error", err)
		return core.Criteria{}
	}

	criteria, ok := parseCriteria(resp.Text)
	if !ok {
		e.opts.Logger.Warn("criteria output not parseable", "output", resp.Text)
		return core.Criteria{}
	}
	return criteria
}

// jsonObject locates an embedded JSON object in prose-wrapped model output.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// parseCriteria parses model output into a criteria record. It tries the
// raw text first, then the widest embedded {...} span, and normalizes the
// free-text fields by trimming whitespace.
func parseCriteria(text string) (core.Criteria, bool) {
	var criteria core.Criteria
	raw := strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		embedded := jsonObject.FindString(raw)
		if embedded == "" {
			return core.Criteria{}, false
		}
		criteria = core.Criteria{}
		if err := json.Unmarshal([]byte(embedded), &criteria); err != nil {
			return core.Criteria{}, false
		}
	}
	criteria.Area = strings.TrimSpace(criteria.Area)
	criteria.Cuisine = strings.TrimSpace(criteria.Cuisine)
	return criteria, true
}
