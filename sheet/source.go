package sheet

import (
	"context"
	"errors"

	"github.com/restyhq/resty/core"
)

// ErrUnavailable wraps any failure to produce the restaurant table. It is a
// hard error for the caller; extraction-style silent degradation does not
// apply to the data source.
var ErrUnavailable = errors.New("restaurant source unavailable")

// Source produces the full restaurant table.
type Source interface {
	Fetch(ctx context.Context) ([]core.Restaurant, error)
}

// Static is a Source serving a fixed in-memory table.
type Static struct {
	records []core.Restaurant
}

// NewStatic creates a Source over the given records.
func NewStatic(records []core.Restaurant) *Static {
	return &Static{records: records}
}

// Fetch implements Source.
func (s *Static) Fetch(ctx context.Context) ([]core.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]core.Restaurant, len(s.records))
	copy(out, s.records)
	return out, nil
}
