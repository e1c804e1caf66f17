package service

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/metrics"
)

// Option configures the optional collaborators of a service.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	newID   func() string
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithIDGenerator replaces NewPassID, mostly so tests get stable ids.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
		newID:  NewPassID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewPassID returns "GP-" followed by a UUIDv7.  v7 ids sort by creation
// time, so newer passes compare greater.
func NewPassID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "GP-" + uuid.NewString()
	}
	return "GP-" + id.String()
}
