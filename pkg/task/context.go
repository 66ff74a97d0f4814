package task

import (
	"github.com/moznion/go-optional"
)

// Context is what a task attempt exposes to its output layer.
type Context interface {
	// AttemptID identifies the running attempt.
	AttemptID() AttemptID
	// Configuration is the job configuration.
	Configuration() Configuration
	// Committer supplies the attempt's working directory.
	Committer() Committer
	// InputPath is the input source of the current record batch, when the
	// task reads one source per batch.
	InputPath() optional.Option[string]
}

// AttemptContext is the default Context implementation.
type AttemptContext struct {
	attempt   AttemptID
	conf      Configuration
	committer Committer
	inputPath optional.Option[string]
}

// ContextOption configures an AttemptContext.
type ContextOption func(*AttemptContext)

// WithInputPath records the input source the attempt is reading.
func WithInputPath(path string) ContextOption {
	return func(c *AttemptContext) {
		c.inputPath = optional.Some(path)
	}
}

// NewAttemptContext creates a Context. A nil conf is treated as an empty configuration.
func NewAttemptContext(attempt AttemptID, conf Configuration, committer Committer, opts ...ContextOption) *AttemptContext {
	if conf == nil {
		conf = MapConfiguration{}
	}

	ctx := &AttemptContext{
		attempt:   attempt,
		conf:      conf,
		committer: committer,
		inputPath: optional.None[string](),
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

var _ Context = (*AttemptContext)(nil)

// AttemptID implements Context.
func (c *AttemptContext) AttemptID() AttemptID {
	return c.attempt
}

// Configuration implements Context.
func (c *AttemptContext) Configuration() Configuration {
	return c.conf
}

// Committer implements Context.
func (c *AttemptContext) Committer() Committer {
	return c.committer
}

// InputPath implements Context.
func (c *AttemptContext) InputPath() optional.Option[string] {
	return c.inputPath
}
