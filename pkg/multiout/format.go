package multiout

import (
	"github.com/rxtech-lab/multiout/internal/logger"
	"github.com/rxtech-lab/multiout/pkg/errors"
	"github.com/rxtech-lab/multiout/pkg/task"
	"go.uber.org/zap"
)

// OutputFormat builds MultiplexingWriters for task attempts.
type OutputFormat[K, V any] struct {
	factory WriterFactory[K, V]
	deriver Deriver[K, V]
	log     *logger.Logger
}

// Option configures an OutputFormat.
type Option[K, V any] func(*OutputFormat[K, V])

// WithDeriver replaces all derivation hooks at once.
func WithDeriver[K, V any](deriver Deriver[K, V]) Option[K, V] {
	return func(f *OutputFormat[K, V]) {
		f.deriver = deriver
	}
}

// WithActualKey sets the hook deriving the persisted key.
func WithActualKey[K, V any](fn func(key K, value V) K) Option[K, V] {
	return func(f *OutputFormat[K, V]) {
		f.deriver.ActualKey = fn
	}
}

// WithActualValue sets the hook deriving the persisted value.
func WithActualValue[K, V any](fn func(key K, value V) V) Option[K, V] {
	return func(f *OutputFormat[K, V]) {
		f.deriver.ActualValue = fn
	}
}

// WithDestinationLeaf sets the hook deriving a record's destination from the base leaf name.
func WithDestinationLeaf[K, V any](fn func(key K, value V, baseLeaf string) string) Option[K, V] {
	return func(f *OutputFormat[K, V]) {
		f.deriver.DestinationLeaf = fn
	}
}

// WithBaseLeafName sets the hook adjusting the attempt's base leaf name.
func WithBaseLeafName[K, V any](fn func(baseLeaf string) string) Option[K, V] {
	return func(f *OutputFormat[K, V]) {
		f.deriver.BaseLeafName = fn
	}
}

// WithLogger sets the logger handed to every writer. Defaults to a no-op logger.
func WithLogger[K, V any](log *logger.Logger) Option[K, V] {
	return func(f *OutputFormat[K, V]) {
		f.log = log
	}
}

// NewOutputFormat creates an OutputFormat opening destinations with factory.
func NewOutputFormat[K, V any](factory WriterFactory[K, V], opts ...Option[K, V]) *OutputFormat[K, V] {
	f := &OutputFormat[K, V]{
		factory: factory,
		deriver: DefaultDeriver[K, V](),
		log:     nil,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.log == nil {
		f.log = logger.NewNopLogger()
	}

	return f
}

// GetWriter returns an open MultiplexingWriter for the attempt. The base leaf
// name (e.g. part-m-00003) is fixed here, once per attempt.
func (f *OutputFormat[K, V]) GetWriter(ctx task.Context) (*MultiplexingWriter[K, V], error) {
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "task context is required")
	}

	if f.factory == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "writer factory is required")
	}

	name := ctx.Configuration().GetString(task.ConfOutputBaseName, task.DefaultOutputBaseName)
	baseLeaf := f.deriver.baseLeafName(task.UniqueFileName(ctx.AttemptID(), name, ""))

	f.log.Debug("Multiplexing writer created",
		zap.String("attempt", ctx.AttemptID().String()),
		zap.String("base_leaf", baseLeaf),
	)

	return newMultiplexingWriter(ctx, baseLeaf, f.deriver, f.factory, f.log), nil
}
