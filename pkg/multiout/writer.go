package multiout

import (
	"path"

	"github.com/rxtech-lab/multiout/internal/logger"
	"github.com/rxtech-lab/multiout/pkg/errors"
	"github.com/rxtech-lab/multiout/pkg/task"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type writerState int

const (
	stateOpen writerState = iota
	stateClosing
	stateClosed
)

func (s writerState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateClosing:
		return "closing"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MultiplexingWriter fans the records of one task attempt out to one writer
// per destination, opening each writer on first use.
//
// A MultiplexingWriter is not safe for concurrent use. The owning task must
// call Write sequentially and then Close once; it must call Close even when a
// Write fails so every opened destination is released.
type MultiplexingWriter[K, V any] struct {
	ctx      task.Context
	baseLeaf string
	deriver  Deriver[K, V]
	factory  WriterFactory[K, V]
	log      *logger.Logger

	state   writerState
	writers map[string]RecordWriter[K, V]
	// order records destinations in creation order so Close is deterministic.
	order []string
}

func newMultiplexingWriter[K, V any](
	ctx task.Context,
	baseLeaf string,
	deriver Deriver[K, V],
	factory WriterFactory[K, V],
	log *logger.Logger,
) *MultiplexingWriter[K, V] {
	return &MultiplexingWriter[K, V]{
		ctx:      ctx,
		baseLeaf: baseLeaf,
		deriver:  deriver,
		factory:  factory,
		log:      log,
		state:    stateOpen,
		writers:  make(map[string]RecordWriter[K, V]),
		order:    nil,
	}
}

// BaseLeafName returns the attempt's leaf name that destinations are derived from.
func (m *MultiplexingWriter[K, V]) BaseLeafName() string {
	return m.baseLeaf
}

// Destination resolves the destination of a record without writing it.
// The result is a cleaned slash path, so "./y" and "y" name the same destination.
func (m *MultiplexingWriter[K, V]) Destination(key K, value V) string {
	leaf := m.deriver.destinationLeaf(key, value, m.baseLeaf)

	return path.Clean(InputAwareName(m.ctx, leaf))
}

// Write routes the record to its destination, opening the destination's writer
// if this is the first record sent there.
func (m *MultiplexingWriter[K, V]) Write(key K, value V) error {
	if m.state != stateOpen {
		return errors.Newf(errors.ErrCodeWriterClosed, "write on %s multiplexing writer", m.state)
	}

	destination := m.Destination(key, value)
	actualKey := m.deriver.actualKey(key, value)
	actualValue := m.deriver.actualValue(key, value)

	w, err := m.writerFor(destination)
	if err != nil {
		return err
	}

	if err := w.Write(actualKey, actualValue); err != nil {
		return errors.NewWriteError(destination, err)
	}

	return nil
}

// writerFor returns the cached writer for destination or creates it.
func (m *MultiplexingWriter[K, V]) writerFor(destination string) (RecordWriter[K, V], error) {
	if w, ok := m.writers[destination]; ok {
		return w, nil
	}

	w, err := m.factory.CreateWriter(m.ctx, destination)
	if err != nil {
		m.log.Error("Failed to open destination",
			zap.String("destination", destination),
			zap.Error(err),
		)

		return nil, errors.NewCreationError(destination, err)
	}

	m.writers[destination] = w
	m.order = append(m.order, destination)

	m.log.Debug("Destination opened",
		zap.String("destination", destination),
		zap.Int("open_destinations", len(m.order)),
	)

	return w, nil
}

// Close closes every destination writer. A failing writer does not stop the
// others from being closed; all failures are returned together as CloseErrors
// (see multierr.Errors). Calling Close again is a no-op.
func (m *MultiplexingWriter[K, V]) Close() error {
	if m.state != stateOpen {
		return nil
	}

	m.state = stateClosing

	var closeErr error

	for _, destination := range m.order {
		if err := m.writers[destination].Close(); err != nil {
			m.log.Error("Failed to close destination",
				zap.String("destination", destination),
				zap.Error(err),
			)

			closeErr = multierr.Append(closeErr, errors.NewCloseError(destination, err))
		}
	}

	m.log.Debug("Destinations closed",
		zap.Int("destinations", len(m.order)),
		zap.Int("failed", len(multierr.Errors(closeErr))),
	)

	m.writers = make(map[string]RecordWriter[K, V])
	m.state = stateClosed

	return closeErr
}

// Destinations returns every destination opened so far, in creation order.
// It keeps reporting them after Close.
func (m *MultiplexingWriter[K, V]) Destinations() []string {
	destinations := make([]string, len(m.order))
	copy(destinations, m.order)

	return destinations
}

// Len returns the number of destinations opened so far.
func (m *MultiplexingWriter[K, V]) Len() int {
	return len(m.order)
}
