// Package job runs map-only multiout jobs: every input file becomes one task
// attempt whose records are routed to destinations by key.
package job

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/multiout/internal/config"
	"github.com/rxtech-lab/multiout/internal/logger"
	"github.com/rxtech-lab/multiout/internal/types"
	"github.com/rxtech-lab/multiout/pkg/errors"
	"github.com/rxtech-lab/multiout/pkg/multiout"
	"github.com/rxtech-lab/multiout/pkg/multiout/parquetout"
	"github.com/rxtech-lab/multiout/pkg/multiout/textout"
	"github.com/rxtech-lab/multiout/pkg/task"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const maxLineSize = 1024 * 1024

// OnTaskStartCallback is called before a task attempt reads its input.
type OnTaskStartCallback func(partition int, inputPath string, totalTasks int) error

// OnTaskCompleteCallback is called after a task attempt committed its output.
type OnTaskCompleteCallback func(partition int, inputPath string, records int64, destinations []string)

// Callbacks holds the lifecycle callbacks of a run.
// All fields are pointers - nil means no callback will be invoked.
type Callbacks struct {
	OnTaskStart    *OnTaskStartCallback
	OnTaskComplete *OnTaskCompleteCallback
}

// Summary describes a finished run.
type Summary struct {
	// Tasks is the number of committed task attempts.
	Tasks int
	// Records is the number of records written.
	Records int64
	// Destinations lists every committed destination in first-seen order.
	Destinations []string
}

// Runner executes a job configuration.
type Runner struct {
	cfg       config.JobConfig
	conf      task.MapConfiguration
	jobID     string
	format    *multiout.OutputFormat[any, string]
	callbacks Callbacks
	log       *logger.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCallbacks sets the lifecycle callbacks.
func WithCallbacks(callbacks Callbacks) RunnerOption {
	return func(r *Runner) {
		r.callbacks = callbacks
	}
}

// WithJobID overrides the generated job id.
func WithJobID(jobID string) RunnerOption {
	return func(r *Runner) {
		r.jobID = jobID
	}
}

// NewRunner validates cfg and builds the output format it describes.
func NewRunner(cfg config.JobConfig, log *logger.Logger, opts ...RunnerOption) (*Runner, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factory, err := newWriterFactory(cfg.Format)
	if err != nil {
		return nil, err
	}

	formatOpts, err := deriverOptions(cfg)
	if err != nil {
		return nil, err
	}

	formatOpts = append(formatOpts, multiout.WithLogger[any, string](log))

	r := &Runner{
		cfg:       cfg,
		conf:      cfg.Configuration(),
		jobID:     task.NewJobID(),
		format:    multiout.NewOutputFormat(factory, formatOpts...),
		callbacks: Callbacks{OnTaskStart: nil, OnTaskComplete: nil},
		log:       log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func newWriterFactory(format config.Format) (multiout.WriterFactory[any, string], error) {
	switch format {
	case config.FormatText:
		return textout.NewWriterFactory[any, string](), nil
	case config.FormatParquet:
		return parquetout.NewWriterFactory[any, string](), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
	}
}

func deriverOptions(cfg config.JobConfig) ([]multiout.Option[any, string], error) {
	var opts []multiout.Option[any, string]

	switch cfg.Route {
	case config.RouteNone:
	case config.RouteKeyDir:
		opts = append(opts, multiout.WithDestinationLeaf(multiout.KeyAsDirectory[any, string]))
	case config.RouteKeyPrefix:
		opts = append(opts, multiout.WithDestinationLeaf(multiout.KeyAsPrefix[any, string]))
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unknown route %q", cfg.Route)
	}

	if !cfg.EmitKey {
		opts = append(opts, multiout.WithActualKey(func(any, string) any { return nil }))
	}

	return opts, nil
}

// JobID returns the id shared by every attempt of the run.
func (r *Runner) JobID() string {
	return r.jobID
}

// Run executes one map task per input, in order, and stops at the first
// failed task. Tasks committed before the failure stay committed.
func (r *Runner) Run(ctx context.Context, inputs []string) (Summary, error) {
	summary := Summary{Tasks: 0, Records: 0, Destinations: []string{}}

	if len(inputs) == 0 {
		return summary, errors.New(errors.ErrCodeMissingParameter, "no input files")
	}

	seen := make(map[string]struct{})

	for partition, input := range inputs {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("job cancelled: %w", err)
		}

		if r.callbacks.OnTaskStart != nil {
			if err := (*r.callbacks.OnTaskStart)(partition, input, len(inputs)); err != nil {
				return summary, err
			}
		}

		records, destinations, err := r.runTask(ctx, partition, input)
		if err != nil {
			r.log.Error("Task failed",
				zap.Int("partition", partition),
				zap.String("input", input),
				zap.Error(err),
			)

			return summary, err
		}

		summary.Tasks++
		summary.Records += records

		for _, d := range destinations {
			if _, ok := seen[d]; ok {
				continue
			}

			seen[d] = struct{}{}
			summary.Destinations = append(summary.Destinations, d)
		}

		if r.callbacks.OnTaskComplete != nil {
			(*r.callbacks.OnTaskComplete)(partition, input, records, destinations)
		}
	}

	r.log.Info("Job completed",
		zap.String("job_id", r.jobID),
		zap.Int("tasks", summary.Tasks),
		zap.Int64("records", summary.Records),
		zap.Int("destinations", len(summary.Destinations)),
	)

	return summary, nil
}

// runTask writes one input file through a fresh multiplexing writer. The
// writer is always closed; its output is committed only if nothing failed
// and discarded otherwise.
func (r *Runner) runTask(ctx context.Context, partition int, input string) (int64, []string, error) {
	inputPath, err := filepath.Abs(input)
	if err != nil {
		return 0, nil, errors.Wrapf(errors.ErrCodeInputReadFailed, err, "failed to resolve %s", input)
	}

	attempt := task.NewAttemptID(r.jobID, task.TaskTypeMap, partition, 0)
	committer := task.NewFileOutputCommitter(r.cfg.OutputDir, attempt, r.log)

	if err := committer.SetupTask(); err != nil {
		return 0, nil, err
	}

	taskCtx := task.NewAttemptContext(attempt, r.conf, committer, task.WithInputPath(inputPath))

	writer, err := r.format.GetWriter(taskCtx)
	if err != nil {
		return 0, nil, r.abort(committer, err)
	}

	records, err := r.copyRecords(ctx, inputPath, writer)
	err = multierr.Append(err, writer.Close())

	if err != nil {
		return records, nil, r.abort(committer, err)
	}

	destinations := writer.Destinations()

	if err := committer.CommitTask(); err != nil {
		return records, nil, r.abort(committer, err)
	}

	return records, destinations, nil
}

func (r *Runner) abort(committer task.Committer, cause error) error {
	if err := committer.AbortTask(); err != nil {
		return multierr.Append(cause, err)
	}

	return cause
}

func (r *Runner) copyRecords(ctx context.Context, inputPath string, writer *multiout.MultiplexingWriter[any, string]) (int64, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInputReadFailed, err, "failed to open %s", inputPath)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records int64

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return records, fmt.Errorf("task cancelled: %w", err)
		}

		record := parseLine(scanner.Text(), r.cfg.InputSeparator)
		if err := writer.Write(record.Key, record.Value); err != nil {
			return records, err
		}

		records++
	}

	if err := scanner.Err(); err != nil {
		return records, errors.Wrapf(errors.ErrCodeInputReadFailed, err, "failed to read %s", inputPath)
	}

	return records, nil
}

// parseLine splits "key<sep>value". A line without the separator is a value
// without a key.
func parseLine(line string, separator string) types.Record[any, string] {
	key, value, found := strings.Cut(line, separator)
	if !found {
		return types.NewRecord[any](nil, line)
	}

	return types.NewRecord[any](key, value)
}
