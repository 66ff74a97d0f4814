package multiout

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/rxtech-lab/multiout/pkg/errors"
	"github.com/rxtech-lab/multiout/pkg/task"
)

// RecordWriter persists records to one physical sink. Close is called exactly once.
type RecordWriter[K, V any] interface {
	Write(key K, value V) error
	Close() error
}

// WriterFactory opens the writer for a destination.
//
// Every call must return a new, independent writer whose output lives at
// destination resolved against ctx.Committer().WorkPath(). Factories do not
// cache; the MultiplexingWriter does.
type WriterFactory[K, V any] interface {
	CreateWriter(ctx task.Context, destination string) (RecordWriter[K, V], error)
}

// WriterFactoryFunc adapts a function to WriterFactory.
type WriterFactoryFunc[K, V any] func(ctx task.Context, destination string) (RecordWriter[K, V], error)

// CreateWriter implements WriterFactory.
func (f WriterFactoryFunc[K, V]) CreateWriter(ctx task.Context, destination string) (RecordWriter[K, V], error) {
	return f(ctx, destination)
}

// ResolveWorkFile maps destination plus ext to a file inside the attempt's work
// path. Destinations that are empty, absolute or escape the work path are
// rejected. Nothing is created on disk.
func ResolveWorkFile(ctx task.Context, destination string, ext string) (string, error) {
	if ctx.Committer() == nil {
		return "", errors.New(errors.ErrCodeInvalidParameter, "task context has no committer")
	}

	rel := filepath.FromSlash(destination + ext)
	if destination == "" || path.Clean(destination) == "." || !filepath.IsLocal(rel) {
		return "", errors.Newf(errors.ErrCodeInvalidDestination, "destination %q is not a local relative path", destination)
	}

	return filepath.Join(ctx.Committer().WorkPath(), rel), nil
}

// CreateWorkFile creates the file for destination plus ext inside the work
// path, together with its parent directories. The file must not exist yet.
// Directories created by a failed call are removed again.
func CreateWorkFile(ctx task.Context, destination string, ext string) (*os.File, error) {
	target, err := ResolveWorkFile(ctx, destination, ext)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(target)
	created := missingDirs(dir)

	if err := os.MkdirAll(dir, 0755); err != nil {
		removeDirs(created)

		return nil, fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		removeDirs(created)

		return nil, fmt.Errorf("failed to create %s: %w", target, err)
	}

	return file, nil
}

// missingDirs lists dir and those of its ancestors that do not exist, deepest first.
func missingDirs(dir string) []string {
	var missing []string

	for {
		if _, err := os.Stat(dir); err == nil {
			return missing
		}

		missing = append(missing, dir)

		parent := filepath.Dir(dir)
		if parent == dir {
			return missing
		}

		dir = parent
	}
}

// removeDirs removes empty directories in order; non-empty ones are left alone.
func removeDirs(dirs []string) {
	for _, d := range dirs {
		_ = os.Remove(d)
	}
}
