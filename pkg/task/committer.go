package task

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/multiout/internal/logger"
	"github.com/rxtech-lab/multiout/pkg/errors"
	"go.uber.org/zap"
)

// TemporaryDirName is the directory under the output directory holding attempt work paths.
const TemporaryDirName = "_temporary"

// Committer owns the physical output location of one task attempt.
type Committer interface {
	// WorkPath is the directory an attempt writes its files to before commit.
	WorkPath() string
	// SetupTask prepares the work path.
	SetupTask() error
	// CommitTask publishes everything under the work path to the final output directory.
	CommitTask() error
	// AbortTask discards the work path.
	AbortTask() error
}

// FileOutputCommitter stages attempt output under <output>/_temporary/<attempt>
// and moves it into <output> on commit.
type FileOutputCommitter struct {
	outputDir string
	attempt   AttemptID
	log       *logger.Logger
}

// NewFileOutputCommitter creates a committer for attempt writing into outputDir.
func NewFileOutputCommitter(outputDir string, attempt AttemptID, log *logger.Logger) *FileOutputCommitter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &FileOutputCommitter{
		outputDir: outputDir,
		attempt:   attempt,
		log:       log,
	}
}

var _ Committer = (*FileOutputCommitter)(nil)

// OutputDir returns the final output directory.
func (c *FileOutputCommitter) OutputDir() string {
	return c.outputDir
}

// WorkPath implements Committer.
func (c *FileOutputCommitter) WorkPath() string {
	return filepath.Join(c.outputDir, TemporaryDirName, c.attempt.String())
}

// SetupTask implements Committer.
func (c *FileOutputCommitter) SetupTask() error {
	if err := os.MkdirAll(c.WorkPath(), 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeTaskSetupFailed, err, "failed to create work path for %s", c.attempt)
	}

	c.log.Debug("Task work path created",
		zap.String("attempt", c.attempt.String()),
		zap.String("work_path", c.WorkPath()),
	)

	return nil
}

// CommitTask implements Committer.
// Files are moved one by one; an existing file at the final location is never overwritten.
func (c *FileOutputCommitter) CommitTask() error {
	workPath := c.WorkPath()

	var committed int

	err := filepath.WalkDir(workPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(workPath, path)
		if err != nil {
			return err
		}

		target := filepath.Join(c.outputDir, rel)
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("output file %s already exists", target)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}

		if err := os.Rename(path, target); err != nil {
			return err
		}

		committed++

		return nil
	})
	if err != nil {
		return errors.Wrapf(errors.ErrCodeTaskCommitFailed, err, "failed to commit %s", c.attempt)
	}

	if err := c.cleanup(); err != nil {
		return errors.Wrapf(errors.ErrCodeTaskCommitFailed, err, "failed to clean up after commit of %s", c.attempt)
	}

	c.log.Info("Task committed",
		zap.String("attempt", c.attempt.String()),
		zap.Int("files", committed),
	)

	return nil
}

// AbortTask implements Committer.
func (c *FileOutputCommitter) AbortTask() error {
	if err := c.cleanup(); err != nil {
		return errors.Wrapf(errors.ErrCodeTaskAbortFailed, err, "failed to abort %s", c.attempt)
	}

	c.log.Info("Task aborted", zap.String("attempt", c.attempt.String()))

	return nil
}

// cleanup removes the work path and, when no other attempt is staged, the temporary root.
//
//nolint:funcorder // helper method used by CommitTask and AbortTask
func (c *FileOutputCommitter) cleanup() error {
	if err := os.RemoveAll(c.WorkPath()); err != nil {
		return err
	}

	// Fails while siblings are still staged, which is fine.
	_ = os.Remove(filepath.Join(c.outputDir, TemporaryDirName))

	return nil
}
