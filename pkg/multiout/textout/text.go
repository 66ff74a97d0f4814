// Package textout writes destinations as line oriented text files.
package textout

import (
	"bufio"
	"encoding"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/rxtech-lab/multiout/pkg/multiout"
	"github.com/rxtech-lab/multiout/pkg/task"
	"go.uber.org/multierr"
)

const (
	// DefaultSeparator separates key and value when task.ConfTextSeparator is unset.
	DefaultSeparator = "\t"
	// CompressedExtension is appended to destinations when compression is enabled.
	CompressedExtension = ".gz"

	bufferSize = 64 * 1024
)

// WriterFactory opens one text file per destination.
type WriterFactory[K, V any] struct{}

// NewWriterFactory creates a WriterFactory.
func NewWriterFactory[K, V any]() *WriterFactory[K, V] {
	return &WriterFactory[K, V]{}
}

var _ multiout.WriterFactory[string, string] = (*WriterFactory[string, string])(nil)

// CreateWriter implements multiout.WriterFactory. The file is created
// exclusively: an existing file at the destination is an error.
func (f *WriterFactory[K, V]) CreateWriter(ctx task.Context, destination string) (multiout.RecordWriter[K, V], error) {
	conf := ctx.Configuration()
	compress := conf.GetBool(task.ConfCompressOutput, false)

	ext := ""
	if compress {
		ext = CompressedExtension
	}

	file, err := multiout.CreateWorkFile(ctx, destination, ext)
	if err != nil {
		return nil, err
	}

	w := &Writer[K, V]{
		path:      file.Name(),
		separator: conf.GetString(task.ConfTextSeparator, DefaultSeparator),
		file:      file,
		gz:        nil,
		buf:       nil,
	}

	var out io.Writer = file
	if compress {
		w.gz = gzip.NewWriter(file)
		out = w.gz
	}

	w.buf = bufio.NewWriterSize(out, bufferSize)

	return w, nil
}

// Writer writes "key<separator>value\n" lines. A nil key or value is left out
// together with the separator; a record with both nil writes nothing.
type Writer[K, V any] struct {
	path      string
	separator string
	file      *os.File
	gz        *gzip.Writer
	buf       *bufio.Writer
}

// Path returns the file the writer writes to.
func (w *Writer[K, V]) Path() string {
	return w.path
}

// Write implements multiout.RecordWriter.
func (w *Writer[K, V]) Write(key K, value V) error {
	if w.buf == nil {
		return fmt.Errorf("writer for %s is closed", w.path)
	}

	k, v := any(key), any(value)
	hasKey, hasValue := k != nil, v != nil

	if !hasKey && !hasValue {
		return nil
	}

	if hasKey {
		if err := writeObject(w.buf, k); err != nil {
			return err
		}
	}

	if hasKey && hasValue {
		if _, err := w.buf.WriteString(w.separator); err != nil {
			return err
		}
	}

	if hasValue {
		if err := writeObject(w.buf, v); err != nil {
			return err
		}
	}

	return w.buf.WriteByte('\n')
}

// Close flushes buffered data, finishes the gzip stream and closes the file.
// Every step runs even if an earlier one fails.
func (w *Writer[K, V]) Close() error {
	if w.buf == nil {
		return nil
	}

	err := w.buf.Flush()
	if w.gz != nil {
		err = multierr.Append(err, w.gz.Close())
	}

	err = multierr.Append(err, w.file.Close())
	w.buf = nil

	if err != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, err)
	}

	return nil
}

func writeObject(out *bufio.Writer, obj any) error {
	switch o := obj.(type) {
	case string:
		_, err := out.WriteString(o)

		return err
	case []byte:
		_, err := out.Write(o)

		return err
	case encoding.TextMarshaler:
		text, err := o.MarshalText()
		if err != nil {
			return fmt.Errorf("failed to marshal %T: %w", o, err)
		}

		_, err = out.Write(text)

		return err
	default:
		_, err := fmt.Fprint(out, o)

		return err
	}
}
