// Package parquetout writes destinations as Parquet files.
//
// Records are staged in an in-memory DuckDB table and exported on Close, so a
// destination's file only appears once its writer closes successfully.
package parquetout

import (
	"database/sql"
	"encoding"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/multiout/pkg/multiout"
	"github.com/rxtech-lab/multiout/pkg/task"
	"go.uber.org/multierr"
)

// Extension is appended to every destination.
const Extension = ".parquet"

// WriterFactory opens one staged Parquet writer per destination.
type WriterFactory[K, V any] struct{}

// NewWriterFactory creates a WriterFactory.
func NewWriterFactory[K, V any]() *WriterFactory[K, V] {
	return &WriterFactory[K, V]{}
}

var _ multiout.WriterFactory[string, string] = (*WriterFactory[string, string])(nil)

// CreateWriter implements multiout.WriterFactory. The target file is
// reserved empty right away so no other writer can claim it; Close
// overwrites it with the exported rows.
func (f *WriterFactory[K, V]) CreateWriter(ctx task.Context, destination string) (multiout.RecordWriter[K, V], error) {
	placeholder, err := multiout.CreateWorkFile(ctx, destination, Extension)
	if err != nil {
		return nil, err
	}

	path := placeholder.Name()

	if err := placeholder.Close(); err != nil {
		_ = os.Remove(path)

		return nil, fmt.Errorf("failed to reserve %s: %w", path, err)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		_ = os.Remove(path)

		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE records (
			seq BIGINT PRIMARY KEY,
			key TEXT,
			value TEXT
		)
	`)
	if err != nil {
		db.Close()
		_ = os.Remove(path)

		return nil, fmt.Errorf("failed to create records table: %w", err)
	}

	return &Writer[K, V]{
		path: path,
		db:   db,
		sq:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		seq:  0,
	}, nil
}

// Writer stages (key, value) rows and exports them in write order on Close.
// Keys and values are stored as text; nil becomes NULL.
type Writer[K, V any] struct {
	path string
	db   *sql.DB
	sq   squirrel.StatementBuilderType
	seq  int64
}

// Path returns the Parquet file the writer exports to.
func (w *Writer[K, V]) Path() string {
	return w.path
}

// Count returns the number of rows staged so far.
func (w *Writer[K, V]) Count() int64 {
	return w.seq
}

// Write implements multiout.RecordWriter.
func (w *Writer[K, V]) Write(key K, value V) error {
	if w.db == nil {
		return fmt.Errorf("writer for %s is closed", w.path)
	}

	k, err := toText(any(key))
	if err != nil {
		return err
	}

	v, err := toText(any(value))
	if err != nil {
		return err
	}

	query, args, err := w.sq.
		Insert("records").
		Columns("seq", "key", "value").
		Values(w.seq, k, v).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := w.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	w.seq++

	return nil
}

// Close exports the staged rows to the reserved Parquet file and releases the
// database. A failed export removes the reservation.
func (w *Writer[K, V]) Close() error {
	if w.db == nil {
		return nil
	}

	_, err := w.db.Exec(fmt.Sprintf(`
		COPY (SELECT key, value FROM records ORDER BY seq)
		TO '%s' (FORMAT PARQUET)
	`, quote(w.path)))
	if err != nil {
		err = fmt.Errorf("failed to export to parquet: %w", err)
		// An empty reservation is not a valid Parquet file.
		_ = os.Remove(w.path)
	}

	err = multierr.Append(err, w.db.Close())
	w.db = nil

	if err != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, err)
	}

	return nil
}

func toText(obj any) (sql.NullString, error) {
	switch o := obj.(type) {
	case nil:
		return sql.NullString{}, nil
	case string:
		return sql.NullString{String: o, Valid: true}, nil
	case []byte:
		return sql.NullString{String: string(o), Valid: true}, nil
	case encoding.TextMarshaler:
		text, err := o.MarshalText()
		if err != nil {
			return sql.NullString{}, fmt.Errorf("failed to marshal %T: %w", o, err)
		}

		return sql.NullString{String: string(text), Valid: true}, nil
	default:
		return sql.NullString{String: fmt.Sprint(o), Valid: true}, nil
	}
}

// quote escapes a path for use inside a single quoted SQL literal.
func quote(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
