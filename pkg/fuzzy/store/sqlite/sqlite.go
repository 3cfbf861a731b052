package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "sqlite: open %s", path)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "sqlite: enable wal")
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	source TEXT,
	method TEXT,
	inputs TEXT,
	output REAL,
	shape TEXT,
	vals TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "sqlite: init schema")
	}
	return nil
}

// RecordRun inserts a run
func (s *sqliteStore) RecordRun(ctx context.Context, r store.Run) (store.Run, error) {
	r = store.Prepare(r, time.Now())

	inputs, err := json.Marshal(r.Inputs)
	if err != nil {
		return store.Run{}, errors.Wrap(err, "sqlite: encode inputs")
	}
	shape, err := json.Marshal(r.Shape)
	if err != nil {
		return store.Run{}, errors.Wrap(err, "sqlite: encode shape")
	}
	vals, err := json.Marshal(r.Values)
	if err != nil {
		return store.Run{}, errors.Wrap(err, "sqlite: encode values")
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, kind, source, method, inputs, output, shape, vals, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.Kind), r.Source, r.Method,
		string(inputs), r.Output, string(shape), string(vals),
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return store.Run{}, errors.Wrapf(internalerr.ErrInvalidInput, "sqlite: run %s already recorded", r.ID)
		}
		return store.Run{}, errors.Wrapf(err, "sqlite: insert run %s", r.ID)
	}
	return store.Clone(r), nil
}

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = `id, kind, source, method, inputs, output, shape, vals, created_at`

// GetRun fetches a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, errors.Wrapf(internalerr.ErrNotFound, "sqlite: run %s", id)
	}
	if err != nil {
		return store.Run{}, errors.Wrapf(err, "sqlite: get run %s", id)
	}
	return r, nil
}

// ListRuns returns runs newest first
func (s *sqliteStore) ListRuns(ctx context.Context, opts store.ListOptions) ([]store.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if opts.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(opts.Kind))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, opts.EffectiveLimit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "sqlite: scan run")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r                   store.Run
		kind                string
		source, method      sql.NullString
		inputs, shape, vals sql.NullString
		output              sql.NullFloat64
		created             string
	)
	if err := sc.Scan(&r.ID, &kind, &source, &method, &inputs, &output, &shape, &vals, &created); err != nil {
		return store.Run{}, err
	}
	r.Kind = store.Kind(kind)
	r.Source = source.String
	r.Method = method.String
	r.Output = output.Float64

	if err := decode(inputs, &r.Inputs); err != nil {
		return store.Run{}, errors.Wrap(err, "inputs")
	}
	if err := decode(shape, &r.Shape); err != nil {
		return store.Run{}, errors.Wrap(err, "shape")
	}
	if err := decode(vals, &r.Values); err != nil {
		return store.Run{}, errors.Wrap(err, "values")
	}

	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return store.Run{}, errors.Wrap(err, "created_at")
	}
	r.CreatedAt = ts
	return r, nil
}

func decode[T any](s sql.NullString, dst *[]T) error {
	if !s.Valid || s.String == "" || s.String == "null" {
		*dst = nil
		return nil
	}
	return json.Unmarshal([]byte(s.String), dst)
}
