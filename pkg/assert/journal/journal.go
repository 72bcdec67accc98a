// Package journal persists assertion failures to a SQLite database so they
// can be reviewed after the process has moved on or died.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"dbgh/pkg/assert"
)

// ErrClosed is returned by operations on a closed Journal.
var ErrClosed = errors.New("journal: closed")

// Entry is one recorded failure.
type Entry struct {
	ID         string
	Level      assert.Level
	Message    string
	Expression string
	File       string
	Line       int
	Function   string
	Record     string
	CreatedAt  time.Time
}

// Journal stores failures in the failures table of a SQLite database.
type Journal struct {
	db     *sql.DB
	mu     sync.RWMutex
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger used for write failures, which an Executor
// cannot return to its caller.
func WithLogger(l *zap.Logger) Option {
	return func(j *Journal) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

var schema = []string{`
CREATE TABLE IF NOT EXISTS failures (
	id TEXT PRIMARY KEY,
	level TEXT NOT NULL,
	message TEXT NOT NULL,
	expression TEXT NOT NULL,
	file TEXT NOT NULL,
	line INTEGER NOT NULL,
	function TEXT NOT NULL,
	record TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_failures_created_at ON failures(created_at)`,
}

// Open opens or creates the journal database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create journal schema: %w", err)
		}
	}

	j := &Journal{
		db:     db,
		path:   path,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Path returns the database path.
func (j *Journal) Path() string {
	return j.path
}

// Add records a failure. record is the text handed to the Executor. When
// err is nil the level and call-site fields are recovered from record.
func (j *Journal) Add(ctx context.Context, level assert.Level, record string, err *assert.AssertionError) (Entry, error) {
	if err == nil {
		if parsed, failure, ok := assert.ParseRecord(record); ok {
			level, err = parsed, failure
		}
	}
	e := Entry{
		ID:        uuid.NewString(),
		Level:     level,
		Record:    record,
		CreatedAt: j.now().UTC(),
	}
	if err != nil {
		e.Message = err.Message()
		e.Expression = err.Expression()
		e.File = err.File()
		e.Line = err.Line()
		e.Function = err.Function()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return Entry{}, ErrClosed
	}
	_, dbErr := j.db.ExecContext(ctx,
		`INSERT INTO failures (id, level, message, expression, file, line, function, record, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Level.String(), e.Message, e.Expression, e.File, e.Line, e.Function, e.Record, e.CreatedAt.UnixNano(),
	)
	if dbErr != nil {
		return Entry{}, fmt.Errorf("failed to insert failure: %w", dbErr)
	}
	return e, nil
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, level, message, expression, file, line, function, record, created_at
		 FROM failures ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			level string
			nanos int64
		)
		if err := rows.Scan(&e.ID, &level, &e.Message, &e.Expression, &e.File, &e.Line, &e.Function, &e.Record, &nanos); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		e.Level, err = assert.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, nanos).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read failures: %w", err)
	}
	return entries, nil
}

// Count returns the number of recorded failures.
func (j *Journal) Count(ctx context.Context) (int, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM failures").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count failures: %w", err)
	}
	return n, nil
}

// Close closes the database. Further calls return ErrClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
