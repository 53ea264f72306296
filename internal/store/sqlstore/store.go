// Package sqlstore implements the store contracts over database/sql.
// SQLite (modernc.org/sqlite) is the default backend; PostgreSQL is opened
// through gorm, which owns migrations and hands back its connection pool.
package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/inkwell/inkwell-server/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options configures the connection pool.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides relational persistence for users, posts and tags.
// A Store returned by Open is safe for concurrent use. A Store handed to a
// WithTx callback is bound to that transaction and must not outlive it.
type Store struct {
	db      *sql.DB
	tx      *sql.Tx
	dialect dialect
	logger  *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open connects to the database described by opts and migrates the schema.
func Open(opts Options, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(opts, logger)
	case DriverPostgres:
		return OpenPostgres(opts, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// OpenSQLite opens a SQLite database file at opts.DSN.
// It configures WAL mode, sets pragmas on every pooled connection, and runs
// the embedded schema.
func OpenSQLite(opts Options, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", sqliteDSN(opts.DSN))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	configurePool(db, opts)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	logger.Debug("sqlite store opened", "path", opts.DSN)

	return &Store{db: db, dialect: dialectSQLite, logger: logger}, nil
}

// sqliteDSN appends the connection pragmas. modernc applies _pragma
// parameters to each new connection, which keeps foreign keys enforced
// across the whole pool.
func sqliteDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + params.Encode()
}

func configurePool(db *sql.DB, opts Options) {
	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 4
	}
	maxIdle := opts.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 2
	}
	lifetime := opts.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// q returns the querier for single-statement operations.
func (s *Store) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// acquire returns a querier pinned to one connection for operations that
// issue more than one statement. Inside a transaction the tx itself is
// returned. release must be called on every path.
func (s *Store) acquire(ctx context.Context) (q querier, release func(), err error) {
	if s.tx != nil {
		return s.tx, func() {}, nil
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, func() {
		if err := conn.Close(); err != nil {
			s.logger.Warn("release connection", "error", err)
		}
	}, nil
}

// WithTx runs fn inside a transaction. Calls made through the Repositories
// passed to fn share the transaction. A nested WithTx joins the outer one.
func (s *Store) WithTx(ctx context.Context, fn func(repos store.Repositories) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	if err := fn(&Store{db: s.db, tx: tx, dialect: s.dialect, logger: s.logger}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
