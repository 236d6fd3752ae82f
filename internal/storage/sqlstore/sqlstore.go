// Package sqlstore provides a SQL-backed implementation of the storage.Store
// interface. SQLite (pure Go, no CGO) is the default backend; PostgreSQL is
// supported through lib/pq with the same schema and queries.
package sqlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/meetsplit/internal/storage"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Ensure SQLStore implements storage.Store
var _ storage.Store = (*SQLStore)(nil)

// SQLStore implements storage.Store on top of sqlx.
// Queries are written with '?' placeholders and rebound for the driver.
type SQLStore struct {
	db *sqlx.DB

	// q is db outside a transaction and the *sqlx.Tx inside one.
	q sqlx.ExtContext
}

// New creates a SQLite-backed store at dbPath.
func New(dbPath string) (*SQLStore, error) {
	return Open(DriverSQLite, dbPath)
}

// Open connects to the database and runs migrations.
// For SQLite the dsn is a file path whose parent directories are created.
func Open(driver, dsn string) (*SQLStore, error) {
	switch driver {
	case DriverSQLite:
		// Create parent directory if it doesn't exist
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection serialises transactions and keeps the pragma below
		// in effect for every query.
		db.SetMaxOpenConns(1)

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStore{db: db, q: db}, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside a database transaction.
func (s *SQLStore) WithTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&SQLStore{db: s.db, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *SQLStore) get(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, s.q, dest, s.q.Rebind(query), args...)
}

func (s *SQLStore) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, s.q, dest, s.q.Rebind(query), args...)
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.q.ExecContext(ctx, s.q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// conds accumulates "column = ?" conditions joined with AND.
type conds struct {
	clauses []string
	args    []any
}

// eq adds column = value when value is non-empty.
func (c *conds) eq(column, value string) {
	if value == "" {
		return
	}
	c.clauses = append(c.clauses, column+" = ?")
	c.args = append(c.args, value)
}

// in adds column IN (...) when values is non-empty.
func (c *conds) in(column string, values []string) {
	if len(values) == 0 {
		return
	}
	c.clauses = append(c.clauses, column+" IN (?"+repeatPlaceholder(len(values)-1)+")")
	for _, v := range values {
		c.args = append(c.args, v)
	}
}

func (c *conds) empty() bool {
	return len(c.clauses) == 0
}

// where renders the WHERE clause, or "" when there are no conditions.
func (c *conds) where() string {
	if c.empty() {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// sets accumulates "column = ?" assignments for UPDATE statements.
type sets struct {
	columns []string
	args    []any
}

func (s *sets) add(column string, value any) {
	s.columns = append(s.columns, column+" = ?")
	s.args = append(s.args, value)
}

func (s *sets) clause() string {
	return strings.Join(s.columns, ", ")
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(", ?", n)
}
