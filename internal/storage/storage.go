// package storage executes parameterized SQL against the configured engine.
//
// Two engines are supported: the embedded file-backed SQLite engine and a
// networked PostgreSQL server. Callers write queries with ordinal `?`
// placeholders; the driver translates them to the engine's native syntax.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/airwave/internal/shared"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ExecResult reports the outcome of a write statement.
//
// InsertedID is only valid on the sqlite engine; lib/pq does not support
// LastInsertId and callers must not depend on it.
type ExecResult struct {
	Affected   int64
	InsertedID sql.NullInt64
}

// Driver defines the three query primitives the rating repository uses.
// Implementations classify engine errors into the package sentinels
// ([ErrConstraint], [ErrUnavailable]) before returning them.
type Driver interface {
	QueryMany(ctx context.Context, query string, args ...any) (*sql.Rows, error)  // QueryMany runs a query expected to return zero or more rows
	QueryOne(ctx context.Context, query string, args ...any) *sql.Row             // QueryOne runs a query expected to return at most one row
	Execute(ctx context.Context, query string, args ...any) (ExecResult, error)   // Execute runs a write statement
	Classify(err error) error                                                     // Classify wraps engine errors with the package sentinels
	Engine() string                                                               // Engine returns the configured engine name
	Ping(ctx context.Context) error                                               // Ping verifies the connection is alive
	Close() error                                                                 // Close releases the connection pool
}

// SQL implements [Driver] over a [sql.DB] for either supported engine.
type SQL struct {
	db     *sql.DB
	engine string
}

// Open connects to the engine selected by cfg and verifies the connection.
func Open(cfg *shared.DatabaseConfig) (*SQL, error) {
	switch cfg.Engine {
	case shared.EngineSQLite:
		return OpenSQLite(cfg.SQLite)
	case shared.EnginePostgres:
		return OpenPostgres(cfg.Postgres)
	default:
		return nil, fmt.Errorf("%w: unknown storage engine %q", shared.ErrInvalidConfig, cfg.Engine)
	}
}

// OpenSQLite opens the embedded engine at the configured path.
// The path can be ":memory:" for an in-memory database.
func OpenSQLite(cfg shared.SQLiteConfig) (*SQL, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	configurePool(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	return &SQL{db: db, engine: shared.EngineSQLite}, nil
}

// OpenPostgres connects to the networked engine.
func OpenPostgres(cfg shared.PostgresConfig) (*SQL, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, port, cfg.Name, cfg.User, cfg.Password, sslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	configurePool(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	return &SQL{db: db, engine: shared.EnginePostgres}, nil
}

// configurePool sets connection pool limits when configured, leaving the
// database/sql defaults in place otherwise.
func configurePool(db *sql.DB, maxOpen, maxIdle int) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
}

// QueryMany runs a query expected to return zero or more rows.
func (s *SQL) QueryMany(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, s.classify(err)
	}
	return rows, nil
}

// QueryOne runs a query expected to return at most one row.
//
// Errors surface from [sql.Row.Scan]; callers pass them through [SQL.Classify]
// when they need the typed sentinel.
func (s *SQL) QueryOne(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// Execute runs a write statement and reports affected rows and, on sqlite,
// the last inserted row id.
func (s *SQL) Execute(ctx context.Context, query string, args ...any) (ExecResult, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return ExecResult{}, s.classify(err)
	}

	result := ExecResult{}
	if affected, err := res.RowsAffected(); err == nil {
		result.Affected = affected
	}
	if s.engine == shared.EngineSQLite {
		if id, err := res.LastInsertId(); err == nil {
			result.InsertedID = sql.NullInt64{Int64: id, Valid: true}
		}
	}

	return result, nil
}

// Engine returns the configured engine name.
func (s *SQL) Engine() string {
	return s.engine
}

// Ping verifies the connection is alive.
func (s *SQL) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQL) Close() error {
	return s.db.Close()
}

// rebind translates ordinal `?` placeholders to the engine's native syntax.
// SQLite consumes `?` directly; postgres requires `$1`, `$2`, ...
func (s *SQL) rebind(query string) string {
	if s.engine != shared.EnginePostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
