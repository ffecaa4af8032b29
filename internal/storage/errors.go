package storage

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrConstraint reports a write the engine rejected for violating a
	// domain check or uniqueness constraint. Not retryable.
	ErrConstraint = fmt.Errorf("constraint violation")

	// ErrUnavailable reports a failure to reach the configured engine.
	// The driver does not retry; retry policy belongs to the caller.
	ErrUnavailable = fmt.Errorf("storage unavailable")
)

// classify wraps engine-specific errors with the package sentinels so callers
// can distinguish constraint violations from transient storage failures
// without importing either driver package.
func (s *SQL) classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %v", ErrConstraint, err)
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23": // integrity constraint violation
			return fmt.Errorf("%w: %v", ErrConstraint, err)
		case "08", "57": // connection exceptions, operator intervention
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return err
}

// Classify exposes error classification for callers that scan rows themselves,
// such as [SQL.QueryOne] consumers.
func (s *SQL) Classify(err error) error {
	return s.classify(err)
}
