// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/airwave/internal/shared"
	"github.com/desertthunder/airwave/internal/storage"
)

// MemoryDriver opens an in-memory sqlite driver with the schema applied,
// closed automatically when the test finishes.
func MemoryDriver(t *testing.T) *storage.SQL {
	t.Helper()

	driver, err := storage.OpenSQLite(shared.SQLiteConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { driver.Close() })

	if err := driver.RunMigrations(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return driver
}

// ClosedDriver opens an in-memory sqlite driver and closes it immediately,
// for exercising storage failure paths.
func ClosedDriver(t *testing.T) *storage.SQL {
	t.Helper()

	driver, err := storage.OpenSQLite(shared.SQLiteConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := driver.RunMigrations(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := driver.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}

	return driver
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	MaxWrites int
	written   int
	Target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.MaxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.Target.Write(p)
}
