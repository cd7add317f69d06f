// Package testutil provides helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const (
	dbLockName    = "sqltour_tests"
	dbLockTimeout = 30 // seconds
)

// AcquireDBLock grabs a named server lock to serialize DB tests.
// The returned func releases the lock and must run on test cleanup.
func AcquireDBLock(ctx context.Context, db *sqlx.DB) (func() error, error) {
	conn, err := db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	var got int
	if err := conn.GetContext(ctx, &got, "SELECT GET_LOCK(?, ?)", dbLockName, dbLockTimeout); err != nil {
		conn.Close()
		return nil, fmt.Errorf("acquire server lock: %w", err)
	}
	if got != 1 {
		conn.Close()
		return nil, fmt.Errorf("timed out waiting for server lock %q", dbLockName)
	}

	unlock := func() error {
		defer conn.Close()
		if _, err := conn.ExecContext(ctx, "DO RELEASE_LOCK(?)", dbLockName); err != nil {
			return fmt.Errorf("release server lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// UniqueUsername generates a username unlikely to collide across runs.
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}

// UniqueEmail generates an email address unlikely to collide across runs.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s%d@example.com", prefix, time.Now().UnixNano())
}
