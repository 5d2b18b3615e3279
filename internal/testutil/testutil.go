package testutil

import (
	"database/sql"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravchenko/accountd/internal/db"
)

// Return random free port on 127.0.0.1 address
func RandomPort() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:")
	if err != nil {
		return 0, err
	}
	defer ln.Close() // nolint:errcheck

	addr := ln.Addr().(*net.TCPAddr)
	return addr.Port, nil
}

// OpenDB creates a file backed sqlite database in the test temp dir and
// brings the schema up to date. Closed and removed when the test ends, so
// every test starts from an empty store.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accountd-test.db")
	pool, err := db.OpenAndMigrate(path)
	require.NoError(t, err, "test database should open and migrate")

	t.Cleanup(func() {
		_ = pool.Close()
	})

	return pool
}
