package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkravchenko/accountd/internal/testutil"
)

func Test_run(t *testing.T) {
	port, err := testutil.RandomPort()
	require.NoError(t, err, "failed to get random port to start server")
	listenAddr := fmt.Sprintf("127.0.0.1:%d", port)

	t.Run("stop on context cancel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond) // Half second
		t.Cleanup(cancel)

		err := run(ctx, os.Getenv, os.Getwd, []string{
			"--address", listenAddr,
			"--database", filepath.Join(t.TempDir(), "users.db"),
			"--log-level", "debug",
			"--environment", "dev",
		})

		require.NoError(t, err, "on correct stop should not return error")
	})

	t.Run("stop with config error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond) // Half second
		t.Cleanup(cancel)

		// Unknown environment. Must fail before the server starts
		err := run(ctx, os.Getenv, os.Getwd, []string{
			"--address", listenAddr,
			"--database", filepath.Join(t.TempDir(), "users.db"),
			"--environment", "staging",
		})

		require.Error(t, err, "on incorrect config should return error")
	})
}
