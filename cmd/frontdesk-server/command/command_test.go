package command

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--env-file", ""))
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestMigrateThenSweep(t *testing.T) {
	t.Setenv("FRONTDESK_DB_PATH", filepath.Join(t.TempDir(), "frontdesk.db"))
	t.Setenv("FRONTDESK_LOG_LEVEL", "error")

	assert.Contains(t, execute(t, "migrate"), "applied 4 migrations")
	assert.Contains(t, execute(t, "migrate"), "applied 0 migrations")
	assert.Contains(t, execute(t, "sweep"), "removed 0 expired passes")
}

func TestMigrateRejectsMemoryStore(t *testing.T) {
	t.Setenv("FRONTDESK_STORE", "memory")
	t.Setenv("FRONTDESK_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"migrate", "--env-file", ""})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}

func TestServeFailsFastWhenGRPCPortTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	dbPath := filepath.Join(t.TempDir(), "frontdesk.db")
	t.Setenv("FRONTDESK_DB_PATH", dbPath)
	t.Setenv("FRONTDESK_HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("FRONTDESK_GRPC_ADDR", taken.Addr().String())
	t.Setenv("FRONTDESK_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"--env-file", ""})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err = rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grpc listen")

	// Nothing else was started: the database was never opened.
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))
}
