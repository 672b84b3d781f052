package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogFile_TrimsToWholeLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	lf, err := openLogFile(path)
	require.NoError(t, err)
	lf.maxBytes, lf.keep = 100, 50
	t.Cleanup(func() { _ = lf.Close() })

	for i := 0; i < 10; i++ {
		_, err := lf.Write([]byte("level=INFO msg=\"grievance submitted\"\n"))
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), 100)
	require.NotEmpty(t, data)
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		require.Equal(t, `level=INFO msg="grievance submitted"`, line)
	}
}

func TestEnsureDir(t *testing.T) {
	require.NoError(t, ensureDir(":memory:"))
	require.NoError(t, ensureDir("mlaconnect.db"))

	path := filepath.Join(t.TempDir(), "data", "mlaconnect.db")
	require.NoError(t, ensureDir(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
