package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/docpr/docpr/logging"
)

func TestNew_writes_console_and_file(t *testing.T) {
	t.Parallel()

	var console bytes.Buffer

	path := filepath.Join(t.TempDir(), "logs", "docpr.log")

	logger, closer, err := logging.New(logging.Options{
		File:    path,
		Console: &console,
	})
	require.NoError(t, err)

	logger.Info("branch created", "branch", "doc/x")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	assert.Contains(t, console.String(), "branch created")
	assert.Contains(t, console.String(), "branch=doc/x")
	assert.NotContains(t, console.String(), "hidden")

	by, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(by), "branch created")
}

func TestNew_appends_to_existing_file(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docpr.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o600))

	logger, closer, err := logging.New(logging.Options{
		File:    path,
		Console: &bytes.Buffer{},
	})
	require.NoError(t, err)

	logger.Error("push failed")
	require.NoError(t, closer.Close())

	by, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(by), "previous run\n")
	assert.Contains(t, string(by), "push failed")
}

func TestNew_attrs_reach_both_sinks(t *testing.T) {
	t.Parallel()

	var console bytes.Buffer

	path := filepath.Join(t.TempDir(), "docpr.log")

	logger, closer, err := logging.New(logging.Options{
		File:    path,
		Console: &console,
		Level:   slog.LevelDebug,
	})
	require.NoError(t, err)

	logger.With("op", "push").WithGroup("g").Debug("detail", "k", 1)
	require.NoError(t, closer.Close())

	by, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, out := range []string{console.String(), string(by)} {
		assert.Contains(t, out, "op=push")
		assert.Contains(t, out, "g.k=1")
	}
}

func TestNewSink_keeps_rotated_files(t *testing.T) {
	t.Parallel()

	sink := logging.NewSinkForTest(logging.Options{
		File:      "docpr.log",
		MaxSizeMB: 5,
	})

	assert.Equal(t, "docpr.log", sink.Filename)
	assert.Equal(t, 5, sink.MaxSize)
	assert.Zero(t, sink.MaxBackups)
	assert.Zero(t, sink.MaxAge)
}
