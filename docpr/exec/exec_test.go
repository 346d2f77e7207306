package exec_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/docpr/docpr/exec"
)

func TestShell_success(t *testing.T) {
	t.Parallel()

	out, err := exec.Shell{}.Run(
		context.Background(), "", "echo", "hello",
	)

	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestShell_with_dir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	out, err := exec.Shell{}.Run(context.Background(), dir, "pwd")

	require.NoError(t, err)
	assert.Contains(t, out, dir)
}

func TestShell_failure(t *testing.T) {
	t.Parallel()

	_, err := exec.Shell{}.Run(context.Background(), "", "false")

	assert.Error(t, err)
}

func TestShell_stderr_kept_out_of_output(t *testing.T) {
	t.Parallel()

	out, err := exec.Shell{}.Run(
		context.Background(), "",
		"sh", "-c", "echo url; echo progress >&2",
	)

	require.NoError(t, err)
	assert.Equal(t, "url\n", out)
}

func TestShell_stderr_in_error(t *testing.T) {
	t.Parallel()

	_, err := exec.Shell{}.Run(
		context.Background(), "",
		"sh", "-c", "echo boom >&2; exit 3",
	)

	require.Error(t, err)
	assert.ErrorContains(t, err, "boom")
}

func TestShell_timeout(t *testing.T) {
	t.Parallel()

	sh := exec.Shell{Timeout: 50 * time.Millisecond}

	start := time.Now()
	_, err := sh.Run(context.Background(), "", "sleep", "5")

	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}
