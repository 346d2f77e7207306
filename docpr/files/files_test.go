package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/docpr/docpr/files"
)

func TestDigest_returns_sha256(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(pa, []byte("hello"), 0o600))

	got, err := files.Digest(pa)

	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(
		t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		got,
	)
}

func TestDigest_nonexistent_file(t *testing.T) {
	t.Parallel()

	got, err := files.Digest("/nonexistent")

	assert.Empty(t, got)
	assert.NoError(t, err)
}

func TestEnsureDir_nested(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, files.EnsureDir(dir))
	assert.DirExists(t, dir)

	// Idempotent.
	require.NoError(t, files.EnsureDir(dir))
}

func TestCopy_new_destination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")
	require.NoError(t, os.WriteFile(src, []byte("# doc\n"), 0o600))

	changed, err := files.Copy(src, dst)

	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "# doc\n", string(got))
}

func TestCopy_identical_destination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")
	require.NoError(t, os.WriteFile(src, []byte("same"), 0o600))
	require.NoError(t, os.WriteFile(dst, []byte("same"), 0o600))

	changed, err := files.Copy(src, dst)

	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCopy_overwrites_destination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o600))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o600))

	changed, err := files.Copy(src, dst)

	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestCopy_missing_source(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.md")

	_, err := files.Copy(filepath.Join(dir, "missing.md"), dst)

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, dst)
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	assert.True(t, files.Exists(dir))
	assert.False(t, files.Exists(filepath.Join(dir, "nope")))
}

func TestIsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o600))

	assert.True(t, files.IsDir(dir))
	assert.False(t, files.IsDir(file))
	assert.False(t, files.IsDir(filepath.Join(dir, "nope")))
}
