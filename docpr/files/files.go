package files

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// Digest computes the SHA256 hex digest of the file at
// path. Returns empty string with no error if the file
// does not exist.
func Digest(path string) (result string, retErr error) {
	const errCtx = "calculating digest"

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	ha := sha256.New()

	if _, err := io.Copy(ha, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	const errCtx = "creating directory"

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Copy copies src to dst, replacing dst. It reports
// whether dst content differs from what it held before
// the copy. A missing src yields an error matching
// os.ErrNotExist and leaves dst untouched.
func Copy(src string, dst string) (bool, error) {
	const errCtx = "copying file"

	data, err := os.ReadFile(src) //nolint:gosec // path comes from the operator
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	before, err := Digest(dst)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	sum := sha256.Sum256(data)
	if before == hex.EncodeToString(sum[:]) {
		return false, nil
	}

	if err := os.WriteFile(dst, data, 0o644); err != nil { //nolint:gosec // docs are world-readable
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return true, nil
}

// Exists reports whether path names an existing file
// or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// IsDir reports whether path names an existing
// directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && fi.IsDir()
}
