// Package exec provides shell command execution helpers.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner executes an external command in dir and
// returns its standard output.
type Runner interface {
	Run(
		ctx context.Context,
		dir string,
		name string,
		arg ...string,
	) (string, error)
}

// Shell runs commands as child processes. A zero
// Timeout lets a command run until it exits.
type Shell struct {
	Timeout time.Duration
}

// Run executes the named command in the given
// directory. Pass empty dir to use the current working
// directory. Standard error is logged and attached to
// the returned error, never to the output.
func (s Shell) Run(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error) {
	const errCtx = "executing command"

	if s.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	slog.Info(
		"executing",
		"cmd", name,
		"args", strings.Join(arg, " "),
		"dir", dir,
	)

	var stdout, stderr bytes.Buffer

	//nolint:gosec // commands are built by this module
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	slog.Debug(
		"output",
		"stdout", stdout.String(),
		"stderr", stderr.String(),
	)

	if err != nil {
		return stdout.String(), fmt.Errorf(
			"%s: %s %s: %w (stderr: %s)",
			errCtx, name, strings.Join(arg, " "), err,
			strings.TrimSpace(stderr.String()),
		)
	}

	return stdout.String(), nil
}
