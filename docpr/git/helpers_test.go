package git_test

import (
	"context"
	"errors"
	oe "os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/byte4ever/docpr/docpr/git"
)

var errExit = errors.New("exit status 1")

// recorder is an exec.Runner that records every call
// and fails the calls whose joined command line has
// one of the configured prefixes.
type recorder struct {
	mu      sync.Mutex
	calls   []string
	failOn  []string
	outputs map[string]string
}

func (r *recorder) Run(
	_ context.Context,
	_ string,
	name string,
	arg ...string,
) (string, error) {
	line := strings.Join(append([]string{name}, arg...), " ")

	r.mu.Lock()
	r.calls = append(r.calls, line)
	r.mu.Unlock()

	for _, prefix := range r.failOn {
		if strings.HasPrefix(line, prefix) {
			return "", errExit
		}
	}

	return r.outputs[line], nil
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}

// runnerFunc adapts a function to exec.Runner.
type runnerFunc func(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error)

func (f runnerFunc) Run(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error) {
	return f(ctx, dir, name, arg...)
}

// providerFunc adapts a function to git.Provider.
type providerFunc func(
	ctx context.Context,
	pr git.PullRequest,
) (string, error)

func (f providerFunc) CreatePR(
	ctx context.Context,
	pr git.PullRequest,
) (string, error) {
	return f(ctx, pr)
}

// initGitRepo creates a git repository with one
// initial commit. Git hooks are disabled to avoid
// interference from pre-commit hooks.
func initGitRepo(tb testing.TB, dir string) {
	tb.Helper()

	cmds := [][]string{
		{"init", "-b", "main"},
		{
			"config",
			"user.email", "test@test.com",
		},
		{"config", "user.name", "Test"},
		{"config", "commit.gpgsign", "false"},
		// Disable hooks so pre-commit scanners do
		// not interfere with tests.
		{
			"config", "core.hooksPath",
			"/dev/null",
		},
		{
			"commit", "--allow-empty",
			"-m", "initial",
		},
	}

	for _, args := range cmds {
		gitCmd(tb, dir, args...)
	}
}

// gitCmd runs a git command in dir and fails the test
// on error. Returns trimmed output.
func gitCmd(tb testing.TB, dir string, args ...string) string {
	tb.Helper()

	cmd := oe.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	require.NoError(
		tb, err,
		"git %v: %s", args, string(out),
	)

	return strings.TrimSpace(string(out))
}
