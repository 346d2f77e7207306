package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/byte4ever/docpr/docpr/exec"
	"github.com/byte4ever/docpr/docpr/files"
)

// Defaults applied by NewClient.
const (
	DefaultUpstreamRemote = "upstream"
	DefaultForkRemote     = "origin"
	DefaultPrimaryBranch  = "main"
)

// ClientConfig holds the settings of a Client. Use a
// struct instead of many constructor arguments.
type ClientConfig struct {
	// Identity is the operator's hosting username.
	Identity string
	// Dir is the local working copy.
	Dir string
	// UpstreamRemote is the canonical remote synced
	// from.
	UpstreamRemote string
	// ForkRemote is the operator's remote pushed to.
	ForkRemote string
	// Runner executes git; exec.Shell when nil.
	Runner exec.Runner
	// Provider opens pull requests; a CLIProvider in
	// Dir when nil.
	Provider Provider
}

// Client runs the submission steps against one working
// copy. Set the files with SetFiles before staging.
type Client struct {
	identity string
	dir      string
	upstream string
	fork     string
	runner   exec.Runner
	provider Provider
	files    FileSet
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	const errCtx = "creating git client"

	if cfg.Dir == "" {
		return nil, fmt.Errorf(
			"%s: working copy dir must be set", errCtx,
		)
	}

	if cfg.UpstreamRemote == "" {
		cfg.UpstreamRemote = DefaultUpstreamRemote
	}

	if cfg.ForkRemote == "" {
		cfg.ForkRemote = DefaultForkRemote
	}

	if cfg.Runner == nil {
		cfg.Runner = exec.Shell{}
	}

	if cfg.Provider == nil {
		cfg.Provider = CLIProvider{
			Dir:    cfg.Dir,
			Runner: cfg.Runner,
		}
	}

	return &Client{
		identity: cfg.Identity,
		dir:      cfg.Dir,
		upstream: cfg.UpstreamRemote,
		fork:     cfg.ForkRemote,
		runner:   cfg.Runner,
		provider: cfg.Provider,
	}, nil
}

// SetFiles sets the files staged by AddLocalCommit.
func (c *Client) SetFiles(fs FileSet) error {
	if err := fs.Validate(); err != nil {
		return fmt.Errorf("setting files: %w", err)
	}

	c.files = fs

	return nil
}

// Files returns the queued files.
func (c *Client) Files() FileSet { return c.files }

// GenerateBranchName names the branch after the first
// queued file and today's date.
func (c *Client) GenerateBranchName(
	fileType string,
) (string, error) {
	return BranchName(c.files, fileType, time.Now())
}

// SyncLocalWithRemote checks out main and pulls it from
// the upstream remote.
func (c *Client) SyncLocalWithRemote(ctx context.Context) error {
	args := c.upstream + " " + DefaultPrimaryBranch

	steps := [][]string{
		{"checkout", DefaultPrimaryBranch},
		{"fetch", c.upstream},
		{"pull", c.upstream, DefaultPrimaryBranch},
	}

	for _, step := range steps {
		if err := c.git(ctx, OpPull, args, step...); err != nil {
			return err
		}
	}

	slog.Info("local main synced", "remote", c.upstream)

	return nil
}

// SyncForkWithRemote pushes main to the fork so it
// matches upstream.
func (c *Client) SyncForkWithRemote(ctx context.Context) error {
	if err := c.git(
		ctx, OpPush, c.fork+" "+DefaultPrimaryBranch,
		"push", c.fork, DefaultPrimaryBranch,
	); err != nil {
		return err
	}

	slog.Info("fork main synced", "remote", c.fork)

	return nil
}

// BranchExists reports whether the named local branch
// exists. Only the output of "branch --list" is
// matched; its exit status is ignored.
func (c *Client) BranchExists(
	ctx context.Context,
	name string,
) bool {
	out, _ := c.runner.Run( //nolint:errcheck // output decides
		ctx, c.dir, "git", "branch", "--list", name,
	)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))

		if line == name {
			return true
		}
	}

	return false
}

// CreateBranch creates and checks out a new branch. A
// branch that already exists is refused with
// ErrBranchExists before anything is checked out.
func (c *Client) CreateBranch(
	ctx context.Context,
	name string,
) error {
	if c.BranchExists(ctx, name) {
		return c.opError(
			OpCheckout, "-b "+name,
			fmt.Errorf("%w: %s", ErrBranchExists, name),
		)
	}

	if err := c.git(
		ctx, OpCheckout, "-b "+name,
		"checkout", "-b", name,
	); err != nil {
		return err
	}

	slog.Info("branch created", "branch", name)

	return nil
}

// AddLocalCommit copies every queued file into the
// working copy and stages it. A file that cannot be
// copied is logged and skipped; staging then finds no
// file and returns without error. A failing "git add"
// aborts the loop.
func (c *Client) AddLocalCommit(ctx context.Context) error {
	const errCtx = "staging files"

	if err := c.files.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if c.files.Len() == 0 {
		return fmt.Errorf("%s: %w", errCtx, ErrEmptyFileSet)
	}

	for i := 0; i < c.files.Len(); i++ {
		entry, err := c.files.At(i)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		targetDir := filepath.Join(c.dir, entry.Dir)
		target := filepath.Join(targetDir, entry.Name)

		if abs, absErr := filepath.Abs(target); absErr == nil {
			target = abs
		}

		c.copyFile(entry.Source, targetDir, target)

		if err := c.Add(ctx, target); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) copyFile(src, targetDir, target string) {
	if err := files.EnsureDir(targetDir); err != nil {
		slog.Error(
			"cannot create target directory",
			"dir", targetDir,
			"error", err,
		)

		return
	}

	changed, err := files.Copy(src, target)

	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Error("source file not found", "path", src)
	case err != nil:
		slog.Error(
			"cannot copy file",
			"src", src,
			"dst", target,
			"error", err,
		)
	case !changed:
		slog.Info("file unchanged", "path", target)
	default:
		slog.Info("file copied", "src", src, "dst", target)
	}
}

// Add stages path. A missing path or a directory is
// logged and skipped without error.
func (c *Client) Add(ctx context.Context, path string) error {
	switch {
	case !files.Exists(path):
		slog.Error("file to stage does not exist", "path", path)

		return nil
	case files.IsDir(path):
		slog.Error("refusing to stage a directory", "path", path)

		return nil
	}

	if err := c.git(ctx, OpAdd, path, "add", path); err != nil {
		return err
	}

	slog.Info("file staged", "path", path)

	return nil
}

// Commit records the staged changes with message.
func (c *Client) Commit(ctx context.Context, message string) error {
	if err := c.git(
		ctx, OpCommit, "-m "+message,
		"commit", "-m", message,
	); err != nil {
		return err
	}

	slog.Info("commit created")

	return nil
}

// PushToFork pushes branch to the fork remote and sets
// it as upstream. Branches are never pushed to the
// canonical remote.
func (c *Client) PushToFork(ctx context.Context, branch string) error {
	if err := c.git(
		ctx, OpPush, "-u "+c.fork+" "+branch,
		"push", "-u", c.fork, branch,
	); err != nil {
		return err
	}

	slog.Info("branch pushed", "remote", c.fork, "branch", branch)

	return nil
}

// CreatePullRequest opens pr with the configured
// Provider and returns its URL.
func (c *Client) CreatePullRequest(
	ctx context.Context,
	pr PullRequest,
) (string, error) {
	url, err := c.provider.CreatePR(ctx, pr)
	if err != nil {
		return "", c.opError(OpPRCreate, pr.String(), err)
	}

	slog.Info("pull request created", "url", url)

	return url, nil
}

// git runs one git command in the working copy and
// converts a failure into an *OpError tagged op.
func (c *Client) git(
	ctx context.Context,
	op Op,
	opArgs string,
	args ...string,
) error {
	if _, err := c.runner.Run(ctx, c.dir, "git", args...); err != nil {
		slog.Error(
			"git command failed",
			"op", string(op),
			"args", strings.Join(args, " "),
			"error", err,
		)

		return c.opError(op, opArgs, err)
	}

	return nil
}

func (c *Client) opError(op Op, args string, err error) *OpError {
	return &OpError{
		Client: c.identity + "@" + c.dir,
		Op:     op,
		Args:   args,
		Err:    err,
	}
}
