package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/byte4ever/docpr/docpr/exec"
)

// Pattern: Strategy -- swap how pull requests are
// opened without changing the submission logic.

// Provider opens pull requests and returns their URL.
type Provider interface {
	CreatePR(ctx context.Context, pr PullRequest) (string, error)
}

// DefaultCLI is the hosting tool binary used by
// CLIProvider when Bin is empty.
const DefaultCLI = "gh"

// CLIProvider opens pull requests with the hosting
// command-line tool, run inside the working copy.
type CLIProvider struct {
	// Dir is the working copy the tool runs in.
	Dir string
	// Bin overrides the tool binary; DefaultCLI when
	// empty.
	Bin string
	// Runner executes the tool.
	Runner exec.Runner
}

// CreatePR runs "pr create" and returns the trimmed
// standard output, which holds the pull request URL.
func (p CLIProvider) CreatePR(
	ctx context.Context,
	pr PullRequest,
) (string, error) {
	const errCtx = "creating pull request with cli"

	bin := p.Bin
	if bin == "" {
		bin = DefaultCLI
	}

	out, err := p.Runner.Run(
		ctx, p.Dir, bin,
		"pr", "create",
		"--repo", pr.Repo(),
		"--base", pr.Base(),
		"--head", pr.Head(),
		"--title", pr.Title(),
		"--body", pr.Body(),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return strings.TrimSpace(out), nil
}
