// Command docpr contributes local documentation files to a GitHub
// repository. It copies the files into a local clone, syncs main with
// upstream, commits on a fresh branch, pushes to the operator's fork and
// opens a pull request.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/byte4ever/docpr/docpr/config"
	"github.com/byte4ever/docpr/docpr/exec"
	"github.com/byte4ever/docpr/docpr/git"
	"github.com/byte4ever/docpr/docpr/git/github"
	"github.com/byte4ever/docpr/docpr/logging"
	"github.com/byte4ever/docpr/docpr/prompt"
	"github.com/byte4ever/docpr/docpr/submit"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logFile    string
	fileType   string
	provider   string
	token      string
	enterprise string
	timeout    time.Duration
	debug      bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("docpr", pflag.ContinueOnError)

	fs.StringVar(
		&opts.configPath, "config", "config.yaml",
		"Configuration file, created on first run",
	)
	fs.StringVar(
		&opts.logFile, "log-file", logging.DefaultFile,
		"Append-only log file",
	)
	fs.StringVar(
		&opts.fileType, "file-type", git.DefaultFileType,
		"Prefix of the generated branch name",
	)
	fs.StringVar(
		&opts.provider, "provider", "gh",
		"How to open the pull request: gh or api",
	)
	fs.StringVar(
		&opts.token, "github-token", os.Getenv("GITHUB_TOKEN"),
		"GitHub token for --provider=api",
	)
	fs.StringVar(
		&opts.enterprise, "github-enterprise-host", "",
		"GitHub Enterprise hostname for --provider=api",
	)
	fs.DurationVar(
		&opts.timeout, "timeout", 0,
		"Timeout of each external command (0 for none)",
	)
	fs.BoolVar(
		&opts.debug, "debug", false,
		"Log command output",
	)

	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("parsing flags: %w", err)
	}

	return opts, nil
}

// run logs its own failures, except a failed submission
// which submit.Run has already logged.
func run(args []string) (err error) {
	const errCtx = "running docpr"

	opts, err := parseFlags(args)
	if err != nil {
		// pflag has already printed the error and usage.
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}

	closer, err := logging.Setup(logging.Options{
		File:  opts.logFile,
		Level: level,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", errCtx, err) //nolint:errcheck // stderr

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer closer.Close() //nolint:errcheck // best-effort close

	reported := false

	defer func() {
		if err != nil && !reported {
			slog.Error("fatal", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt,
	)
	defer stop()

	asker := prompt.NewConsole(os.Stdin, os.Stdout)

	loaded, err := config.Load(ctx, opts.configPath, asker)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg := loaded.WithDefaults()
	runner := exec.Shell{Timeout: opts.timeout}

	provider, err := newProvider(opts, cfg.LocalRepoPath, runner)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	client, err := git.NewClient(git.ClientConfig{
		Identity:       cfg.GithubUsername,
		Dir:            cfg.LocalRepoPath,
		UpstreamRemote: cfg.UpstreamRemote,
		ForkRemote:     cfg.ForkRemote,
		Runner:         runner,
		Provider:       provider,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	handler := git.NewHandler(git.HandlerConfig{
		Dir:    cfg.LocalRepoPath,
		Runner: runner,
	})

	if _, err := submit.Run(ctx, submit.Config{
		Identity:   cfg.GithubUsername,
		TargetRepo: cfg.TargetRepo,
		FileType:   opts.fileType,
		Client:     client,
		Handler:    handler,
		Asker:      asker,
		Out:        os.Stdout,
	}); err != nil {
		reported = true

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// newProvider selects how pull requests are opened.
// Pattern: Factory -- selects the implementation at
// runtime.
func newProvider(
	opts options,
	dir string,
	runner exec.Runner,
) (git.Provider, error) {
	const errCtx = "creating pull request provider"

	switch opts.provider {
	case "gh":
		return git.CLIProvider{Dir: dir, Runner: runner}, nil

	case "api":
		p, err := github.NewProvider(github.Config{
			AccessToken:    opts.token,
			EnterpriseHost: opts.enterprise,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return p, nil

	default:
		return nil, fmt.Errorf(
			"%s: unknown provider %q", errCtx, opts.provider,
		)
	}
}
