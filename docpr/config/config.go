package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/docpr/docpr/prompt"
)

// Defaults for the optional keys.
const (
	DefaultUpstreamRemote = "upstream"
	DefaultForkRemote     = "origin"
	DefaultTargetRepo     = "apache/cloudberry-site"
)

// Questions asked when the file must be recreated.
const (
	UsernameQuestion = "GitHub username:"
	RepoPathQuestion = "Local repository path:"
)

// ErrEmptyValue is returned when the operator gives an
// empty answer for a required key.
var ErrEmptyValue = errors.New("value must not be empty")

// Config is the content of the configuration file.
type Config struct {
	// GithubUsername is the operator's identity on
	// the hosting platform.
	GithubUsername string `yaml:"github_username"`
	// LocalRepoPath is the cloned working copy.
	LocalRepoPath string `yaml:"local_repo_path"`
	// UpstreamRemote is the canonical remote name.
	UpstreamRemote string `yaml:"upstream_remote,omitempty"`
	// ForkRemote is the operator's remote name.
	ForkRemote string `yaml:"fork_remote,omitempty"`
	// TargetRepo is the "owner/name" repository pull
	// requests are opened against.
	TargetRepo string `yaml:"target_repo,omitempty"`
}

// Complete reports whether both required keys are set.
func (c Config) Complete() bool {
	return c.GithubUsername != "" && c.LocalRepoPath != ""
}

// WithDefaults returns a copy with unset optional keys
// filled in.
func (c Config) WithDefaults() Config {
	if c.UpstreamRemote == "" {
		c.UpstreamRemote = DefaultUpstreamRemote
	}

	if c.ForkRemote == "" {
		c.ForkRemote = DefaultForkRemote
	}

	if c.TargetRepo == "" {
		c.TargetRepo = DefaultTargetRepo
	}

	return c
}

// Load reads the configuration at path. When the file
// is absent or a required key is null or missing, the
// operator is asked for both required values and the
// file is rewritten in full. Content that is not the
// expected mapping is an error.
func Load(
	ctx context.Context,
	path string,
	asker prompt.Asker,
) (*Config, error) {
	const errCtx = "loading config"

	slog.Info("loading config", "path", path)

	cfg, err := read(path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("config file missing, recreating", "path", path)

		cfg = &Config{}
	case err != nil:
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	case !cfg.Complete():
		slog.Warn("config file incomplete, recreating", "path", path)
	default:
		slog.Info("config loaded")

		return cfg, nil
	}

	if err := ask(ctx, asker, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info("config saved", "path", path)

	return cfg, nil
}

// Save writes cfg to path, replacing the file.
func Save(path string, cfg *Config) error {
	const errCtx = "saving config"

	by, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile(path, by, 0o600); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func read(path string) (*Config, error) {
	const errCtx = "reading config"

	by, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(by), yaml.Strict())

	err = dec.Decode(&cfg)
	if errors.Is(err, io.EOF) {
		return &cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return &cfg, nil
}

func ask(ctx context.Context, asker prompt.Asker, cfg *Config) error {
	username, err := askValue(ctx, asker, UsernameQuestion)
	if err != nil {
		return err
	}

	repoPath, err := askValue(ctx, asker, RepoPathQuestion)
	if err != nil {
		return err
	}

	cfg.GithubUsername = username
	cfg.LocalRepoPath = repoPath

	return nil
}

func askValue(
	ctx context.Context,
	asker prompt.Asker,
	question string,
) (string, error) {
	answer, err := asker.Ask(ctx, question)
	if err != nil {
		return "", fmt.Errorf("asking %q: %w", question, err)
	}

	if answer == "" {
		return "", fmt.Errorf("%q: %w", question, ErrEmptyValue)
	}

	return answer, nil
}
