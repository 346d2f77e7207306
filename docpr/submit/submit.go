package submit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/byte4ever/docpr/docpr/commitmsg"
	"github.com/byte4ever/docpr/docpr/git"
	"github.com/byte4ever/docpr/docpr/prompt"
)

// Questions asked during a submission.
const (
	SourceQuestion   = "Path of the file to submit:"
	DirQuestion      = "Target directory, relative to the repository root:"
	NameQuestion     = "File name to use in the target directory:"
	ContinueQuestion = "Add another file? (y/n):"
	CommitQuestion   = `Commit message, e.g. "docs: Add X documentation for Y feature":`
	TitleQuestion    = "Pull request title:"
	BodyQuestion     = "Pull request description:"
)

// Client is the version-control client driven through
// the submission. *git.Client implements it.
type Client interface {
	SetFiles(fs git.FileSet) error
	Files() git.FileSet
	SyncLocalWithRemote(ctx context.Context) error
	SyncForkWithRemote(ctx context.Context) error
	CreateBranch(ctx context.Context, name string) error
	AddLocalCommit(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	PushToFork(ctx context.Context, branch string) error
	CreatePullRequest(
		ctx context.Context,
		pr git.PullRequest,
	) (string, error)
}

// ErrorHandler reacts to a failed operation. *git.Handler
// implements it.
type ErrorHandler interface {
	Handle(ctx context.Context, err error)
}

// Config holds all collaborators of a submission. Use a
// Config struct instead of many arguments.
type Config struct {
	// Identity is the operator's hosting username,
	// used as owner of the head reference.
	Identity string

	// TargetRepo is the "owner/name" repository the
	// pull request is opened against.
	TargetRepo string

	// BaseBranch is the branch merged into; "main"
	// when empty.
	BaseBranch string

	// FileType prefixes the branch name; "doc" when
	// empty.
	FileType string

	// Client runs the version-control steps.
	Client Client

	// Handler receives operation errors; may be nil.
	Handler ErrorHandler

	// Asker collects operator input.
	Asker prompt.Asker

	// Out receives the pull request URL; io.Discard
	// when nil.
	Out io.Writer

	// Logger records progress; slog.Default() when
	// nil.
	Logger *slog.Logger

	// Now returns the branch date; time.Now when nil.
	Now func() time.Time
}

// Result reports how far a submission went.
type Result struct {
	// State is StateDone on success, StateFailed
	// otherwise.
	State State
	// FailedAt is the state that failed. Meaningful
	// only when State is StateFailed.
	FailedAt State
	// Branch is the generated branch name, if any.
	Branch string
	// URL is the created pull request URL.
	URL string
}

type submission struct {
	cfg    Config
	log    *slog.Logger
	result Result
}

// Run executes one submission attempt. Every error,
// including a panic in a collaborator, ends the attempt
// in StateFailed and is returned after being logged.
func Run(ctx context.Context, cfg Config) (res Result, err error) {
	const errCtx = "submitting documentation"

	sub := newSubmission(cfg)

	steps := []struct {
		state State
		run   func(context.Context) error
	}{
		{StateCollecting, sub.collect},
		{StateSyncing, sub.sync},
		{StateBranching, sub.branch},
		{StateStaging, sub.stage},
		{StateCommitting, sub.commit},
		{StatePushing, sub.push},
		{StateOpeningPR, sub.openPR},
	}

	current := StateCollecting

	defer func() {
		if rec := recover(); rec != nil {
			res, err = sub.fail(
				ctx, current,
				fmt.Errorf("%s: panic: %v", errCtx, rec),
			)
		}
	}()

	for _, step := range steps {
		current = step.state

		sub.log.Info("entering state", "state", step.state.String())

		if stepErr := step.run(ctx); stepErr != nil {
			return sub.fail(
				ctx, step.state,
				fmt.Errorf("%s: %s: %w", errCtx, step.state, stepErr),
			)
		}
	}

	sub.result.State = StateDone
	sub.log.Info(
		"submission succeeded",
		"branch", sub.result.Branch,
		"url", sub.result.URL,
	)

	return sub.result, nil
}

func newSubmission(cfg Config) *submission {
	if cfg.BaseBranch == "" {
		cfg.BaseBranch = git.DefaultPrimaryBranch
	}

	if cfg.FileType == "" {
		cfg.FileType = git.DefaultFileType
	}

	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &submission{cfg: cfg, log: cfg.Logger}
}

// fail moves the submission to StateFailed, logs err
// and passes operation errors to the handler.
func (s *submission) fail(
	ctx context.Context,
	at State,
	err error,
) (Result, error) {
	s.result.State = StateFailed
	s.result.FailedAt = at

	s.log.Error(
		"submission failed",
		"state", at.String(),
		"error", err,
	)

	if oe, ok := git.AsOpError(err); ok {
		s.log.Error(
			"operation error",
			"op", string(oe.Op),
			"args", oe.Args,
			"client", oe.Client,
		)

		if s.cfg.Handler != nil {
			s.cfg.Handler.Handle(ctx, oe)
		}
	}

	return s.result, err
}

func (s *submission) collect(ctx context.Context) error {
	fs, err := collectFiles(ctx, s.cfg.Asker)
	if err != nil {
		return err
	}

	s.log.Info("files queued", "count", fs.Len())

	return s.cfg.Client.SetFiles(fs)
}

// collectFiles asks for (source, directory, name)
// triples until the operator declines to continue. The
// first triple is always asked for.
func collectFiles(
	ctx context.Context,
	asker prompt.Asker,
) (git.FileSet, error) {
	var fs git.FileSet

	for first := true; ; first = false {
		if !first {
			more, err := prompt.Confirm(ctx, asker, ContinueQuestion)
			if err != nil {
				return git.FileSet{}, err
			}

			if !more {
				return fs, nil
			}
		}

		src, err := asker.Ask(ctx, SourceQuestion)
		if err != nil {
			return git.FileSet{}, err
		}

		dir, err := asker.Ask(ctx, DirQuestion)
		if err != nil {
			return git.FileSet{}, err
		}

		name, err := askName(ctx, asker)
		if err != nil {
			return git.FileSet{}, err
		}

		fs.Append(src, dir, name)
	}
}

// askName repeats NameQuestion until the answer is not
// blank.
func askName(ctx context.Context, asker prompt.Asker) (string, error) {
	for {
		name, err := asker.Ask(ctx, NameQuestion)
		if err != nil {
			return "", err
		}

		if name = strings.TrimSpace(name); name != "" {
			return name, nil
		}
	}
}

func (s *submission) sync(ctx context.Context) error {
	if err := s.cfg.Client.SyncLocalWithRemote(ctx); err != nil {
		return err
	}

	return s.cfg.Client.SyncForkWithRemote(ctx)
}

func (s *submission) branch(ctx context.Context) error {
	name, err := git.BranchName(
		s.cfg.Client.Files(), s.cfg.FileType, s.cfg.Now(),
	)
	if err != nil {
		return err
	}

	if err := s.cfg.Client.CreateBranch(ctx, name); err != nil {
		return err
	}

	s.result.Branch = name

	return nil
}

func (s *submission) stage(ctx context.Context) error {
	return s.cfg.Client.AddLocalCommit(ctx)
}

func (s *submission) commit(ctx context.Context) error {
	msg, err := s.cfg.Asker.Ask(ctx, CommitQuestion)
	if err != nil {
		return err
	}

	if !commitmsg.IsDocs(msg) {
		s.log.Warn(
			"commit message does not follow the docs convention",
			"message", msg,
		)
	}

	return s.cfg.Client.Commit(ctx, msg)
}

func (s *submission) push(ctx context.Context) error {
	return s.cfg.Client.PushToFork(ctx, s.result.Branch)
}

func (s *submission) openPR(ctx context.Context) error {
	title, err := s.cfg.Asker.Ask(ctx, TitleQuestion)
	if err != nil {
		return err
	}

	body, err := s.cfg.Asker.Ask(ctx, BodyQuestion)
	if err != nil {
		return err
	}

	pr := git.NewPullRequest(
		s.cfg.TargetRepo,
		s.cfg.BaseBranch,
		git.HeadRef(s.cfg.Identity, s.result.Branch),
		title,
		body,
	)

	url, err := s.cfg.Client.CreatePullRequest(ctx, pr)
	if err != nil {
		return err
	}

	s.result.URL = url

	if _, err := fmt.Fprintf(
		s.cfg.Out, "New pull request: %s\n", url,
	); err != nil {
		s.log.Warn("cannot print pull request url", "error", err)
	}

	return nil
}
