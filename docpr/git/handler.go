package git

import (
	"context"
	"log/slog"

	"github.com/byte4ever/docpr/docpr/exec"
)

// HandlerConfig holds the parameters of NewHandler.
type HandlerConfig struct {
	// Dir is the working copy the rollback runs in.
	Dir string
	// Runner executes git; exec.Shell{} when nil.
	Runner exec.Runner
	// Logger records the rollback outcome;
	// slog.Default() when nil.
	Logger *slog.Logger
}

// Handler applies the single corrective action known
// for a failed operation: a soft reset of the last
// commit when the commit step failed. Every other
// operation is left to the caller.
type Handler struct {
	dir    string
	runner exec.Runner
	log    *slog.Logger
}

// NewHandler returns a Handler acting on cfg.Dir.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Runner == nil {
		cfg.Runner = exec.Shell{}
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Handler{dir: cfg.Dir, runner: cfg.Runner, log: cfg.Logger}
}

// Handle inspects err and rolls back once when it is an
// *OpError for the commit step. It never fails; the
// rollback outcome is logged.
//
// A failed "git commit" normally creates no commit, so
// the reset may undo an earlier one.
func (h *Handler) Handle(ctx context.Context, err error) {
	oe, ok := AsOpError(err)
	if !ok || oe.Op != OpCommit {
		return
	}

	h.log.Warn("commit failed, rolling back", "args", oe.Args)

	if _, err := h.runner.Run(
		ctx, h.dir, "git", "reset", "--soft", "HEAD~1",
	); err != nil {
		h.log.Error(
			"rollback failed, reset manually",
			"dir", h.dir,
			"error", err,
		)

		return
	}

	h.log.Warn("rollback succeeded", "dir", h.dir)
}
