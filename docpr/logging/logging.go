// Package logging installs the process-wide slog logger: a console handler
// echoing every record and an append-only log file kept by lumberjack.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile is the log file used when Options.File
// is empty.
const DefaultFile = "docpr.log"

// Options configures Setup.
type Options struct {
	// File is the log file path. DefaultFile when
	// empty.
	File string
	// Console receives the echo; os.Stderr when nil.
	Console io.Writer
	// Level is the minimum level for both sinks.
	Level slog.Level
	// MaxSizeMB rotates the file past this size.
	// Zero keeps lumberjack's default.
	MaxSizeMB int
}

// New builds a logger for opts and returns it with the
// closer of the file sink.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	const errCtx = "setting up logging"

	if opts.File == "" {
		opts.File = DefaultFile
	}

	if opts.Console == nil {
		opts.Console = os.Stderr
	}

	if dir := filepath.Dir(opts.File); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf(
				"%s: create log directory: %w", errCtx, err,
			)
		}
	}

	sink := newSink(opts)

	hopts := &slog.HandlerOptions{Level: opts.Level}

	logger := slog.New(&fanout{handlers: []slog.Handler{
		slog.NewTextHandler(opts.Console, hopts),
		slog.NewTextHandler(sink, hopts),
	}})

	return logger, sink, nil
}

// newSink returns the file sink. Rotated files are
// never pruned so the log stays append-only.
func newSink(opts Options) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename: opts.File,
		MaxSize:  opts.MaxSizeMB,
	}
}

// Setup builds a logger with New and installs it as the
// slog default.
func Setup(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)

	return closer, nil
}

// fanout sends every record to all handlers.
type fanout struct {
	handlers []slog.Handler
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (f *fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}

		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithAttrs(attrs)
	}

	return &fanout{handlers: hs}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithGroup(name)
	}

	return &fanout{handlers: hs}
}
