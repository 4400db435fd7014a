package app

import (
	"log/slog"
	"os"

	"github.com/blackwell-systems/assetctl/internal/repo"
)

// slogAdapter satisfies repo.Logger with a standard slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }

// newLogger builds the CLI logger. Warnings and errors always surface;
// verbose mode lowers the threshold to debug.
func newLogger(verbose bool) repo.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &slogAdapter{l: slog.New(handler)}
}
