package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kurehiro/gpt-oss"
)

// Ensure LoggingLoader implements gptoss.FileLoader at compile time.
var _ gptoss.FileLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a FileLoader with file count and duration logging.
type LoggingLoader struct {
	next   gptoss.FileLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next gptoss.FileLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the outcome.
func (l *LoggingLoader) Load(ctx context.Context, paths []string) ([]gptoss.FileInfo, error) {
	begin := time.Now()
	infos, err := l.next.Load(ctx, paths)
	if err != nil {
		l.logger.Error("load context files", "requested", len(paths), "err", err)
		return infos, err
	}
	l.logger.Info("load context files",
		"requested", len(paths),
		"loaded", len(infos),
		"duration", time.Since(begin),
	)
	return infos, err
}
