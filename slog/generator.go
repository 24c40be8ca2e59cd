package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/Kurehiro/gpt-oss"
)

// Ensure LoggingGenerator implements gptoss.Generator at compile time.
var _ gptoss.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with prompt size, streamed output size
// and duration logging.
type LoggingGenerator struct {
	next   gptoss.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next gptoss.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the outcome.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string, emit func(delta string) error) error {
	begin := time.Now()
	streamed := 0

	err := g.next.Generate(ctx, prompt, func(delta string) error {
		streamed += utf8.RuneCountInString(delta)
		return emit(delta)
	})

	if err != nil {
		g.logger.Error("generate",
			"prompt_chars", utf8.RuneCountInString(prompt),
			"duration", time.Since(begin),
			"err", err,
		)
		return err
	}

	g.logger.Info("generate",
		"prompt_chars", utf8.RuneCountInString(prompt),
		"streamed_chars", streamed,
		"duration", time.Since(begin),
	)
	return nil
}
