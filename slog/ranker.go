// Package slog provides logging decorators for the gptoss interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kurehiro/gpt-oss"
)

// Ensure LoggingRanker implements gptoss.Ranker at compile time.
var _ gptoss.Ranker = (*LoggingRanker)(nil)

// LoggingRanker wraps a Ranker with result count and duration logging.
type LoggingRanker struct {
	next   gptoss.Ranker
	logger *slog.Logger
}

// NewLoggingRanker creates a new LoggingRanker.
func NewLoggingRanker(next gptoss.Ranker, logger *slog.Logger) *LoggingRanker {
	return &LoggingRanker{next: next, logger: logger}
}

// SearchAndRank delegates to the wrapped ranker and logs the outcome.
func (r *LoggingRanker) SearchAndRank(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult {
	begin := time.Now()
	results := r.next.SearchAndRank(ctx, query, typ, maxResults)
	r.logger.Info("search and rank",
		"type", string(typ),
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results
}
