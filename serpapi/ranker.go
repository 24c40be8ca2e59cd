package serpapi

import (
	"context"
	"log/slog"

	"github.com/Kurehiro/gpt-oss"
	"golang.org/x/time/rate"
)

// maxVariants bounds how many optimized query variants are searched.
const maxVariants = 3

// Ensure Ranker implements gptoss.Ranker at compile time.
var _ gptoss.Ranker = (*Ranker)(nil)

// Ranker merges searches across optimized query variants. Variants are
// issued strictly sequentially, throttled to one request per second.
type Ranker struct {
	searcher gptoss.Searcher
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithLimiter overrides the inter-variant rate limiter. Used in tests.
func WithLimiter(l *rate.Limiter) RankerOption {
	return func(r *Ranker) { r.limiter = l }
}

// WithRankerLogger sets the logger. Defaults to slog.Default().
func WithRankerLogger(logger *slog.Logger) RankerOption {
	return func(r *Ranker) { r.logger = logger }
}

// NewRanker creates a Ranker over the given searcher.
func NewRanker(searcher gptoss.Searcher, opts ...RankerOption) *Ranker {
	r := &Ranker{
		searcher: searcher,
		limiter:  rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// SearchAndRank optimizes query into variants, searches the first three with
// a fair share of maxResults each, decays scores by variant order, then
// deduplicates by URL (first occurrence wins), sorts by descending score and
// truncates to maxResults. A canceled context ends the variant loop early
// with whatever has been collected.
func (r *Ranker) SearchAndRank(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult {
	variants := gptoss.OptimizeQuery(query, typ)
	if len(variants) == 0 {
		return nil
	}

	share := maxResults/len(variants) + 3
	if len(variants) > maxVariants {
		variants = variants[:maxVariants]
	}

	var all []gptoss.SearchResult
	for i, variant := range variants {
		if err := r.limiter.Wait(ctx); err != nil {
			r.logger.Warn("variant search canceled", "variant", variant, "err", err)
			break
		}

		results := r.searcher.Search(ctx, variant, share, typ)

		// Later variants are weaker rewrites of the query.
		decay := 1.0 - 0.1*float64(i)
		for j := range results {
			results[j].Score *= decay
		}

		all = append(all, results...)
	}

	unique := gptoss.DedupResults(all)
	gptoss.SortResultsByScore(unique)
	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}
	return unique
}
