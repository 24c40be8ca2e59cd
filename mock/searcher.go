package mock

import (
	"context"

	"github.com/Kurehiro/gpt-oss"
)

var _ gptoss.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of gptoss.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, count int, typ gptoss.SearchType) []gptoss.SearchResult
}

func (s *Searcher) Search(ctx context.Context, query string, count int, typ gptoss.SearchType) []gptoss.SearchResult {
	return s.SearchFn(ctx, query, count, typ)
}

var _ gptoss.Ranker = (*Ranker)(nil)

// Ranker is a mock implementation of gptoss.Ranker.
type Ranker struct {
	SearchAndRankFn func(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult
}

func (r *Ranker) SearchAndRank(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult {
	return r.SearchAndRankFn(ctx, query, typ, maxResults)
}
