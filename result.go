package gptoss

import (
	"context"
	"sort"
)

// SearchType classifies a search request and selects the provider mode and
// query modifiers used for it.
type SearchType string

// SearchType constants in classification priority order.
const (
	SearchTypeNews      SearchType = "news"
	SearchTypeAcademic  SearchType = "academic"
	SearchTypeOfficial  SearchType = "official"
	SearchTypeTechnical SearchType = "technical"
	SearchTypeGeneral   SearchType = "general"
	SearchTypeImage     SearchType = "image"
)

// SearchResult represents a single ranked web-search result.
// Results are immutable after parsing except for score adjustment while
// merging multi-variant result sets.
type SearchResult struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	URL     string            `json:"url"`
	Source  string            `json:"source"`
	Score   float64           `json:"score"`
	Date    string            `json:"date,omitempty"`
	Snippet string            `json:"snippet,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Searcher executes a single web search.
type Searcher interface {
	// Search returns provider results for query, scored and ordered by
	// descending relevance. Transport failures yield an empty slice, not
	// an error; the caller proceeds without web context.
	Search(ctx context.Context, query string, count int, typ SearchType) []SearchResult
}

// Ranker merges searches across optimized query variants into a single
// deduplicated, relevance-ordered result list.
type Ranker interface {
	// SearchAndRank returns at most maxResults results sorted by
	// non-increasing score. A failing variant is skipped, not fatal.
	SearchAndRank(ctx context.Context, query string, typ SearchType, maxResults int) []SearchResult
}

// SearchCache stores search result lists keyed by query signature.
// Entries expire after the implementation's TTL.
type SearchCache interface {
	// Get returns the cached results for key, or ok=false on a miss or
	// an expired entry.
	Get(ctx context.Context, key string) (results []SearchResult, ok bool, err error)

	// Put stores results under key, replacing any previous entry.
	Put(ctx context.Context, key string, results []SearchResult) error

	// Expire removes all entries older than the TTL relative to now.
	Expire(ctx context.Context) error
}

// DedupResults removes results sharing a URL, keeping the first occurrence.
func DedupResults(results []SearchResult) []SearchResult {
	seen := make(map[string]struct{}, len(results))
	unique := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

// SortResultsByScore orders results by descending score. The sort is stable:
// ties retain their original relative order.
func SortResultsByScore(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
