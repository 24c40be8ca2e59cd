package mock

import (
	"context"

	"github.com/Kurehiro/gpt-oss"
)

var _ gptoss.SearchCache = (*SearchCache)(nil)

// SearchCache is a mock implementation of gptoss.SearchCache.
type SearchCache struct {
	GetFn    func(ctx context.Context, key string) ([]gptoss.SearchResult, bool, error)
	PutFn    func(ctx context.Context, key string, results []gptoss.SearchResult) error
	ExpireFn func(ctx context.Context) error
}

func (c *SearchCache) Get(ctx context.Context, key string) ([]gptoss.SearchResult, bool, error) {
	return c.GetFn(ctx, key)
}

func (c *SearchCache) Put(ctx context.Context, key string, results []gptoss.SearchResult) error {
	return c.PutFn(ctx, key, results)
}

func (c *SearchCache) Expire(ctx context.Context) error {
	return c.ExpireFn(ctx)
}
