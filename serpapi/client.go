// Package serpapi implements web search against the SerpAPI Google endpoint,
// with relevance scoring, query-signature caching and multi-variant ranking.
package serpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Kurehiro/gpt-oss"
)

// DefaultBaseURL is the SerpAPI search endpoint.
const DefaultBaseURL = "https://serpapi.com/search"

// DefaultTimeout is the per-request timeout for search requests.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements gptoss.Searcher at compile time.
var _ gptoss.Searcher = (*Client)(nil)

// Client executes Google searches through SerpAPI. Results are scored,
// ordered by descending relevance and cached by query signature.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   gptoss.SearchCache
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the SerpAPI endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client, e.g. to change the timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithCache sets the search cache. Defaults to an in-memory cache with a
// one hour TTL.
func WithCache(cache gptoss.SearchCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a search client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.cache == nil {
		c.cache = NewMemoryCache(DefaultTTL)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// searchResponse is the subset of the SerpAPI payload the client consumes.
type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	NewsResults    []newsResult    `json:"news_results"`
}

type organicResult struct {
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	Link     string `json:"link"`
	Position int    `json:"position"`
}

type newsResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// Search executes one web search. Transport failures and non-2xx responses
// are logged and yield an empty result list; they never propagate. Cached
// results are returned without network I/O while their TTL holds.
func (c *Client) Search(ctx context.Context, query string, count int, typ gptoss.SearchType) []gptoss.SearchResult {
	key := CacheKey(query, count, typ)
	if cached, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("search cache read failed", "err", err)
	} else if ok {
		c.logger.Info("search cache hit", "query", clip(query, 50))
		return cached
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(min(count, 20)))
	params.Set("hl", "ja")
	params.Set("gl", "jp")
	params.Set("safe", "active")

	switch typ {
	case gptoss.SearchTypeNews:
		params.Set("tbm", "nws")
	case gptoss.SearchTypeImage:
		params.Set("tbm", "isch")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Error("search request build failed", "err", err)
		return nil
	}

	c.logger.Info("search", "query", clip(query, 50), "type", string(typ))

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("search failed", "query", clip(query, 50), "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("search failed", "query", clip(query, 50), "status", resp.StatusCode)
		return nil
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("search response parse failed", "err", err)
		return nil
	}

	results := parseResults(&payload, query)

	if err := c.cache.Put(ctx, key, results); err != nil {
		c.logger.Warn("search cache write failed", "err", err)
	}

	c.logger.Info("search done", "query", clip(query, 50), "results", len(results))
	return results
}

// parseResults converts the provider payload into scored, ordered results.
// Organic and news arrays are parsed independently; news items carry a flat
// +0.1 bonus applied after the organic score clamp, so a news score may
// exceed 1.0 by up to 0.1.
func parseResults(payload *searchResponse, query string) []gptoss.SearchResult {
	results := make([]gptoss.SearchResult, 0, len(payload.OrganicResults)+len(payload.NewsResults))

	for _, item := range payload.OrganicResults {
		position := item.Position
		if position == 0 {
			position = defaultPosition
		}
		r := gptoss.SearchResult{
			Title:   item.Title,
			Content: item.Snippet,
			URL:     item.Link,
			Source:  "Google Search",
			Snippet: item.Snippet,
			Meta: map[string]string{
				"position": strconv.Itoa(position),
				"domain":   hostOf(item.Link),
			},
		}
		r.Score = Relevance(r, query)
		results = append(results, r)
	}

	for _, item := range payload.NewsResults {
		r := gptoss.SearchResult{
			Title:   item.Title,
			Content: item.Snippet,
			URL:     item.Link,
			Source:  "Google News",
			Date:    item.Date,
			Snippet: item.Snippet,
			Meta: map[string]string{
				"source_name": item.Source,
				"is_news":     "true",
			},
		}
		r.Score = Relevance(r, query) + newsBonus
		results = append(results, r)
	}

	gptoss.SortResultsByScore(results)
	return results
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
