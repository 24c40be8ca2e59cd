package rag_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Kurehiro/gpt-oss"
	"github.com/Kurehiro/gpt-oss/mock"
	"github.com/Kurehiro/gpt-oss/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoGenerator records the prompt it was given and streams a fixed answer.
func echoGenerator(gotPrompt *string) *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(ctx context.Context, prompt string, emit func(delta string) error) error {
			*gotPrompt = prompt
			return emit("answer")
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_Answer(t *testing.T) {
	t.Parallel()

	t.Run("passes the prompt through verbatim without context", func(t *testing.T) {
		t.Parallel()

		var gotPrompt string
		engine := &rag.Engine{
			Generator: echoGenerator(&gotPrompt),
			Logger:    quietLogger(),
		}

		cfg := gptoss.DefaultConfig()
		cfg.WebSearch = false

		var out bytes.Buffer
		err := engine.Answer(context.Background(), "元の質問", cfg, &out)

		require.NoError(t, err)
		assert.Equal(t, "元の質問", gotPrompt)
		assert.Equal(t, "answer\n", out.String())
	})

	t.Run("news prompt triggers a news search", func(t *testing.T) {
		t.Parallel()

		var gotType gptoss.SearchType
		var gotMax int
		ranker := &mock.Ranker{
			SearchAndRankFn: func(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult {
				gotType = typ
				gotMax = maxResults
				return []gptoss.SearchResult{
					{Title: "headline", Content: "body", URL: "https://news.example.com", Score: 0.9},
				}
			},
		}

		var gotPrompt string
		engine := &rag.Engine{
			Ranker:    ranker,
			Generator: echoGenerator(&gotPrompt),
			Logger:    quietLogger(),
		}

		var out bytes.Buffer
		err := engine.Answer(context.Background(), "最新のニュースについて", gptoss.DefaultConfig(), &out)

		require.NoError(t, err)
		assert.Equal(t, gptoss.SearchTypeNews, gotType)
		assert.Equal(t, 15, gotMax)
		assert.Contains(t, gotPrompt, "=== Web検索情報 ===")
		assert.Contains(t, gotPrompt, "headline")
		assert.Contains(t, gotPrompt, "【質問】\n最新のニュースについて")
	})

	t.Run("no search without trigger keywords", func(t *testing.T) {
		t.Parallel()

		called := false
		ranker := &mock.Ranker{
			SearchAndRankFn: func(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult {
				called = true
				return nil
			},
		}

		var gotPrompt string
		engine := &rag.Engine{
			Ranker:    ranker,
			Generator: echoGenerator(&gotPrompt),
			Logger:    quietLogger(),
		}

		var out bytes.Buffer
		err := engine.Answer(context.Background(), "再帰とは何かを説明して", gptoss.DefaultConfig(), &out)

		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, "再帰とは何かを説明して", gotPrompt)
	})

	t.Run("web search disabled by config", func(t *testing.T) {
		t.Parallel()

		called := false
		ranker := &mock.Ranker{
			SearchAndRankFn: func(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult {
				called = true
				return nil
			},
		}

		var gotPrompt string
		engine := &rag.Engine{
			Ranker:    ranker,
			Generator: echoGenerator(&gotPrompt),
			Logger:    quietLogger(),
		}

		cfg := gptoss.DefaultConfig()
		cfg.WebSearch = false

		var out bytes.Buffer
		err := engine.Answer(context.Background(), "最新のニュースについて", cfg, &out)

		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("file context is included in the prompt", func(t *testing.T) {
		t.Parallel()

		loader := &mock.FileLoader{
			LoadFn: func(ctx context.Context, paths []string) ([]gptoss.FileInfo, error) {
				return []gptoss.FileInfo{
					{Path: "memo.txt", Content: "社内メモの内容", Size: 21, ModTime: time.Now()},
				}, nil
			},
		}

		var gotPrompt string
		engine := &rag.Engine{
			Loader:    loader,
			Generator: echoGenerator(&gotPrompt),
			Logger:    quietLogger(),
		}

		cfg := gptoss.DefaultConfig()
		cfg.WebSearch = false
		cfg.InfoFiles = []string{"memo.txt"}

		var out bytes.Buffer
		err := engine.Answer(context.Background(), "メモを要約して", cfg, &out)

		require.NoError(t, err)
		assert.Contains(t, gotPrompt, "=== 提供済み追加情報 ===")
		assert.Contains(t, gotPrompt, "社内メモの内容")
	})

	t.Run("low priority places search context before file context", func(t *testing.T) {
		t.Parallel()

		loader := &mock.FileLoader{
			LoadFn: func(ctx context.Context, paths []string) ([]gptoss.FileInfo, error) {
				return []gptoss.FileInfo{{Path: "memo.txt", Content: "file details", ModTime: time.Now()}}, nil
			},
		}
		ranker := &mock.Ranker{
			SearchAndRankFn: func(ctx context.Context, query string, typ gptoss.SearchType, maxResults int) []gptoss.SearchResult {
				return []gptoss.SearchResult{{Title: "headline", Content: "body", URL: "https://example.com", Score: 0.9}}
			},
		}

		var gotPrompt string
		engine := &rag.Engine{
			Loader:    loader,
			Ranker:    ranker,
			Generator: echoGenerator(&gotPrompt),
			Logger:    quietLogger(),
		}

		cfg := gptoss.DefaultConfig()
		cfg.InfoFiles = []string{"memo.txt"}
		cfg.FilePriority = gptoss.PriorityLow

		var out bytes.Buffer
		err := engine.Answer(context.Background(), "最新のニュースについて", cfg, &out)

		require.NoError(t, err)
		searchIdx := strings.Index(gotPrompt, "=== Web検索情報 ===")
		fileIdx := strings.Index(gotPrompt, "=== 提供済み追加情報 ===")
		require.GreaterOrEqual(t, searchIdx, 0)
		require.GreaterOrEqual(t, fileIdx, 0)
		assert.Less(t, searchIdx, fileIdx)
	})

	t.Run("generation failure surfaces one error line", func(t *testing.T) {
		t.Parallel()

		engine := &rag.Engine{
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, prompt string, emit func(delta string) error) error {
					return gptoss.Errorf(gptoss.EUNAVAILABLE, "generation request failed: connection refused")
				},
			},
			Logger: quietLogger(),
		}

		cfg := gptoss.DefaultConfig()
		cfg.WebSearch = false

		var out bytes.Buffer
		err := engine.Answer(context.Background(), "質問", cfg, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "❌ エラーが発生しました")
		assert.Equal(t, 1, strings.Count(out.String(), "❌"))
	})

	t.Run("requires a generator", func(t *testing.T) {
		t.Parallel()

		engine := &rag.Engine{Logger: quietLogger()}

		err := engine.Answer(context.Background(), "質問", gptoss.DefaultConfig(), io.Discard)

		require.Error(t, err)
		assert.Equal(t, gptoss.EINVALID, gptoss.ErrorCode(err))
	})
}
