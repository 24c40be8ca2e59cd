package gptoss_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Kurehiro/gpt-oss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFileContext(t *testing.T) {
	t.Parallel()

	modTime := time.Date(2025, 8, 1, 12, 30, 0, 0, time.UTC)

	t.Run("returns empty string for no files", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gptoss.FormatFileContext(nil, 3000))
		assert.Empty(t, gptoss.FormatFileContext([]gptoss.FileInfo{}, 3000))
	})

	t.Run("renders header, file block and footer", func(t *testing.T) {
		t.Parallel()

		infos := []gptoss.FileInfo{
			{Path: "data/notes.txt", Content: "memo content", Size: 12, ModTime: modTime},
		}

		result := gptoss.FormatFileContext(infos, 3000)

		assert.Contains(t, result, "=== 提供済み追加情報 ===")
		assert.Contains(t, result, "ファイル 1: notes.txt")
		assert.Contains(t, result, "更新日時: 2025-08-01 12:30:00")
		assert.Contains(t, result, "ファイルサイズ: 12 bytes")
		assert.Contains(t, result, "memo content")
		assert.Contains(t, result, "=== 追加情報終了 ===")
	})

	t.Run("truncates oversized content with an ellipsis marker", func(t *testing.T) {
		t.Parallel()

		infos := []gptoss.FileInfo{
			{Path: "big.txt", Content: strings.Repeat("あ", 5000), Size: 15000, ModTime: modTime},
		}

		result := gptoss.FormatFileContext(infos, 1000)

		assert.Contains(t, result, "...(省略)")
		// Budget overflow is bounded by a single block's overhead.
		assert.LessOrEqual(t, len([]rune(result)), 1200)
	})

	t.Run("omits trailing files once the budget is exhausted", func(t *testing.T) {
		t.Parallel()

		infos := []gptoss.FileInfo{
			{Path: "a.txt", Content: strings.Repeat("x", 400), Size: 400, ModTime: modTime},
			{Path: "b.txt", Content: strings.Repeat("y", 400), Size: 400, ModTime: modTime},
			{Path: "c.txt", Content: strings.Repeat("z", 400), Size: 400, ModTime: modTime},
		}

		result := gptoss.FormatFileContext(infos, 600)

		assert.Contains(t, result, "ファイル省略)")
		assert.Contains(t, result, "=== 追加情報終了 ===")
	})
}

func TestFormatSearchContext(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for no results", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gptoss.FormatSearchContext(nil, 2000))
		assert.Empty(t, gptoss.FormatSearchContext([]gptoss.SearchResult{}, 2000))
	})

	t.Run("renders title, date, score and URL", func(t *testing.T) {
		t.Parallel()

		results := []gptoss.SearchResult{
			{
				Title:   "Go 1.25 Released",
				Content: "The latest Go release brings faster builds.",
				URL:     "https://go.dev/blog/go1.25",
				Score:   0.875,
				Date:    "2025-08-12",
			},
		}

		result := gptoss.FormatSearchContext(results, 2000)

		assert.Contains(t, result, "=== Web検索情報 ===")
		assert.Contains(t, result, "検索結果 1: Go 1.25 Released")
		assert.Contains(t, result, "日付: 2025-08-12")
		assert.Contains(t, result, "信頼度: 0.88")
		assert.Contains(t, result, "URL: https://go.dev/blog/go1.25")
		assert.Contains(t, result, "=== Web検索情報終了 ===")
	})

	t.Run("omits the date line when absent", func(t *testing.T) {
		t.Parallel()

		results := []gptoss.SearchResult{
			{Title: "t", Content: "c", URL: "https://example.com", Score: 0.5},
		}

		result := gptoss.FormatSearchContext(results, 2000)

		assert.NotContains(t, result, "日付:")
	})

	t.Run("truncates long content to 250 runes", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 300)
		results := []gptoss.SearchResult{
			{Title: "t", Content: long, URL: "https://example.com", Score: 0.5},
		}

		result := gptoss.FormatSearchContext(results, 5000)

		assert.Contains(t, result, strings.Repeat("a", 250))
		assert.NotContains(t, result, strings.Repeat("a", 251))
	})

	t.Run("omits trailing results once the budget is exhausted", func(t *testing.T) {
		t.Parallel()

		results := []gptoss.SearchResult{
			{Title: "first", Content: strings.Repeat("x", 200), URL: "https://a.example", Score: 0.9},
			{Title: "second", Content: strings.Repeat("y", 200), URL: "https://b.example", Score: 0.8},
			{Title: "third", Content: strings.Repeat("z", 200), URL: "https://c.example", Score: 0.7},
		}

		result := gptoss.FormatSearchContext(results, 400)

		assert.Contains(t, result, "件省略)")
		assert.Contains(t, result, "=== Web検索情報終了 ===")
	})
}

func TestMergeContexts(t *testing.T) {
	t.Parallel()

	t.Run("high priority places file context first", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "FILESEARCH", gptoss.MergeContexts("FILE", "SEARCH", gptoss.PriorityHigh))
	})

	t.Run("medium priority behaves like high", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "FILESEARCH", gptoss.MergeContexts("FILE", "SEARCH", gptoss.PriorityMedium))
	})

	t.Run("low priority places search context first", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "SEARCHFILE", gptoss.MergeContexts("FILE", "SEARCH", gptoss.PriorityLow))
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("returns the prompt verbatim when context is empty", func(t *testing.T) {
		t.Parallel()

		prompt := "Goのジェネリクスを説明してください"

		assert.Equal(t, prompt, gptoss.BuildPrompt(prompt, ""))
	})

	t.Run("wraps context, question and answer instructions", func(t *testing.T) {
		t.Parallel()

		result := gptoss.BuildPrompt("質問内容", "CONTEXT BLOCK")

		require.True(t, strings.HasPrefix(result, "CONTEXT BLOCK"))
		assert.Contains(t, result, "【質問】\n質問内容")
		assert.Contains(t, result, "【回答指示】")
		assert.True(t, strings.HasSuffix(result, "【回答】"))
	})
}
