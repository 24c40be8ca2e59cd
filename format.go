package gptoss

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Formatting lengths are measured in runes, not bytes: context budgets must
// hold for Japanese text as well as ASCII.

// FormatFileContext renders loaded files as a bounded context block. Blocks
// are emitted per file until the next block would exceed maxLength; the
// remainder is replaced by an omission marker. Returns "" for no files.
func FormatFileContext(infos []FileInfo, maxLength int) string {
	if len(infos) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n=== 提供済み追加情報 ===\n")
	current := runeLen(b.String())

	for i, info := range infos {
		header := fmt.Sprintf("📄 ファイル %d: %s\n", i+1, filepath.Base(info.Path))
		header += fmt.Sprintf("   更新日時: %s\n", info.ModTime.Format("2006-01-02 15:04:05"))
		header += fmt.Sprintf("   ファイルサイズ: %d bytes\n", info.Size)
		header += "   内容:\n"

		// Reserve room for the header plus a fixed safety margin; fall
		// back to a hard 200-rune preview when nothing remains.
		remaining := maxLength - current - runeLen(header) - 100
		var preview string
		if remaining > 0 {
			preview = truncateRunes(info.Content, remaining)
			if runeLen(info.Content) > remaining {
				preview += "...(省略)"
			}
		} else {
			preview = truncateRunes(info.Content, 200) + "...(省略)"
		}

		block := header + preview + "\n\n"
		if current+runeLen(block) > maxLength {
			fmt.Fprintf(&b, "... (他 %d ファイル省略)\n", len(infos)-i)
			break
		}

		b.WriteString(block)
		current += runeLen(block)
	}

	b.WriteString("=== 追加情報終了 ===\n\n")
	return b.String()
}

// FormatSearchContext renders ranked search results as a bounded context
// block using the same incremental budget and omission marker policy as
// FormatFileContext. Returns "" for no results.
func FormatSearchContext(results []SearchResult, maxLength int) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n=== Web検索情報 ===\n")
	fmt.Fprintf(&b, "検索日時: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	current := runeLen(b.String())

	for i, result := range results {
		block := fmt.Sprintf("🔍 検索結果 %d: %s\n", i+1, result.Title)
		if result.Date != "" {
			block += fmt.Sprintf("   日付: %s\n", result.Date)
		}
		block += fmt.Sprintf("   内容: %s\n", truncateRunes(result.Content, 250))
		block += fmt.Sprintf("   信頼度: %.2f\n", result.Score)
		block += fmt.Sprintf("   URL: %s\n\n", result.URL)

		if current+runeLen(block) > maxLength {
			fmt.Fprintf(&b, "... (他 %d 件省略)\n", len(results)-i)
			break
		}

		b.WriteString(block)
		current += runeLen(block)
	}

	b.WriteString("=== Web検索情報終了 ===\n\n")
	return b.String()
}

// MergeContexts orders the two context blocks by file priority. High and
// medium both place file context first; low places search context first.
func MergeContexts(fileContext, searchContext string, priority Priority) string {
	if priority == PriorityLow {
		return searchContext + fileContext
	}
	return fileContext + searchContext
}

// BuildPrompt wraps the merged context and the original question into the
// final prompt. An empty context returns the prompt verbatim.
func BuildPrompt(prompt, context string) string {
	if context == "" {
		return prompt
	}

	return context + `

上記の情報を参考にして、以下の質問に詳しく回答してください。

【質問】
` + prompt + `

【回答指示】
- 提供された追加情報とWeb検索結果を活用してください
- 具体的で実用的な回答を提供してください
- 情報源がある場合は適切に参照してください
- 回答を途中で止めず、完全な内容を提供してください
- 最後に要点をまとめてください

【回答】`
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
