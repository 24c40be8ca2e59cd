// Package rag orchestrates retrieval-augmented generation: it assembles file
// and web-search context, merges both under the configured priority policy,
// builds the final prompt and streams the model's answer to the caller.
package rag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/Kurehiro/gpt-oss"
)

// Engine drives a single augmented generation pass. Loader and Ranker are
// optional; a nil collaborator simply leaves its context source empty.
type Engine struct {
	Loader    gptoss.FileLoader
	Ranker    gptoss.Ranker
	Generator gptoss.Generator
	Logger    *slog.Logger
}

// Answer runs one pass of the pipeline and streams the generated answer to
// out. Context assembly failures degrade to an empty context source; a
// generation failure is logged and surfaced as a single user-facing error
// line on out rather than returned. The returned error is non-nil only for
// invalid engine state or a write failure on out.
func (e *Engine) Answer(ctx context.Context, prompt string, cfg gptoss.Config, out io.Writer) error {
	if e.Generator == nil {
		return gptoss.Errorf(gptoss.EINVALID, "generator required")
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fileContext := e.fileContext(ctx, cfg, logger)
	searchContext := e.searchContext(ctx, prompt, cfg, logger)

	merged := gptoss.MergeContexts(fileContext, searchContext, cfg.FilePriority)
	final := gptoss.BuildPrompt(prompt, merged)

	logger.Info("prompt built",
		"prompt_chars", utf8.RuneCountInString(final),
		"file_context_chars", utf8.RuneCountInString(fileContext),
		"search_context_chars", utf8.RuneCountInString(searchContext),
	)

	err := e.Generator.Generate(ctx, final, func(delta string) error {
		_, werr := io.WriteString(out, delta)
		return werr
	})
	if err != nil {
		logger.Error("generation failed", "err", err)
		_, werr := fmt.Fprintf(out, "\n❌ エラーが発生しました: %s\n", gptoss.ErrorMessage(err))
		return werr
	}

	_, werr := io.WriteString(out, "\n")
	return werr
}

// fileContext loads and formats the configured context files.
func (e *Engine) fileContext(ctx context.Context, cfg gptoss.Config, logger *slog.Logger) string {
	if e.Loader == nil || len(cfg.InfoFiles) == 0 {
		return ""
	}

	infos, err := e.Loader.Load(ctx, cfg.InfoFiles)
	if err != nil {
		logger.Warn("context file loading aborted", "err", err)
	}
	if len(infos) == 0 {
		return ""
	}

	return gptoss.FormatFileContext(infos, cfg.MaxFileContext)
}

// searchContext decides whether the prompt needs web search, classifies the
// search type and formats the ranked results.
func (e *Engine) searchContext(ctx context.Context, prompt string, cfg gptoss.Config, logger *slog.Logger) string {
	if e.Ranker == nil || !cfg.WebSearch {
		return ""
	}

	needsSearch, typ := gptoss.ShouldSearch(prompt)
	if !needsSearch {
		return ""
	}
	logger.Info("web search triggered", "type", string(typ))

	results := e.Ranker.SearchAndRank(ctx, prompt, typ, cfg.MaxResults)
	if len(results) == 0 {
		return ""
	}

	return gptoss.FormatSearchContext(results, cfg.MaxSearchContext)
}
