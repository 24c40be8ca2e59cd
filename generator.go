package gptoss

import "context"

// Generator streams a model completion for a prompt.
type Generator interface {
	// Generate issues a streaming generation request and calls emit for
	// each incremental text delta as it arrives. It returns when the
	// provider signals completion, the stream ends, or emit returns an
	// error (which cancels the stream and is returned unchanged).
	Generate(ctx context.Context, prompt string, emit func(delta string) error) error
}
