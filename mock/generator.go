package mock

import (
	"context"

	"github.com/Kurehiro/gpt-oss"
)

var _ gptoss.Generator = (*Generator)(nil)

// Generator is a mock implementation of gptoss.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string, emit func(delta string) error) error
}

func (g *Generator) Generate(ctx context.Context, prompt string, emit func(delta string) error) error {
	return g.GenerateFn(ctx, prompt, emit)
}
