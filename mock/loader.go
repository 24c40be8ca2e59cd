package mock

import (
	"context"

	"github.com/Kurehiro/gpt-oss"
)

var _ gptoss.FileLoader = (*FileLoader)(nil)

// FileLoader is a mock implementation of gptoss.FileLoader.
type FileLoader struct {
	LoadFn func(ctx context.Context, paths []string) ([]gptoss.FileInfo, error)
}

func (l *FileLoader) Load(ctx context.Context, paths []string) ([]gptoss.FileInfo, error) {
	return l.LoadFn(ctx, paths)
}
