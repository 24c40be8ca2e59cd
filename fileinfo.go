package gptoss

import (
	"context"
	"time"
)

// FileInfo represents the decoded contents of one user-supplied context file.
type FileInfo struct {
	Path     string    `json:"path"`
	Content  string    `json:"content"`
	Encoding string    `json:"encoding"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"modTime"`
}

// FileLoader loads user-supplied context files.
type FileLoader interface {
	// Load reads the given paths and returns the files that could be
	// loaded. Missing files, unsupported extensions and undecodable
	// contents are skipped per file; loading continues with the rest.
	Load(ctx context.Context, paths []string) ([]FileInfo, error)
}
