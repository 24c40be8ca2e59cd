// Package fs provides filesystem-based loading of user-supplied context
// files, with automatic detection of common Japanese text encodings.
package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Kurehiro/gpt-oss"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// supportedExtensions lists the plain-text formats the loader accepts.
var supportedExtensions = map[string]struct{}{
	".txt":  {},
	".md":   {},
	".json": {},
	".csv":  {},
	".log":  {},
}

// encodings are probed in order when a file is not valid UTF-8.
// ShiftJIS also covers CP932-encoded files.
var encodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"shift_jis", japanese.ShiftJIS},
	{"euc-jp", japanese.EUCJP},
	{"iso-2022-jp", japanese.ISO2022JP},
}

// Ensure Loader implements gptoss.FileLoader at compile time.
var _ gptoss.FileLoader = (*Loader)(nil)

// Loader reads context files from the local filesystem. Every failure is
// per file: unreadable or unsupported files are logged and skipped, and
// loading continues with the remaining paths.
type Loader struct {
	baseDir string
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader that resolves relative paths against baseDir.
func NewLoader(baseDir string, opts ...Option) *Loader {
	l := &Loader{baseDir: baseDir}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load reads the given paths and returns the successfully loaded files.
// It returns an error only when the context is canceled.
func (l *Loader) Load(ctx context.Context, paths []string) ([]gptoss.FileInfo, error) {
	infos := make([]gptoss.FileInfo, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return infos, err
		}

		info, ok := l.loadFile(path)
		if !ok {
			continue
		}
		infos = append(infos, info)
		l.logger.Info("loaded context file", "path", path, "chars", utf8.RuneCountInString(info.Content), "encoding", info.Encoding)
	}

	return infos, nil
}

func (l *Loader) loadFile(path string) (gptoss.FileInfo, bool) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}

	stat, err := os.Stat(path)
	if err != nil {
		l.logger.Warn("context file not found", "path", path)
		return gptoss.FileInfo{}, false
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		l.logger.Warn("unsupported context file type", "path", path, "ext", ext)
		return gptoss.FileInfo{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("context file read failed", "path", path, "err", err)
		return gptoss.FileInfo{}, false
	}

	content, encName := decode(data)
	if encName == "" {
		l.logger.Warn("encoding detection failed, assuming utf-8", "path", path)
		content, encName = string(data), "utf-8"
	}

	return gptoss.FileInfo{
		Path:     path,
		Content:  content,
		Encoding: encName,
		Size:     stat.Size(),
		ModTime:  stat.ModTime(),
	}, true
}

// decode detects the file encoding and returns the UTF-8 content.
// Returns an empty encoding name when no probe decodes cleanly.
func decode(data []byte) (content, encName string) {
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}

	for _, e := range encodings {
		decoded, err := e.enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		// The decoders substitute U+FFFD for bytes they cannot map.
		if strings.ContainsRune(string(decoded), utf8.RuneError) {
			continue
		}
		return string(decoded), e.name
	}

	return "", ""
}
