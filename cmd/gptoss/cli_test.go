package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kurehiro/gpt-oss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help prints usage", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "gptoss")
	})

	t.Run("missing prompt file is fatal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		args := []string{
			"--config", filepath.Join(dir, "config.json"),
			"--prompt", filepath.Join(dir, "no-such-prompt.txt"),
			"--no-search",
		}

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), args, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, gptoss.ENOTFOUND, gptoss.ErrorCode(err))
	})

	t.Run("empty prompt file is fatal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		promptPath := filepath.Join(dir, "prompt.txt")
		require.NoError(t, os.WriteFile(promptPath, []byte("  \n"), 0644))

		args := []string{
			"--config", filepath.Join(dir, "config.json"),
			"--prompt", promptPath,
			"--no-search",
		}

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), args, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, gptoss.EINVALID, gptoss.ErrorCode(err))
	})

	t.Run("init writes a default config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.json")

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), []string{"--config", configPath, "--init"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.FileExists(t, configPath)
		assert.Contains(t, stdout.String(), configPath)
	})

	t.Run("streams the generated answer to stdout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate", r.URL.Path)
			io.WriteString(w, `{"response":"回答"}`+"\n")
			io.WriteString(w, `{"response":"です","done":true}`+"\n")
		}))
		defer srv.Close()

		dir := t.TempDir()
		promptPath := filepath.Join(dir, "prompt.txt")
		require.NoError(t, os.WriteFile(promptPath, []byte("挨拶してください\n"), 0644))

		args := []string{
			"--config", filepath.Join(dir, "config.json"),
			"--prompt", promptPath,
			"--ollama-url", srv.URL,
			"--no-search",
		}

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), args, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "回答です\n", stdout.String())
	})

	t.Run("rejects an invalid priority", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		promptPath := filepath.Join(dir, "prompt.txt")
		require.NoError(t, os.WriteFile(promptPath, []byte("質問"), 0644))

		args := []string{
			"--config", filepath.Join(dir, "config.json"),
			"--prompt", promptPath,
			"--priority", "urgent",
		}

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), args, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, gptoss.EINVALID, gptoss.ErrorCode(err))
	})
}
