// Package ollama implements streaming text generation against an Ollama
// server's /api/generate endpoint.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Kurehiro/gpt-oss"
)

// DefaultBaseURL is the default Ollama server address.
const DefaultBaseURL = "http://localhost:11434"

// DefaultTimeout is the per-request timeout for generation requests.
const DefaultTimeout = 120 * time.Second

// Fixed decoding parameters for context-grounded answering.
const (
	temperature   = 0.3
	topP          = 0.9
	maxTokens     = 4000
	repeatPenalty = 1.1
)

// Ensure Generator implements gptoss.Generator at compile time.
var _ gptoss.Generator = (*Generator)(nil)

// Generator streams completions from an Ollama server.
type Generator struct {
	baseURL string
	model   string
	client  *http.Client
}

// Option configures a Generator.
type Option func(*Generator)

// WithBaseURL sets the Ollama server address. A missing scheme defaults
// to http. Defaults to DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(g *Generator) { g.baseURL = u }
}

// WithHTTPClient overrides the HTTP client, e.g. to change the timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Generator) { g.client = hc }
}

// NewGenerator creates a Generator for the named model.
func NewGenerator(model string, opts ...Option) *Generator {
	g := &Generator{
		baseURL: DefaultBaseURL,
		model:   model,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.client = &http.Client{Timeout: DefaultTimeout}
	}
	if !strings.HasPrefix(g.baseURL, "http://") && !strings.HasPrefix(g.baseURL, "https://") {
		g.baseURL = "http://" + g.baseURL
	}
	return g
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p"`
	MaxTokens     int      `json:"max_tokens"`
	RepeatPenalty float64  `json:"repeat_penalty"`
	Stop          []string `json:"stop"`
}

// fragment is one newline-delimited JSON object of the response stream.
type fragment struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate streams a completion for prompt, calling emit for each text
// delta. The stream ends at the provider's done signal or EOF. Malformed
// fragment lines are skipped. An error returned by emit cancels the stream
// and is returned unchanged.
func (g *Generator) Generate(ctx context.Context, prompt string, emit func(delta string) error) error {
	body, err := json.Marshal(generateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: true,
		Options: generateOptions{
			Temperature:   temperature,
			TopP:          topP,
			MaxTokens:     maxTokens,
			RepeatPenalty: repeatPenalty,
			Stop:          []string{},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return gptoss.Errorf(gptoss.EUNAVAILABLE, "generation request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return gptoss.Errorf(gptoss.EUNAVAILABLE, "generation failed: %s %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var f fragment
		if err := json.Unmarshal(line, &f); err != nil {
			continue
		}

		if f.Response != "" {
			if err := emit(f.Response); err != nil {
				return err
			}
		}
		if f.Done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return gptoss.Errorf(gptoss.EUNAVAILABLE, "generation stream failed: %v", err)
	}
	return nil
}
