package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Kurehiro/gpt-oss"
	"github.com/Kurehiro/gpt-oss/fs"
	"github.com/Kurehiro/gpt-oss/ollama"
	"github.com/Kurehiro/gpt-oss/rag"
	"github.com/Kurehiro/gpt-oss/serpapi"
	logslog "github.com/Kurehiro/gpt-oss/slog"
	"github.com/Kurehiro/gpt-oss/sqlite"
	"github.com/alecthomas/kong"
)

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong. Flags override
// the corresponding config file fields for a single run.
type CLI struct {
	Config    string `short:"c" default:"config.json" help:"Path to the JSON config file"`
	Prompt    string `short:"p" help:"Prompt file (overrides the config)"`
	Model     string `help:"Model name (overrides the config)"`
	OllamaURL string `name:"ollama-url" help:"Ollama base URL (overrides the config)"`
	APIKey    string `name:"api-key" env:"SERPAPI_API_KEY" help:"SerpAPI key; empty disables web search"`
	NoSearch  bool   `help:"Disable web search for this run"`
	Priority  string `help:"File context priority: high, medium or low"`
	Cache     string `help:"SQLite search cache path (overrides the config)"`
	Init      bool   `help:"Write a config file with defaults and exit"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gptoss"),
		kong.Description("Answer a prompt file with a local model, augmented with file and web-search context"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.Init {
		if err := saveConfig(cli.Config, gptoss.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", cli.Config)
		return nil
	}

	cfg := loadConfig(cli.Config, logger)
	applyOverrides(&cfg, cli)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// The prompt file is the one input the run cannot proceed without.
	promptData, err := os.ReadFile(cfg.PromptFile)
	if err != nil {
		return gptoss.Errorf(gptoss.ENOTFOUND, "prompt file %q not found", cfg.PromptFile)
	}
	prompt := strings.TrimSpace(string(promptData))
	if prompt == "" {
		return gptoss.Errorf(gptoss.EINVALID, "prompt file %q is empty", cfg.PromptFile)
	}

	engine := &rag.Engine{
		Loader: logslog.NewLoggingLoader(fs.NewLoader(".", fs.WithLogger(logger)), logger),
		Logger: logger,
	}

	if cfg.SerpAPIKey != "" && cfg.WebSearch {
		cache, closeCache, err := newSearchCache(cfg)
		if err != nil {
			return err
		}
		if closeCache != nil {
			defer closeCache()
		}

		client := serpapi.NewClient(cfg.SerpAPIKey,
			serpapi.WithCache(cache),
			serpapi.WithLogger(logger),
		)
		engine.Ranker = logslog.NewLoggingRanker(
			serpapi.NewRanker(client, serpapi.WithRankerLogger(logger)),
			logger,
		)
	}

	engine.Generator = logslog.NewLoggingGenerator(
		ollama.NewGenerator(cfg.Model, ollama.WithBaseURL(cfg.OllamaURL)),
		logger,
	)

	logger.Info("run",
		"prompt_file", cfg.PromptFile,
		"context_files", len(cfg.InfoFiles),
		"web_search", engine.Ranker != nil,
		"priority", string(cfg.FilePriority),
		"model", cfg.Model,
	)

	return engine.Answer(ctx, prompt, cfg, stdout)
}

// applyOverrides copies non-empty flag values over the loaded config.
func applyOverrides(cfg *gptoss.Config, cli *CLI) {
	if cli.Prompt != "" {
		cfg.PromptFile = cli.Prompt
	}
	if cli.Model != "" {
		cfg.Model = cli.Model
	}
	if cli.OllamaURL != "" {
		cfg.OllamaURL = cli.OllamaURL
	}
	if cli.APIKey != "" {
		cfg.SerpAPIKey = cli.APIKey
	}
	if cli.NoSearch {
		cfg.WebSearch = false
	}
	if cli.Priority != "" {
		cfg.FilePriority = gptoss.Priority(cli.Priority)
	}
	if cli.Cache != "" {
		cfg.CachePath = cli.Cache
	}
}

// newSearchCache selects the SQLite-backed cache when a cache path is
// configured, otherwise the in-memory cache.
func newSearchCache(cfg gptoss.Config) (gptoss.SearchCache, func() error, error) {
	if cfg.CachePath == "" {
		return serpapi.NewMemoryCache(serpapi.DefaultTTL), nil, nil
	}

	db := sqlite.NewDB(cfg.CachePath)
	if err := db.Open(); err != nil {
		return nil, nil, fmt.Errorf("failed to open search cache: %w", err)
	}
	return sqlite.NewCacheService(db, serpapi.DefaultTTL), db.Close, nil
}
