package gptoss

// Priority determines which context source is placed first in the final
// prompt when both file and web-search context are present.
type Priority string

// Priority constants for Config.FilePriority.
const (
	PriorityHigh   Priority = "high"   // file context first
	PriorityMedium Priority = "medium" // file context first (see Config.FilePriority)
	PriorityLow    Priority = "low"    // search context first
)

// Config holds the recognized run options. It is supplied by the caller
// (typically loaded from a JSON file by cmd/gptoss) and treated as
// read-only by the rest of the package.
type Config struct {
	// PromptFile is the path of the primary prompt source. Inability to
	// read it is the only fatal error in the system.
	PromptFile string `json:"prompt_file"`

	// InfoFiles lists additional context files to load.
	InfoFiles []string `json:"additional_info_files"`

	// WebSearch enables web-search context when a search client is
	// configured.
	WebSearch bool `json:"enable_web_search"`

	// FilePriority orders file context relative to search context.
	// "high" and "medium" both place file context first; "low" places
	// search context first.
	FilePriority Priority `json:"file_info_priority"`

	// MaxFileContext bounds the formatted file context length in runes.
	MaxFileContext int `json:"max_file_content_length"`

	// MaxSearchContext bounds the formatted search context length in runes.
	MaxSearchContext int `json:"max_search_content_length"`

	// MaxResults caps the merged search result list.
	MaxResults int `json:"max_search_results"`

	// Model is the name of the model served by the generation endpoint.
	Model string `json:"model_name"`

	// OllamaURL is the base URL of the generation endpoint.
	OllamaURL string `json:"ollama_url"`

	// SerpAPIKey authenticates search requests. Empty disables web search.
	SerpAPIKey string `json:"serpapi_api_key"`

	// CachePath selects a SQLite-backed search cache when non-empty.
	// Empty keeps the default in-memory, process-lifetime cache.
	CachePath string `json:"cache_path,omitempty"`
}

// DefaultConfig returns the documented option defaults.
func DefaultConfig() Config {
	return Config{
		PromptFile:       "prompt.txt",
		InfoFiles:        nil,
		WebSearch:        true,
		FilePriority:     PriorityHigh,
		MaxFileContext:   5000,
		MaxSearchContext: 2000,
		MaxResults:       15,
		Model:            "gpt-oss:20b",
		OllamaURL:        "http://localhost:11434",
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.PromptFile == "" {
		return Errorf(EINVALID, "prompt file required")
	}
	switch c.FilePriority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return Errorf(EINVALID, "unknown file priority %q", c.FilePriority)
	}
	if c.MaxFileContext <= 0 {
		return Errorf(EINVALID, "max file context length must be positive")
	}
	if c.MaxSearchContext <= 0 {
		return Errorf(EINVALID, "max search context length must be positive")
	}
	if c.MaxResults <= 0 {
		return Errorf(EINVALID, "max search results must be positive")
	}
	return nil
}
