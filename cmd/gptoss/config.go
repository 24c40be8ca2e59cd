package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/Kurehiro/gpt-oss"
)

// loadConfig reads the JSON config file at path, merged over the defaults.
// A missing or unreadable file falls back to the defaults; it is never fatal.
func loadConfig(path string, logger *slog.Logger) gptoss.Config {
	cfg := gptoss.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("config read failed, using defaults", "path", path, "err", err)
		}
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Warn("config parse failed, using defaults", "path", path, "err", err)
		return gptoss.DefaultConfig()
	}

	return cfg
}

// saveConfig writes cfg to path as indented JSON.
func saveConfig(path string, cfg gptoss.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
