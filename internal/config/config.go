package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Project-Sylos/Corpus/internal/types"
)

// DefaultConfig returns a default configuration
func DefaultConfig() types.Config {
	return types.Config{
		Content: types.ContentConfig{
			MeanSize:      8 * 1024,
			StddevSize:    2 * 1024,
			Seed:          42,
			NumFiles:      10,
			Digest:        types.DigestMD5,
			MaxBlockBytes: 1024 * 1024,
			SpoolMemory:   4 * 1024 * 1024,
		},
		Names: types.NamesConfig{
			MeanLength:   16,
			StddevLength: 4,
			Charset:      "abcdefghijklmnopqrstuvwxyz",
		},
		API: types.APIConfig{
			Host: "localhost",
			Port: 8086,
		},
		Telemetry: types.TelemetryConfig{
			Enabled: true,
			DBPath:  "./corpus.db",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(configPath string) (*types.Config, error) {
	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	// Read file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON on top of the defaults so omitted sections keep sane values
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Set default DB path if not specified
	if cfg.Telemetry.DBPath == "" {
		cfg.Telemetry.DBPath = "./corpus.db"
	}

	// Ensure DB path is absolute
	if !filepath.IsAbs(cfg.Telemetry.DBPath) {
		absPath, err := filepath.Abs(cfg.Telemetry.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
		cfg.Telemetry.DBPath = absPath
	}

	return &cfg, nil
}

// Validate checks that the configuration parameters are valid
func Validate(cfg *types.Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	// Validate content config
	if cfg.Content.MeanSize < 0 {
		return fmt.Errorf("mean_size must be non-negative, got %f", cfg.Content.MeanSize)
	}

	if cfg.Content.StddevSize < 0 {
		return fmt.Errorf("stddev_size must be non-negative, got %f", cfg.Content.StddevSize)
	}

	if cfg.Content.NumFiles < 1 {
		return fmt.Errorf("num_files must be at least 1, got %d", cfg.Content.NumFiles)
	}

	if cfg.Content.Digest != types.DigestMD5 && cfg.Content.Digest != types.DigestSHA256 {
		return fmt.Errorf("digest must be %q or %q, got %q", types.DigestMD5, types.DigestSHA256, cfg.Content.Digest)
	}

	if cfg.Content.MaxBlockBytes < 8 {
		return fmt.Errorf("max_block_bytes must be at least 8, got %d", cfg.Content.MaxBlockBytes)
	}

	if cfg.Content.SpoolMemory < 0 {
		return fmt.Errorf("spool_memory must be non-negative, got %d", cfg.Content.SpoolMemory)
	}

	// Validate names config
	if cfg.Names.MeanLength < 1 {
		return fmt.Errorf("mean_length must be at least 1, got %f", cfg.Names.MeanLength)
	}

	if cfg.Names.StddevLength < 0 {
		return fmt.Errorf("stddev_length must be non-negative, got %f", cfg.Names.StddevLength)
	}

	if cfg.Names.Charset == "" {
		return fmt.Errorf("charset cannot be empty")
	}

	// Validate API config
	if cfg.API.Port < 1 || cfg.API.Port > 65535 {
		return fmt.Errorf("API port must be between 1 and 65535, got %d", cfg.API.Port)
	}

	return nil
}

// SaveToFile saves configuration to a JSON file
func SaveToFile(cfg *types.Config, configPath string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
