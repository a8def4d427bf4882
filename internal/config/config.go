package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultSimilarLimit is the default number of similar entities on a detail view.
	DefaultSimilarLimit = 4

	// DefaultClaudeMaxTokens bounds assistant and inspector responses.
	DefaultClaudeMaxTokens = 1024
)

// Config holds all configuration for ecodir.
type Config struct {
	Claude    ClaudeConfig    `mapstructure:"claude"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	API       APIConfig       `mapstructure:"api"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ClaudeConfig holds Anthropic Claude API settings. An empty APIKey puts
// the assistant in demo mode.
type ClaudeConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int64  `mapstructure:"max_tokens"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	masked := maskAPIKey(c.APIKey)
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s, MaxTokens:%d}", masked, c.Model, c.MaxTokens)
}

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// DirectoryConfig holds dataset and detail-view settings.
type DirectoryConfig struct {
	SeedFile     string `mapstructure:"seed_file"` // empty = built-in seed
	SimilarLimit int    `mapstructure:"similar_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")
	v.SetDefault("claude.max_tokens", DefaultClaudeMaxTokens)

	v.SetDefault("directory.seed_file", "")
	v.SetDefault("directory.similar_limit", DefaultSimilarLimit)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".ecodir"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("ECODIR")
	v.AutomaticEnv()

	_ = v.BindEnv("claude.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("claude.model", "ECODIR_CLAUDE_MODEL")
	_ = v.BindEnv("directory.seed_file", "ECODIR_SEED_FILE")
	_ = v.BindEnv("directory.similar_limit", "ECODIR_SIMILAR_LIMIT")
	_ = v.BindEnv("api.listen_addr", "ECODIR_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "ECODIR_API_AUTH_TOKEN")
	_ = v.BindEnv("logging.level", "ECODIR_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "ECODIR_LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK; use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	if c.Claude.Model == "" {
		return fmt.Errorf("claude.model must not be empty")
	}
	if c.Claude.MaxTokens <= 0 {
		return fmt.Errorf("claude.max_tokens must be greater than 0")
	}
	if c.Directory.SimilarLimit <= 0 {
		return fmt.Errorf("directory.similar_limit must be greater than 0")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
