package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		Claude:    ClaudeConfig{Model: "claude-test", MaxTokens: 512},
		Directory: DirectoryConfig{SimilarLimit: 4},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		API:       APIConfig{ListenAddr: ":8080"},
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ECODIR_SEED_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Claude.Model)
	assert.Equal(t, int64(DefaultClaudeMaxTokens), cfg.Claude.MaxTokens)
	assert.Empty(t, cfg.Claude.APIKey)
	assert.Empty(t, cfg.Directory.SeedFile)
	assert.Equal(t, DefaultSimilarLimit, cfg.Directory.SimilarLimit)
	assert.Equal(t, ":8080", cfg.API.ListenAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key-12345")
	t.Setenv("ECODIR_API_LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("ECODIR_SEED_FILE", "/etc/ecodir/seed.yaml")
	t.Setenv("ECODIR_SIMILAR_LIMIT", "6")
	t.Setenv("ECODIR_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key-12345", cfg.Claude.APIKey)
	assert.Equal(t, "127.0.0.1:9090", cfg.API.ListenAddr)
	assert.Equal(t, "/etc/ecodir/seed.yaml", cfg.Directory.SeedFile)
	assert.Equal(t, 6, cfg.Directory.SimilarLimit)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestConfigLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("ECODIR_SIMILAR_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similar_limit")
}

func TestValidate(t *testing.T) {
	require.NoError(t, validCfg().Validate())

	cases := map[string]func(*Config){
		"listen_addr":    func(c *Config) { c.API.ListenAddr = "" },
		"claude.model":   func(c *Config) { c.Claude.Model = "" },
		"max_tokens":     func(c *Config) { c.Claude.MaxTokens = 0 },
		"similar_limit":  func(c *Config) { c.Directory.SimilarLimit = -1 },
		"logging.format": func(c *Config) { c.Logging.Format = "xml" },
	}
	for field, mutate := range cases {
		cfg := validCfg()
		mutate(cfg)
		err := cfg.Validate()
		require.Error(t, err, field)
		assert.Contains(t, err.Error(), field)
	}
}

func TestConfigClaudeStringMasksKey(t *testing.T) {
	cfg := ClaudeConfig{
		APIKey:    "sk-ant-1234567890abcdef",
		Model:     "claude-haiku-4-5-20251001",
		MaxTokens: 1024,
	}
	s := cfg.String()
	assert.NotContains(t, s, "1234567890")
	assert.Contains(t, s, "sk-a****cdef")

	assert.Contains(t, ClaudeConfig{APIKey: "short"}.String(), "***")
}
