package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ecodir/internal/assistant"
	"github.com/ajitpratap0/ecodir/internal/config"
	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/internal/seed"
	"github.com/ajitpratap0/ecodir/internal/store"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ecodir",
		Short: "ecodir: e-commerce ecosystem directory of brands, tools and agencies",
		Long:  "ecodir lists brands, technology tools and agencies, resolves which brands use which tools, moderates user submissions and answers questions through a Claude-backed assistant.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		mcpCmd(),
		listCmd(),
		getCmd(),
		tagsCmd(),
		askCmd(),
		chatCmd(),
		inspectCmd(),
		exportCmd(),
		statsCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newStore builds the in-memory store from the configured seed file, or
// from the built-in dataset when none is set.
func newStore(logger *slog.Logger) (*store.MemoryStore, error) {
	entities := seed.Default()
	if path := cfg.Directory.SeedFile; path != "" {
		loaded, err := seed.LoadFile(path)
		if err != nil {
			return nil, err
		}
		entities = loaded
	}
	st, err := store.NewMemoryStore(entities)
	if err != nil {
		return nil, err
	}
	logger.Debug("store seeded", "entities", len(entities), "seed_file", cfg.Directory.SeedFile)
	return st, nil
}

func newGateway(logger *slog.Logger) assistant.Gateway {
	logger.Debug("assistant config", "claude", cfg.Claude.String())
	return assistant.New(cfg.Claude.APIKey, cfg.Claude.Model, cfg.Claude.MaxTokens, logger)
}

// snapshot returns the assistant context for the current store contents.
func snapshot(ctx context.Context, st store.Store) ([]models.EntitySummary, error) {
	entities, err := st.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.Summarize(entities), nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
