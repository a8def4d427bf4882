package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/ecodir/internal/mcp"
	"github.com/ajitpratap0/ecodir/internal/moderation"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  list_entities     filter the directory by category, text and tag
  get_entity        entity detail with used-by, tech stack and similar entries
  similar_entities  same-category entities ranked by shared tags
  submit_entity     queue a submission for moderation
  ask_assistant     ask the ecosystem assistant`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("mcp: building store: %w", err)
			}
			srv := mcp.NewServer(st, moderation.NewWorkflow(st, logger), newGateway(logger), logger, cfg.Directory.SimilarLimit)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: ecodir MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
