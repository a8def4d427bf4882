package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ecodir/internal/assistant"
	"github.com/ajitpratap0/ecodir/internal/models"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the ecosystem assistant a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("ask: building store: %w", err)
			}
			snap, err := snapshot(ctx, st)
			if err != nil {
				return fmt.Errorf("ask: fetching entities: %w", err)
			}

			answer := newGateway(logger).Ask(ctx, strings.Join(args, " "), snap)
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the ecosystem assistant on stdin",
		Long:  "Reads one question per line until EOF or \"exit\". An empty line is ignored.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("chat: building store: %w", err)
			}
			snap, err := snapshot(ctx, st)
			if err != nil {
				return fmt.Errorf("chat: fetching entities: %w", err)
			}

			conv := assistant.NewConversation()
			return runChat(ctx, conv, newGateway(logger), snap, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runChat drives conv from in until EOF, "exit" or "quit".
func runChat(ctx context.Context, conv *assistant.Conversation, gw assistant.Gateway, snap []models.EntitySummary, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, conv.Messages()[0].Text)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		q := strings.TrimSpace(scanner.Text())
		switch q {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		answer, _ := conv.Ask(ctx, gw, q, snap)
		fmt.Fprintf(out, "%s\n\n", answer)
		if ctx.Err() != nil {
			return nil
		}
	}
	fmt.Fprintln(out)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("chat: reading input: %w", err)
	}
	return nil
}
