package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ecodir/internal/metrics"
	"github.com/ajitpratap0/ecodir/internal/models"
)

func inspectCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "inspect [url]",
		Short: "Ask the assistant to draft an entity record for a URL",
		Long:  "Prints the suggested entity as JSON with defaults applied. Fails when no API key is configured or the model output cannot be used; enter the record manually in that case.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			var hint *models.Category
			if category != "" {
				c, ok := models.ParseCategory(category)
				if !ok || c == models.CategoryAll {
					return fmt.Errorf("inspect: unknown category %q", category)
				}
				hint = &c
			}

			metrics.Inc(metrics.InspectTotal)
			draft, err := newGateway(logger).InspectURL(cmd.Context(), args[0], hint)
			if err != nil {
				metrics.Inc(metrics.InspectFailed)
				return fmt.Errorf("inspect: %w", err)
			}

			entity := draft.ToEntity("gen-"+uuid.NewString(), args[0])
			out, err := json.MarshalIndent(entity, "", "  ")
			if err != nil {
				return fmt.Errorf("inspect: marshaling JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "suggested category: brand, tool or agency")
	return cmd
}
