package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ecodir/internal/models"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show directory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("stats: building store: %w", err)
			}

			stats, err := st.Stats(ctx)
			if err != nil {
				return fmt.Errorf("stats: fetching statistics: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total entities: %d\n\n", stats.TotalEntities)

			fmt.Fprintln(out, "By category:")
			for _, c := range models.ValidCategories {
				fmt.Fprintf(out, "  %-14s %d\n", c, stats.ByCategory[c])
			}

			fmt.Fprintf(out, "\nPending submissions: %d\n", stats.PendingSubmissions)
			return nil
		},
	}
}
