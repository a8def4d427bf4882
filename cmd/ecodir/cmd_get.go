package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ecodir/internal/relations"
)

func getCmd() *cobra.Command {
	var (
		outputJSON bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "get [entity-id]",
		Short: "Show an entity with its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("get: building store: %w", err)
			}
			entity, err := st.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			entities, err := st.List(ctx)
			if err != nil {
				return fmt.Errorf("get: fetching entities: %w", err)
			}

			if limit <= 0 {
				limit = cfg.Directory.SimilarLimit
			}
			detail := relations.Detail(entities, entity, limit)

			if outputJSON {
				out, err := json.MarshalIndent(detail, "", "  ")
				if err != nil {
					return fmt.Errorf("get: marshaling JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			printDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of similar entities (default from config)")
	return cmd
}

func printDetail(w io.Writer, d relations.EntityDetail) {
	e := d.Entity
	fmt.Fprintf(w, "%s (%s)\n", e.Name, e.Category)
	fmt.Fprintf(w, "ID:       %s\n", e.ID)
	fmt.Fprintf(w, "Website:  %s\n", e.WebsiteURL)
	fmt.Fprintf(w, "Tags:     %s\n", strings.Join(e.Tags, ", "))
	if e.PricingModel != "" {
		fmt.Fprintf(w, "Pricing:  %s\n", e.PricingModel)
	}
	if len(e.Services) > 0 {
		fmt.Fprintf(w, "Services: %s\n", strings.Join(e.Services, ", "))
	}
	if len(e.Partners) > 0 {
		fmt.Fprintf(w, "Partners: %s\n", strings.Join(e.Partners, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", e.Description)

	if len(d.Stack) > 0 {
		fmt.Fprintln(w, "\nTech stack:")
		for _, s := range d.Stack {
			link := "not indexed"
			if s.Resolved() {
				link = "-> " + s.Tool.ID
			}
			fmt.Fprintf(w, "  %-16s %-22s %s\n", s.Name, s.Category, link)
		}
	}
	if len(d.UsedBy) > 0 {
		fmt.Fprintln(w, "\nUsed by:")
		for i := range d.UsedBy {
			fmt.Fprintf(w, "  %s (%s)\n", d.UsedBy[i].Name, d.UsedBy[i].ID)
		}
	}
	if len(d.Similar) > 0 {
		fmt.Fprintln(w, "\nSimilar:")
		for i := range d.Similar {
			fmt.Fprintf(w, "  %s (%s)\n", d.Similar[i].Name, d.Similar[i].ID)
		}
	}
}
