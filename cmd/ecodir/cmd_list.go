package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/internal/query"
)

// filterFlags are shared by list and tags.
type filterFlags struct {
	category string
	text     string
	tag      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "all", "category: all, brand, tool or agency")
	cmd.Flags().StringVarP(&f.text, "query", "q", "", "case-insensitive text matched against name and description")
	cmd.Flags().StringVar(&f.tag, "tag", "", "exact tag to require")
}

func (f *filterFlags) state() (models.FilterState, error) {
	category, ok := models.ParseCategory(f.category)
	if !ok {
		return models.FilterState{}, fmt.Errorf("unknown category %q", f.category)
	}
	filter := models.NewFilterState().WithCategory(category).WithQuery(f.text)
	if f.tag != "" {
		filter = filter.ToggleTag(f.tag)
	}
	return filter, nil
}

func listCmd() *cobra.Command {
	var (
		flags      filterFlags
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List directory entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			filter, err := flags.state()
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("list: building store: %w", err)
			}
			entities, err := st.List(ctx)
			if err != nil {
				return fmt.Errorf("list: fetching entities: %w", err)
			}

			res := query.Run(entities, filter)
			if outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(res); encErr != nil {
					return fmt.Errorf("list: encoding JSON: %w", encErr)
				}
				return nil
			}
			printEntities(cmd.OutOrStdout(), res.Items)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}

func tagsCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show the tags available for the current category and query",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			filter, err := flags.state()
			if err != nil {
				return fmt.Errorf("tags: %w", err)
			}
			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("tags: building store: %w", err)
			}
			entities, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("tags: fetching entities: %w", err)
			}

			res := query.Run(entities, filter)
			for _, t := range res.AvailableTags {
				marker := " "
				if t == filter.Tag {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, t)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printEntities(w io.Writer, entities []models.Entity) {
	if len(entities) == 0 {
		fmt.Fprintln(w, "No entities found.")
		return
	}
	for i := range entities {
		e := &entities[i]
		fmt.Fprintf(w, "[%d] %s (%s) %s\n", i+1, e.Name, e.Category, truncate(e.Description, 80))
		fmt.Fprintf(w, "    ID: %s | Tags: %s\n", e.ID, strings.Join(e.Tags, ", "))
	}
}
