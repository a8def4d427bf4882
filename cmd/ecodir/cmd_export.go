package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/ecodir/internal/models"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entities to JSON or YAML",
		Long:  "Writes the directory in a form that can be loaded back with directory.seed_file (YAML) or consumed by other tools (JSON).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkExportFormat(format); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			logger := newLogger()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("export: building store: %w", err)
			}
			entities, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("export: listing entities: %w", err)
			}

			if output == "" || output == "-" {
				if err := writeExport(cmd.OutOrStdout(), entities, format); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				return nil
			}

			if err := writeExportFile(output, entities, format); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entities to %s\n", len(entities), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	return cmd
}

func checkExportFormat(format string) error {
	switch format {
	case "json", "yaml":
		return nil
	}
	return fmt.Errorf("unsupported format %q (use json or yaml)", format)
}

// writeExportFile writes entities to path. A failed close is reported since
// it can mean the data never reached disk.
func writeExportFile(path string, entities []models.Entity, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}()
	return writeExport(f, entities, format)
}

func writeExport(w io.Writer, entities []models.Entity, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entities); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entities); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flushing YAML: %w", err)
		}
	default:
		return checkExportFormat(format)
	}
	return nil
}
