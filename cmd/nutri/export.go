// ABOUTME: CLI commands for exporting and importing nutrition data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export nutrition data",
	Long: `Export profiles, food entries, and cached insights.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by profile and day (human-readable)
  markdown   Markdown tables per day with totals (for sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include entries and insights since this date (YYYY-MM-DD)

EXAMPLES:

  nutri export json                        # Export all data as JSON
  nutri export json -o backup.json         # Save to file
  nutri export yaml                        # Export as YAML
  nutri export markdown --since 2024-01-01 # Export data from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var since *time.Time
		if exportSince != "" {
			t, err := parseDay(exportSince)
			if err != nil {
				return err
			}
			since = &t
		}

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo, since)
		case "yaml":
			data, err = storage.ExportYAML(repo, since)
		case "markdown", "md":
			var md string
			md, err = storage.ExportMarkdown(repo, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import nutrition data from JSON",
	Long: `Import nutrition data from a JSON backup file.

This imports profiles, entries, and insights from a previously exported
JSON file. Duplicate records (same ID) cause an error.

EXAMPLES:

  nutri import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := storage.ImportJSON(repo, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
