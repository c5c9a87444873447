// ABOUTME: CLI command for deleting food entries.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a food entry",
	Long: `Delete a food entry by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'nutri list' output.

EXAMPLES:

  nutri delete abc12345                    # Delete by 8-char prefix
  nutri rm abc1                            # Short prefix (if unique)

CAUTION:

  This permanently deletes the entry. There is no undo.
  If the prefix matches multiple entries, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		// First, get the entry to show what we're deleting
		e, err := repo.GetEntry(idOrPrefix)
		if err != nil {
			return fmt.Errorf("entry not found: %w", err)
		}

		if err := repo.DeleteEntry(e.ID.String()); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		color.Yellow("✗ Deleted %s", e.FoodName)
		fmt.Printf("  %s %s %.0f kcal\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.EntryDate.Format(models.DateLayout),
			e.Nutrition.Calories)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
