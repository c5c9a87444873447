// ABOUTME: CLI command for listing food entries.
// ABOUTME: Shows one day with totals, or the most recent entries across days.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/insight"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	listDate    string
	listProfile string
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List food entries",
	Long: `List logged food entries for a profile.

OUTPUT FORMAT:

  Each line shows: ID  DATE  MEAL  FOOD  SERVING  CALORIES

  The ID is an 8-character prefix you can use with 'nutri delete'.
  With --date, the day's nutrient totals are printed at the end.

EXAMPLES:

  nutri list                       # Last 20 entries
  nutri list --date 2024-03-15     # One day with totals
  nutri list -n 50 --profile abc1  # Last 50 entries for a profile`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentProfile(listProfile)
		if err != nil {
			return err
		}

		var day *time.Time
		if listDate != "" {
			d, err := parseDay(listDate)
			if err != nil {
				return err
			}
			day = &d
		}

		entries, err := repo.ListEntries(p.ID, day)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		// Oldest first; keep the most recent entries when limited
		if day == nil && listLimit > 0 && len(entries) > listLimit {
			entries = entries[len(entries)-listLimit:]
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			fmt.Printf("%s %s %s %s %s %.0f kcal\n",
				faint.Sprint(e.ID.String()[:8]),
				faint.Sprint(e.EntryDate.Format(models.DateLayout)),
				padRight(string(e.MealType), 10),
				padRight(truncate(e.FoodName, 24), 24),
				padRight(servingLabel(e), 14),
				e.Nutrition.Calories)
		}

		if day != nil {
			fmt.Println()
			fmt.Println(formatTotals(insight.Aggregate(insight.Values(entries))))
		}
		return nil
	},
}

func formatTotals(t models.NutrientTotals) string {
	return fmt.Sprintf("Totals: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat, %.1fg fiber, %.1fg sugar, %.0fmg sodium",
		t.Calories, t.Protein, t.Carbs, t.Fat, t.Fiber, t.Sugar, t.Sodium)
}

func servingLabel(e *models.FoodEntry) string {
	return strings.TrimSpace(fmt.Sprintf("%g %s", e.ServingSize, e.ServingUnit))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "only entries on this day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listProfile, "profile", "", "profile ID or prefix")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
