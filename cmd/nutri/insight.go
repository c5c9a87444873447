// ABOUTME: CLI command for computing a day's nutrition insight.
// ABOUTME: Prints conflicts, recommendations, score, and weekly summary in color or as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/insight"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	insightDate    string
	insightProfile string
	insightJSON    bool
)

var insightCmd = &cobra.Command{
	Use:     "insight",
	Aliases: []string{"i"},
	Short:   "Show the nutrition insight for a day",
	Long: `Compute the nutrition insight for a profile and day.

The insight checks the day's entries against the profile's allergies
and conditions, scores the day from 1 to 10, and summarizes
the trailing 7 days ending on that date. The result is cached in storage.

STATUS:

  safe      no medium or high severity conflicts
  caution   at least one medium severity conflict
  avoid     at least one high severity conflict

EXAMPLES:

  nutri insight                     # Today
  nutri insight --date 2024-03-15
  nutri insight --json              # Machine-readable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentProfile(insightProfile)
		if err != nil {
			return err
		}
		day, err := parseDay(insightDate)
		if err != nil {
			return err
		}

		gen := insight.NewGenerator(insight.NewEngine(), repo, repo, logger)
		in, err := gen.Generate(cmd.Context(), p.ID.String(), day)
		if err != nil {
			return fmt.Errorf("failed to compute insight: %w", err)
		}

		if insightJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(in)
		}

		printInsight(color.Output, p, in)
		return nil
	},
}

func statusColor(s models.InsightStatus) *color.Color {
	switch s {
	case models.StatusAvoid:
		return color.New(color.FgRed, color.Bold)
	case models.StatusCaution:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityHigh:
		return color.New(color.FgRed)
	case models.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func priorityColor(p models.Priority) *color.Color {
	switch p {
	case models.PriorityHigh:
		return color.New(color.FgMagenta)
	case models.PriorityMedium:
		return color.New(color.FgBlue)
	default:
		return color.New(color.Faint)
	}
}

func printInsight(w io.Writer, p *models.HealthProfile, in *models.Insight) {
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	fmt.Fprintf(w, "%s %s\n", bold.Sprintf("Insight for %s", p.Name), faint.Sprint(in.Date.Format(models.DateLayout)))
	fmt.Fprintf(w, "  Status: %s\n", statusColor(in.Status).Sprint(strings.ToUpper(string(in.Status))))
	fmt.Fprintf(w, "  Health score: %.1f/10\n", in.HealthScore)
	if in.DailyTotals != nil {
		fmt.Fprintf(w, "  %s\n", formatTotals(*in.DailyTotals))
	}

	if len(in.Conflicts) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Conflicts")
		for _, c := range in.Conflicts {
			fmt.Fprintf(w, "  %s %s %s\n",
				severityColor(c.Severity).Sprintf("[%s]", c.Severity),
				padRight(string(c.Type), 16),
				c.Description)
		}
	}

	if len(in.Recommendations) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Recommendations")
		for _, r := range in.Recommendations {
			fmt.Fprintf(w, "  %s %s %s\n",
				priorityColor(r.Priority).Sprintf("[%s]", r.Priority),
				padRight(string(r.Type), 10),
				r.Title)
			fmt.Fprintf(w, "    %s\n", faint.Sprint(r.Description))
		}
	}

	if ws := in.WeeklySummary; ws != nil {
		fmt.Fprintln(w)
		bold.Fprintf(w, "Last 7 days ")
		faint.Fprintf(w, "(%d days tracked, %d unique foods)\n", ws.DaysTracked, ws.UniqueFoods)
		fmt.Fprintf(w, "  Average: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
			ws.AverageCalories, ws.AverageProtein, ws.AverageCarbs, ws.AverageFat)
		fmt.Fprintf(w, "  Variety score: %d\n", ws.VarietyScore)
		for _, s := range ws.Insights {
			fmt.Fprintf(w, "  • %s\n", s)
		}
		if ws.AIAnalysis != "" {
			fmt.Fprintf(w, "  %s\n", faint.Sprint(ws.AIAnalysis))
		}
	}
}

func init() {
	insightCmd.Flags().StringVar(&insightDate, "date", "", "day YYYY-MM-DD (default today)")
	insightCmd.Flags().StringVar(&insightProfile, "profile", "", "profile ID or prefix")
	insightCmd.Flags().BoolVar(&insightJSON, "json", false, "print the insight as JSON")
	rootCmd.AddCommand(insightCmd)
}
