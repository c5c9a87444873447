// ABOUTME: CLI command for logging food entries.
// ABOUTME: Nutrition values are already scaled to the logged serving.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	logCalories float64
	logProtein  float64
	logCarbs    float64
	logFat      float64
	logFiber    float64
	logSugar    float64
	logSodium   float64
	logServing  float64
	logUnit     string
	logMeal     string
	logDate     string
	logProfile  string
	logVitamins []string
	logMinerals []string
)

var logCmd = &cobra.Command{
	Use:     "log <food>",
	Aliases: []string{"add", "a"},
	Short:   "Log a food entry",
	Long: `Log a food entry for a profile. Pass nutrition for the serving you ate;
values are not scaled by --serving.

UNITS:   piece (default), cup, gram, ounce, tablespoon, teaspoon
MEALS:   breakfast, lunch, dinner, snack (default)

EXAMPLES:

  nutri log "Greek Yogurt" --calories 130 --protein 17 --carbs 6 --fat 4 --meal breakfast
  nutri log Rice --calories 205 --carbs 45 --protein 4 --serving 1 --unit cup --meal dinner
  nutri log Spinach --calories 7 --vitamin k=145 --mineral iron=0.8 --date 2024-03-14
  nutri log Apple --calories 95 --carbs 25 --fiber 4 --profile abc12345`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		foodName := strings.TrimSpace(args[0])

		if !models.IsValidServingUnit(logUnit) {
			return fmt.Errorf("unknown serving unit: %s\nValid units: piece, cup, gram, ounce, tablespoon, teaspoon", logUnit)
		}
		if !models.IsValidMealType(logMeal) {
			return fmt.Errorf("unknown meal type: %s\nValid meals: breakfast, lunch, dinner, snack", logMeal)
		}

		day, err := parseDay(logDate)
		if err != nil {
			return err
		}
		vitamins, err := parseAmounts("vitamin", logVitamins)
		if err != nil {
			return err
		}
		minerals, err := parseAmounts("mineral", logMinerals)
		if err != nil {
			return err
		}

		p, err := currentProfile(logProfile)
		if err != nil {
			return err
		}

		e := models.NewFoodEntry(p.ID, foodName, models.NutritionData{
			Calories: logCalories,
			Protein:  logProtein,
			Carbs:    logCarbs,
			Fat:      logFat,
			Fiber:    logFiber,
			Sugar:    logSugar,
			Sodium:   logSodium,
			Vitamins: vitamins,
			Minerals: minerals,
		}).
			WithServing(logServing, models.ServingUnit(logUnit)).
			WithMeal(models.MealType(logMeal)).
			WithDate(day)

		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("failed to log food: %w", err)
		}

		color.Green("✓ Logged %s", e.FoodName)
		fmt.Printf("  %s %s %s %.0f kcal\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.EntryDate.Format(models.DateLayout),
			e.MealType,
			e.Nutrition.Calories)
		return nil
	},
}

// parseAmounts parses name=amount pairs into a map.
func parseAmounts(kind string, values []string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(values))
	for _, v := range values {
		name, raw, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid %s %q (use name=amount)", kind, v)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("invalid %s amount: %s", kind, raw)
		}
		out[name] = amount
	}
	return out, nil
}

func init() {
	f := logCmd.Flags()
	f.Float64Var(&logCalories, "calories", 0, "calories (kcal)")
	f.Float64Var(&logProtein, "protein", 0, "protein (g)")
	f.Float64Var(&logCarbs, "carbs", 0, "carbohydrates (g)")
	f.Float64Var(&logFat, "fat", 0, "fat (g)")
	f.Float64Var(&logFiber, "fiber", 0, "fiber (g)")
	f.Float64Var(&logSugar, "sugar", 0, "sugar (g)")
	f.Float64Var(&logSodium, "sodium", 0, "sodium (mg)")
	f.Float64Var(&logServing, "serving", 1, "serving size")
	f.StringVar(&logUnit, "unit", string(models.UnitPiece), "serving unit")
	f.StringVar(&logMeal, "meal", string(models.MealSnack), "meal type")
	f.StringVar(&logDate, "date", "", "entry date YYYY-MM-DD (default today)")
	f.StringVar(&logProfile, "profile", "", "profile ID or prefix")
	f.StringArrayVar(&logVitamins, "vitamin", nil, "vitamin amount as name=amount (repeatable)")
	f.StringArrayVar(&logMinerals, "mineral", nil, "mineral amount as name=amount (repeatable)")
	rootCmd.AddCommand(logCmd)
}
