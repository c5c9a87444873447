// ABOUTME: Nutrient aggregation across a collection of food entries.
// ABOUTME: Sums every nutrition field and normalizes the totals through Format.
package insight

import (
	"strings"

	"github.com/harperreed/nutri/internal/models"
)

// Aggregate sums calories, protein, carbs, fat, fiber, sugar and sodium
// across entries. Calories and sodium are rounded to whole numbers, the rest
// to two decimals.
func Aggregate(entries []models.FoodEntry) models.NutrientTotals {
	var t models.NutrientTotals
	for _, e := range entries {
		n := e.Nutrition
		t.Calories += n.Calories
		t.Protein += n.Protein
		t.Carbs += n.Carbs
		t.Fat += n.Fat
		t.Fiber += n.Fiber
		t.Sugar += n.Sugar
		t.Sodium += n.Sodium
	}

	return models.NutrientTotals{
		Calories: formatWhole(t.Calories),
		Protein:  formatDefault(t.Protein),
		Carbs:    formatDefault(t.Carbs),
		Fat:      formatDefault(t.Fat),
		Fiber:    formatDefault(t.Fiber),
		Sugar:    formatDefault(t.Sugar),
		Sodium:   formatWhole(t.Sodium),
	}
}

// distinctFoods counts distinct food names, case-insensitively.
func distinctFoods(entries []models.FoodEntry) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[strings.ToLower(e.FoodName)] = struct{}{}
	}
	return len(seen)
}

// distinctDays counts distinct calendar days among entries.
func distinctDays(entries []models.FoodEntry) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.EntryDate.Format(models.DateLayout)] = struct{}{}
	}
	return len(seen)
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
