// ABOUTME: Conflict detection between a health profile and logged food entries.
// ABOUTME: Runs allergy, aggregate-condition, and per-entry condition passes in order.
package insight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/nutri/internal/models"
)

// Thresholds for condition-driven conflicts. All comparisons are strict.
const (
	diabetesDailySugar     = 50.0
	diabetesDailySugarHigh = 80.0
	diabetesEntrySugar     = 20.0

	hypertensionDailySodium     = 2300.0
	hypertensionDailySodiumHigh = 3000.0
	hypertensionEntrySodium     = 500.0

	saturatedFatShare   = 0.3
	heartSaturatedFatGr = 20.0
)

// DetectConflicts evaluates profile against entries. Matching is a
// case-insensitive substring test on the free-text labels, so "heartburn"
// counts as a heart condition.
func DetectConflicts(profile *models.HealthProfile, entries []models.FoodEntry) []models.ConflictResult {
	conflicts := []models.ConflictResult{}
	if profile == nil {
		return conflicts
	}

	for _, e := range entries {
		for _, raw := range profile.Allergies {
			allergy := strings.TrimSpace(raw)
			if allergy == "" || !containsFold(e.FoodName, allergy) {
				continue
			}
			conflicts = append(conflicts, models.ConflictResult{
				Type:        models.ConflictAllergy,
				Severity:    models.SeverityHigh,
				Description: fmt.Sprintf("%s may contain %s, which is listed as an allergen in your profile.", e.FoodName, allergy),
				FoodItem:    e.FoodName,
			})
		}
	}

	totals := Aggregate(entries)
	for _, condition := range profile.MedicalConditions {
		if containsFold(condition, "diabetes") && totals.Sugar > diabetesDailySugar {
			severity := models.SeverityMedium
			if totals.Sugar > diabetesDailySugarHigh {
				severity = models.SeverityHigh
			}
			conflicts = append(conflicts, models.ConflictResult{
				Type:     models.ConflictCondition,
				Severity: severity,
				Description: fmt.Sprintf("Total sugar intake today is %sg, above the %sg daily guideline for %s. %s",
					num(totals.Sugar), num(diabetesDailySugar), condition, explainCondition("diabetes", totals)),
				FoodItem: models.DailyTotalItem,
			})
		}

		if containsFold(condition, "hypertension") && totals.Sodium > hypertensionDailySodium {
			severity := models.SeverityMedium
			if totals.Sodium > hypertensionDailySodiumHigh {
				severity = models.SeverityHigh
			}
			conflicts = append(conflicts, models.ConflictResult{
				Type:     models.ConflictCondition,
				Severity: severity,
				Description: fmt.Sprintf("Total sodium intake today is %smg, above the %smg daily limit for %s. %s",
					num(totals.Sodium), num(hypertensionDailySodium), condition, explainCondition("hypertension", totals)),
				FoodItem: models.DailyTotalItem,
			})
		}

		if containsFold(condition, "heart") || containsFold(condition, "cardiac") {
			saturated := totals.Fat * saturatedFatShare
			if saturated > heartSaturatedFatGr {
				conflicts = append(conflicts, models.ConflictResult{
					Type:     models.ConflictCondition,
					Severity: models.SeverityMedium,
					Description: fmt.Sprintf("Estimated saturated fat today is %sg (from %sg total fat), above the %sg guideline for %s. %s",
						num(formatDefault(saturated)), num(totals.Fat), num(heartSaturatedFatGr), condition, explainCondition("heart", totals)),
					FoodItem: models.DailyTotalItem,
				})
			}
		}
	}

	for _, condition := range profile.MedicalConditions {
		for _, e := range entries {
			if containsFold(condition, "diabetes") && e.Nutrition.Sugar > diabetesEntrySugar {
				conflicts = append(conflicts, models.ConflictResult{
					Type:     models.ConflictCondition,
					Severity: models.SeverityMedium,
					Description: fmt.Sprintf("%s contains %sg of sugar in one serving, which can spike blood glucose.",
						e.FoodName, num(formatDefault(e.Nutrition.Sugar))),
					FoodItem: e.FoodName,
				})
			}
			if containsFold(condition, "hypertension") && e.Nutrition.Sodium > hypertensionEntrySodium {
				conflicts = append(conflicts, models.ConflictResult{
					Type:     models.ConflictCondition,
					Severity: models.SeverityMedium,
					Description: fmt.Sprintf("%s contains %smg of sodium in one serving, which can raise blood pressure.",
						e.FoodName, num(formatWhole(e.Nutrition.Sodium))),
					FoodItem: e.FoodName,
				})
			}
		}
	}

	return conflicts
}

// explainCondition produces the explanatory sentence attached to an
// aggregate condition conflict.
func explainCondition(kind string, totals models.NutrientTotals) string {
	switch kind {
	case "diabetes":
		return fmt.Sprintf("High sugar intake makes blood glucose harder to control; with %sg of fiber logged, "+
			"pairing sweets with fiber, protein, or healthy fat can blunt the spike.", num(totals.Fiber))
	case "hypertension":
		return "Excess sodium causes the body to retain water, which raises blood pressure; " +
			"favor fresh foods over processed, canned, or restaurant dishes."
	case "heart":
		return "Saturated fat raises LDL cholesterol, a key driver of heart disease; " +
			"swap fatty meats and butter for fish, legumes, nuts, and olive oil."
	default:
		return ""
	}
}

// num renders a formatted value without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
