// ABOUTME: Threshold-driven recommendation rules over daily totals and profile.
// ABOUTME: Always appends one seasonal suggestion that branches on calendar month.
package insight

import (
	"fmt"
	"time"

	"github.com/harperreed/nutri/internal/models"
)

const (
	proteinTarget      = 50.0
	proteinLow         = 30.0
	fiberTarget        = 25.0
	sodiumLimit        = 2300.0
	sodiumHigh         = 3000.0
	portionCaloriesMax = 600.0
)

// Recommend produces recommendations for the day's entries. now selects the
// seasonal branch: January through June reads as spring/summer.
func Recommend(profile *models.HealthProfile, entries []models.FoodEntry, now time.Time) []models.Recommendation {
	totals := Aggregate(entries)
	recs := []models.Recommendation{}

	if totals.Protein < proteinTarget {
		priority := models.PriorityMedium
		if totals.Protein < proteinLow {
			priority = models.PriorityHigh
		}
		recs = append(recs, models.Recommendation{
			Type:  models.RecommendationDiet,
			Title: "Optimize Protein Intake",
			Description: fmt.Sprintf("You've logged %sg of protein today, below the %sg target. "+
				"Add lean meats, fish, eggs, tofu, legumes, or Greek yogurt to support muscle repair and satiety.",
				num(totals.Protein), num(proteinTarget)),
			Priority: priority,
		})
	}

	if totals.Fiber < fiberTarget {
		recs = append(recs, models.Recommendation{
			Type:  models.RecommendationDiet,
			Title: "Increase Fiber Intake",
			Description: fmt.Sprintf("Fiber intake is %sg today against a %sg goal. "+
				"Whole grains, beans, berries, and leafy vegetables improve digestion and steady blood sugar.",
				num(totals.Fiber), num(fiberTarget)),
			Priority: models.PriorityMedium,
		})
	}

	if totals.Sodium > sodiumLimit {
		priority := models.PriorityMedium
		if totals.Sodium > sodiumHigh {
			priority = models.PriorityHigh
		}
		recs = append(recs, models.Recommendation{
			Type:  models.RecommendationDiet,
			Title: "Reduce Sodium Intake",
			Description: fmt.Sprintf("Sodium reached %smg today, over the %smg daily limit. "+
				"Cut back on processed foods, sauces, and added salt; season with herbs, citrus, or spices instead.",
				num(totals.Sodium), num(sodiumLimit)),
			Priority: priority,
		})
	}

	if profile != nil {
		for _, condition := range profile.MedicalConditions {
			if containsFold(condition, "diabetes") {
				recs = append(recs, models.Recommendation{
					Type:  models.RecommendationDiet,
					Title: "Blood Sugar Management",
					Description: fmt.Sprintf("With %s, keep sugar low (%sg logged today) and favor low-glycemic carbohydrates "+
						"such as oats, quinoa, and legumes. Spread carbohydrates evenly across meals.",
						condition, num(totals.Sugar)),
					Priority: models.PriorityHigh,
				})
			}
			if containsFold(condition, "hypertension") {
				recs = append(recs, models.Recommendation{
					Type:  models.RecommendationDiet,
					Title: "Blood Pressure Support",
					Description: fmt.Sprintf("With %s, aim for potassium-rich foods like bananas, spinach, and beans "+
						"and keep sodium under %smg (%smg logged today).",
						condition, num(sodiumLimit), num(totals.Sodium)),
					Priority: models.PriorityHigh,
				})
			}
			if containsFold(condition, "heart") || containsFold(condition, "cardiac") {
				recs = append(recs, models.Recommendation{
					Type:  models.RecommendationDiet,
					Title: "Heart-Healthy Nutrition",
					Description: fmt.Sprintf("With %s, choose omega-3 rich fish, nuts, and olive oil and limit saturated fat "+
						"(%sg total fat logged today).",
						condition, num(totals.Fat)),
					Priority: models.PriorityHigh,
				})
			}
		}
	}

	recs = append(recs, seasonalRecommendation(now))

	avgCalories := totals.Calories / float64(max(len(entries), 1))
	if avgCalories > portionCaloriesMax {
		recs = append(recs, models.Recommendation{
			Type:  models.RecommendationLifestyle,
			Title: "Portion Control",
			Description: fmt.Sprintf("Your entries average %s calories each. Smaller plates, slower eating, "+
				"and splitting large meals into snacks help keep portions in check.",
				num(formatWhole(avgCalories))),
			Priority: models.PriorityMedium,
		})
	}

	return recs
}

func seasonalRecommendation(now time.Time) models.Recommendation {
	if now.Month() <= time.June {
		return models.Recommendation{
			Type:  models.RecommendationTCM,
			Title: "Seasonal Eating: Spring/Summer",
			Description: "Warmer months favor cooling foods: cucumber, watermelon, leafy greens, mung beans, and mint tea. " +
				"Stay hydrated and go easy on fried and heavily spiced dishes.",
			Priority: models.PriorityLow,
		}
	}
	return models.Recommendation{
		Type:  models.RecommendationTCM,
		Title: "Seasonal Eating: Fall/Winter",
		Description: "Cooler months favor warming foods: ginger, cinnamon, root vegetables, soups, and slow-cooked stews. " +
			"Limit raw and iced foods to support digestion.",
		Priority: models.PriorityLow,
	}
}
