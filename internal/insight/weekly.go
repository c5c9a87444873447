// ABOUTME: Weekly summary over a trailing 7-day window of entries.
// ABOUTME: Averages per tracked day, scores variety, and templates narrative text.
package insight

import (
	"fmt"
	"strings"

	"github.com/harperreed/nutri/internal/models"
)

const maxVariety = 10

// Summarize builds the weekly summary. Averages divide by the number of
// distinct days present among the entries, never less than one.
func Summarize(profile *models.HealthProfile, weekEntries []models.FoodEntry) models.WeeklySummary {
	totals := Aggregate(weekEntries)
	days := distinctDays(weekEntries)
	divisor := float64(max(days, 1))
	unique := distinctFoods(weekEntries)

	s := models.WeeklySummary{
		AverageCalories: formatWhole(totals.Calories / divisor),
		AverageProtein:  formatDefault(totals.Protein / divisor),
		AverageCarbs:    formatDefault(totals.Carbs / divisor),
		AverageFat:      formatDefault(totals.Fat / divisor),
		VarietyScore:    min(maxVariety, unique),
		DaysTracked:     days,
		UniqueFoods:     unique,
	}
	avgFiber := formatDefault(totals.Fiber / divisor)

	insights := []string{}
	switch {
	case s.AverageCalories < 1200:
		insights = append(insights, fmt.Sprintf("Your average daily intake of %s calories is below recommended levels. Consider adding nutrient-dense snacks.", num(s.AverageCalories)))
	case s.AverageCalories > 2500:
		insights = append(insights, fmt.Sprintf("Your average daily intake of %s calories is above typical needs. Watch portion sizes.", num(s.AverageCalories)))
	}
	if s.AverageProtein < 50 {
		insights = append(insights, fmt.Sprintf("Average protein of %sg per day is low. Include protein with every meal.", num(s.AverageProtein)))
	}
	if avgFiber < 25 {
		insights = append(insights, fmt.Sprintf("Average fiber of %sg per day is below the 25g goal. Add whole grains, fruit, and vegetables.", num(avgFiber)))
	}
	if s.VarietyScore < 5 {
		insights = append(insights, fmt.Sprintf("Only %d different foods this week. Greater variety covers more micronutrients.", unique))
	}
	if len(insights) == 0 {
		insights = append(insights, "Your nutrition this week looks well balanced. Keep up the good work!")
	}
	s.Insights = insights
	s.AIAnalysis = weeklyAnalysis(profile, s, avgFiber)

	return s
}

// weeklyAnalysis renders the free-text analysis paragraph.
func weeklyAnalysis(profile *models.HealthProfile, s models.WeeklySummary, avgFiber float64) string {
	if s.DaysTracked == 0 {
		return "No meals were logged in the past 7 days. Log a few days of meals to receive a weekly analysis."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Over %d tracked day(s) you averaged %s calories, %sg protein, %sg carbohydrates, and %sg fat per day, ",
		s.DaysTracked, num(s.AverageCalories), num(s.AverageProtein), num(s.AverageCarbs), num(s.AverageFat)))
	sb.WriteString(fmt.Sprintf("eating %d distinct food(s) for a variety score of %d/%d. ", s.UniqueFoods, s.VarietyScore, maxVariety))

	macroCalories := s.AverageProtein*4 + s.AverageCarbs*4 + s.AverageFat*9
	if macroCalories > 0 {
		sb.WriteString(fmt.Sprintf("Your macro split is roughly %s%% protein, %s%% carbohydrates, and %s%% fat. ",
			num(formatWhole(s.AverageProtein*4/macroCalories*100)),
			num(formatWhole(s.AverageCarbs*4/macroCalories*100)),
			num(formatWhole(s.AverageFat*9/macroCalories*100))))
	}

	switch {
	case s.VarietyScore >= 8:
		sb.WriteString("Dietary variety is excellent. ")
	case s.VarietyScore >= 5:
		sb.WriteString("Dietary variety is good; a few new foods would round it out. ")
	default:
		sb.WriteString("Dietary variety is limited; try rotating in new vegetables, grains, and proteins. ")
	}

	if avgFiber < 25 {
		sb.WriteString("Fiber is the main gap to close this week.")
	} else {
		sb.WriteString("Fiber intake is on target.")
	}

	if profile != nil && len(profile.MedicalConditions) > 0 {
		sb.WriteString(fmt.Sprintf(" Keep your %s in mind when planning next week's meals.", strings.Join(profile.MedicalConditions, ", ")))
	}

	return sb.String()
}
