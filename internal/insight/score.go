// ABOUTME: Heuristic health score combining conflicts and nutrition totals.
// ABOUTME: Starts at 10, subtracts penalties, clamps to [1,10] at one decimal.
package insight

import (
	"github.com/harperreed/nutri/internal/models"
)

const (
	maxScore = 10.0
	minScore = 1.0
)

// Score computes the day's health score. Severity deductions are applied
// twice: once per conflict and again as a high/medium tally at the end.
func Score(profile *models.HealthProfile, entries []models.FoodEntry, conflicts []models.ConflictResult) float64 {
	totals := Aggregate(entries)
	score := maxScore

	var high, medium int
	for _, c := range conflicts {
		switch c.Severity {
		case models.SeverityHigh:
			score -= 2
			high++
		case models.SeverityMedium:
			score -= 1
			medium++
		case models.SeverityLow:
			score -= 0.5
		}
	}

	switch {
	case totals.Protein < 30:
		score -= 1.5
	case totals.Protein < 50:
		score -= 0.5
	}
	if totals.Protein > 150 {
		score -= 0.5
	}

	switch {
	case totals.Fiber < 15:
		score -= 1
	case totals.Fiber < 25:
		score -= 0.5
	}

	switch {
	case totals.Sodium > 3500:
		score -= 2
	case totals.Sodium > 2300:
		score -= 1
	}

	switch {
	case totals.Sugar > 100:
		score -= 2
	case totals.Sugar > 50:
		score -= 1
	}

	if totals.Calories < 1200 {
		score -= 1.5
	}
	if totals.Calories > 3000 {
		score -= 1
	}

	if distinctFoods(entries) >= 5 {
		score += 0.5
	}

	if profile != nil {
		if profile.HasCondition("diabetes") && totals.Sugar > 75 {
			score -= 1.5
		}
		if profile.HasCondition("hypertension") && totals.Sodium > 2000 {
			score -= 1
		}
	}

	score -= float64(high) * 2
	score -= float64(medium) * 1

	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}
	return Format(score, 1)
}

// Classify maps conflicts to a status. Low-severity findings alone stay safe.
func Classify(conflicts []models.ConflictResult) models.InsightStatus {
	status := models.StatusSafe
	for _, c := range conflicts {
		switch c.Severity {
		case models.SeverityHigh:
			return models.StatusAvoid
		case models.SeverityMedium:
			status = models.StatusCaution
		}
	}
	return status
}
