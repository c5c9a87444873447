// ABOUTME: Insight output models: conflicts, recommendations, totals, weekly summary.
// ABOUTME: Insights are recomputed on every request; stored copies are only a cache.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ConflictType classifies a conflict finding.
type ConflictType string

const (
	ConflictAllergy         ConflictType = "allergy"
	ConflictCondition       ConflictType = "condition"
	// Reserved: no detection pass emits these yet.
	ConflictMedication      ConflictType = "medication"
	ConflictFoodInteraction ConflictType = "food_interaction"
)

// Severity is the seriousness of a conflict.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DailyTotalItem names a conflict derived from the day's aggregate rather than one entry.
const DailyTotalItem = "Daily total"

// ConflictResult is one finding from conflict detection.
type ConflictResult struct {
	Type        ConflictType `json:"type" yaml:"type"`
	Severity    Severity     `json:"severity" yaml:"severity"`
	Description string       `json:"description" yaml:"description"`
	FoodItem    string       `json:"food_item" yaml:"food_item"`
}

// RecommendationType classifies a recommendation.
type RecommendationType string

const (
	RecommendationDiet      RecommendationType = "diet"
	RecommendationTCM       RecommendationType = "tcm"
	RecommendationLifestyle RecommendationType = "lifestyle"
)

// Priority is the urgency of a recommendation.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Recommendation is a templated suggestion.
type Recommendation struct {
	Type        RecommendationType `json:"type" yaml:"type"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Priority    Priority           `json:"priority" yaml:"priority"`
}

// InsightStatus is the coarse classification of a day.
type InsightStatus string

const (
	StatusSafe    InsightStatus = "safe"
	StatusCaution InsightStatus = "caution"
	StatusAvoid   InsightStatus = "avoid"
)

// NutrientTotals is the sum of nutrition fields across entries.
type NutrientTotals struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Fiber    float64 `json:"fiber" yaml:"fiber"`
	Sugar    float64 `json:"sugar" yaml:"sugar"`
	Sodium   float64 `json:"sodium" yaml:"sodium"`
}

// WeeklySummary aggregates a trailing 7-day window.
type WeeklySummary struct {
	AverageCalories float64  `json:"average_calories" yaml:"average_calories"`
	AverageProtein  float64  `json:"average_protein" yaml:"average_protein"`
	AverageCarbs    float64  `json:"average_carbs" yaml:"average_carbs"`
	AverageFat      float64  `json:"average_fat" yaml:"average_fat"`
	VarietyScore    int      `json:"variety_score" yaml:"variety_score"`
	Insights        []string `json:"insights" yaml:"insights"`
	AIAnalysis      string   `json:"ai_analysis" yaml:"ai_analysis"`
	DaysTracked     int      `json:"days_tracked" yaml:"days_tracked"`
	UniqueFoods     int      `json:"unique_foods" yaml:"unique_foods"`
}

// Insight is the composed result for one profile and date.
type Insight struct {
	ID              uuid.UUID        `json:"id" yaml:"id"`
	ProfileID       uuid.UUID        `json:"profile_id" yaml:"profile_id"`
	Date            time.Time        `json:"date" yaml:"date"`
	Conflicts       []ConflictResult `json:"conflicts" yaml:"conflicts"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
	HealthScore     float64          `json:"health_score" yaml:"health_score"`
	Status          InsightStatus    `json:"status" yaml:"status"`
	WeeklySummary   *WeeklySummary   `json:"weekly_summary,omitempty" yaml:"weekly_summary,omitempty"`
	DailyTotals     *NutrientTotals  `json:"daily_totals,omitempty" yaml:"daily_totals,omitempty"`
	CreatedAt       time.Time        `json:"created_at" yaml:"created_at"`
}
