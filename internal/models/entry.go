// ABOUTME: FoodEntry and NutritionData models for logged consumption events.
// ABOUTME: Defines serving-unit and meal-type enums and calendar-day helpers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical calendar-day format.
const DateLayout = "2006-01-02"

// ServingUnit is the unit a serving size is measured in.
type ServingUnit string

const (
	UnitPiece      ServingUnit = "piece"
	UnitCup        ServingUnit = "cup"
	UnitGram       ServingUnit = "gram"
	UnitOunce      ServingUnit = "ounce"
	UnitTablespoon ServingUnit = "tablespoon"
	UnitTeaspoon   ServingUnit = "teaspoon"
)

// AllServingUnits returns all valid serving units.
var AllServingUnits = []ServingUnit{
	UnitPiece, UnitCup, UnitGram, UnitOunce, UnitTablespoon, UnitTeaspoon,
}

// IsValidServingUnit checks if a string is a valid serving unit.
func IsValidServingUnit(s string) bool {
	for _, u := range AllServingUnits {
		if string(u) == s {
			return true
		}
	}
	return false
}

// MealType is the meal an entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes returns all valid meal types.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, m := range AllMealTypes {
		if string(m) == s {
			return true
		}
	}
	return false
}

// NutritionData is a nutrition snapshot already scaled to the logged serving.
// Fiber, sugar and sodium are optional and read as zero when absent.
type NutritionData struct {
	Calories float64            `json:"calories" yaml:"calories" validate:"gte=0"`
	Protein  float64            `json:"protein" yaml:"protein" validate:"gte=0"`
	Carbs    float64            `json:"carbs" yaml:"carbs" validate:"gte=0"`
	Fat      float64            `json:"fat" yaml:"fat" validate:"gte=0"`
	Fiber    float64            `json:"fiber,omitempty" yaml:"fiber,omitempty" validate:"gte=0"`
	Sugar    float64            `json:"sugar,omitempty" yaml:"sugar,omitempty" validate:"gte=0"`
	Sodium   float64            `json:"sodium,omitempty" yaml:"sodium,omitempty" validate:"gte=0"`
	Vitamins map[string]float64 `json:"vitamins,omitempty" yaml:"vitamins,omitempty" validate:"dive,gte=0"`
	Minerals map[string]float64 `json:"minerals,omitempty" yaml:"minerals,omitempty" validate:"dive,gte=0"`
}

// FoodEntry is one logged consumption event.
type FoodEntry struct {
	ID          uuid.UUID     `json:"id" yaml:"id"`
	ProfileID   uuid.UUID     `json:"profile_id" yaml:"profile_id"`
	FoodName    string        `json:"food_name" yaml:"food_name" validate:"required"`
	ServingSize float64       `json:"serving_size" yaml:"serving_size" validate:"gt=0"`
	ServingUnit ServingUnit   `json:"serving_unit" yaml:"serving_unit" validate:"oneof=piece cup gram ounce tablespoon teaspoon"`
	MealType    MealType      `json:"meal_type" yaml:"meal_type" validate:"oneof=breakfast lunch dinner snack"`
	Nutrition   NutritionData `json:"nutrition" yaml:"nutrition"`
	EntryDate   time.Time     `json:"entry_date" yaml:"entry_date"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
}

// NewFoodEntry creates an entry for today with a single piece serving as a snack.
func NewFoodEntry(profileID uuid.UUID, foodName string, nutrition NutritionData) *FoodEntry {
	now := time.Now()
	return &FoodEntry{
		ID:          uuid.New(),
		ProfileID:   profileID,
		FoodName:    foodName,
		ServingSize: 1,
		ServingUnit: UnitPiece,
		MealType:    MealSnack,
		Nutrition:   nutrition,
		EntryDate:   Day(now),
		CreatedAt:   now,
	}
}

// WithServing sets the serving size and unit.
func (e *FoodEntry) WithServing(size float64, unit ServingUnit) *FoodEntry {
	e.ServingSize = size
	e.ServingUnit = unit
	return e
}

// WithMeal sets the meal type.
func (e *FoodEntry) WithMeal(meal MealType) *FoodEntry {
	e.MealType = meal
	return e
}

// WithDate sets the entry date, dropping any time component.
func (e *FoodEntry) WithDate(t time.Time) *FoodEntry {
	e.EntryDate = Day(t)
	return e
}

// Day normalizes t to midnight UTC of its calendar day in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
