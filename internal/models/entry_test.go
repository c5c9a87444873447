// ABOUTME: Tests for FoodEntry model, enums, and validation.
// ABOUTME: Validates constructor, builders, day normalization, and struct tags.
package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewFoodEntry(t *testing.T) {
	pid := uuid.New()
	e := NewFoodEntry(pid, "Apple", NutritionData{Calories: 95})

	if e.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if e.ProfileID != pid {
		t.Error("expected ProfileID to match")
	}
	if e.ServingUnit != UnitPiece || e.ServingSize != 1 {
		t.Errorf("serving = %v %s, want 1 piece", e.ServingSize, e.ServingUnit)
	}
	if e.MealType != MealSnack {
		t.Errorf("MealType = %s, want snack", e.MealType)
	}
	if h, m, s := e.EntryDate.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("EntryDate has time component: %v", e.EntryDate)
	}
}

func TestFoodEntryBuilders(t *testing.T) {
	at := time.Date(2024, time.May, 3, 18, 45, 0, 0, time.Local)
	e := NewFoodEntry(uuid.New(), "Rice", NutritionData{}).
		WithServing(1.5, UnitCup).
		WithMeal(MealDinner).
		WithDate(at)

	if e.ServingSize != 1.5 || e.ServingUnit != UnitCup {
		t.Errorf("serving = %v %s", e.ServingSize, e.ServingUnit)
	}
	if e.MealType != MealDinner {
		t.Errorf("MealType = %s", e.MealType)
	}
	if got := e.EntryDate.Format(DateLayout); got != "2024-05-03" {
		t.Errorf("EntryDate = %s, want 2024-05-03", got)
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-12-31")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if !d.Equal(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDay = %v", d)
	}
	if _, err := ParseDay("31/12/2024"); err == nil {
		t.Error("expected error for bad layout")
	}
}

func TestEnumValidators(t *testing.T) {
	for _, u := range AllServingUnits {
		if !IsValidServingUnit(string(u)) {
			t.Errorf("IsValidServingUnit(%s) = false", u)
		}
	}
	if IsValidServingUnit("bucket") {
		t.Error("IsValidServingUnit(bucket) = true")
	}
	for _, m := range AllMealTypes {
		if !IsValidMealType(string(m)) {
			t.Errorf("IsValidMealType(%s) = false", m)
		}
	}
	if IsValidMealType("brunch") {
		t.Error("IsValidMealType(brunch) = true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{
			name:  "valid entry",
			value: NewFoodEntry(uuid.New(), "Oats", NutritionData{Calories: 150, Fiber: 4}),
		},
		{
			name:    "missing food name",
			value:   NewFoodEntry(uuid.New(), "", NutritionData{}),
			wantErr: true,
		},
		{
			name:    "negative sodium",
			value:   NewFoodEntry(uuid.New(), "Chips", NutritionData{Sodium: -1}),
			wantErr: true,
		},
		{
			name:    "negative vitamin",
			value:   NewFoodEntry(uuid.New(), "Juice", NutritionData{Vitamins: map[string]float64{"C": -2}}),
			wantErr: true,
		},
		{
			name:    "bad unit",
			value:   NewFoodEntry(uuid.New(), "Soup", NutritionData{}).WithServing(1, ServingUnit("bowl")),
			wantErr: true,
		},
		{
			name:    "zero serving",
			value:   NewFoodEntry(uuid.New(), "Soup", NutritionData{}).WithServing(0, UnitCup),
			wantErr: true,
		},
		{
			name:  "valid profile",
			value: NewHealthProfile("Ada").WithBirth(1990, 5),
		},
		{
			name:    "profile missing name",
			value:   NewHealthProfile(""),
			wantErr: true,
		},
		{
			name:    "profile bad month",
			value:   NewHealthProfile("Ada").WithBirth(1990, 13),
			wantErr: true,
		},
		{
			name:    "profile bad smoking status",
			value:   NewHealthProfile("Ada").WithSmoking(SmokingStatus("sometimes"), ""),
			wantErr: true,
		},
		{
			name:    "medication without name",
			value:   NewHealthProfile("Ada").WithMedications(Medication{Dosage: "5mg"}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("expected ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
