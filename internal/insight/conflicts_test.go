// ABOUTME: Tests for conflict detection passes.
// ABOUTME: Covers allergies, aggregate and per-entry condition checks, and boundaries.
package insight

import (
	"strings"
	"testing"

	"github.com/harperreed/nutri/internal/models"
)

// aggregateConflicts filters conflicts derived from the daily total.
func aggregateConflicts(conflicts []models.ConflictResult) []models.ConflictResult {
	var out []models.ConflictResult
	for _, c := range conflicts {
		if c.FoodItem == models.DailyTotalItem {
			out = append(out, c)
		}
	}
	return out
}

func TestDetectConflictsEmptyProfile(t *testing.T) {
	p := models.NewHealthProfile("Ada")
	entries := []models.FoodEntry{
		entry("Candy Bar", models.NutritionData{Sugar: 90, Sodium: 4000, Fat: 100}),
	}

	got := DetectConflicts(p, entries)
	if got == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("expected no conflicts, got %d", len(got))
	}
}

func TestDetectConflictsNilProfile(t *testing.T) {
	if got := DetectConflicts(nil, nil); len(got) != 0 {
		t.Errorf("expected no conflicts for nil profile, got %d", len(got))
	}
}

func TestDetectConflictsAllergy(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithAllergies("peanut")
	entries := []models.FoodEntry{
		entry("Peanut Butter Sandwich", models.NutritionData{Calories: 350}),
		entry("Apple", models.NutritionData{Calories: 95}),
	}

	got := DetectConflicts(p, entries)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %+v", len(got), got)
	}
	c := got[0]
	if c.Type != models.ConflictAllergy {
		t.Errorf("Type = %s, want allergy", c.Type)
	}
	if c.Severity != models.SeverityHigh {
		t.Errorf("Severity = %s, want high", c.Severity)
	}
	if c.FoodItem != "Peanut Butter Sandwich" {
		t.Errorf("FoodItem = %s, want Peanut Butter Sandwich", c.FoodItem)
	}
}

func TestDetectConflictsAllergyLabelWhitespace(t *testing.T) {
	p := models.NewHealthProfile("Ada")
	p.Allergies = []string{" peanut ", "  "}
	entries := []models.FoodEntry{
		entry("Peanut Butter", models.NutritionData{Calories: 190}),
	}

	got := DetectConflicts(p, entries)
	if len(got) != 1 {
		t.Fatalf("expected 1 conflict for padded allergy label, got %d: %+v", len(got), got)
	}
	if !strings.Contains(got[0].Description, "contain peanut,") {
		t.Errorf("Description should name the trimmed allergen, got %q", got[0].Description)
	}
}

func TestDetectConflictsMultipleAllergiesSameEntry(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithAllergies("PEANUT", "butter")
	entries := []models.FoodEntry{
		entry("Peanut Butter Sandwich", models.NutritionData{}),
	}

	got := DetectConflicts(p, entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 conflicts without de-duplication, got %d", len(got))
	}
	for _, c := range got {
		if c.Type != models.ConflictAllergy || c.FoodItem != "Peanut Butter Sandwich" {
			t.Errorf("unexpected conflict: %+v", c)
		}
	}
}

func TestDetectConflictsDiabetesScenario(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithConditions("Type 2 Diabetes")
	entries := []models.FoodEntry{
		entry("Soda", models.NutritionData{Sugar: 30}),
		entry("Cake", models.NutritionData{Sugar: 40}),
		entry("Yogurt", models.NutritionData{Sugar: 20}),
	}

	got := DetectConflicts(p, entries)
	if len(got) != 3 {
		t.Fatalf("expected 3 conflicts, got %d: %+v", len(got), got)
	}

	agg := got[0]
	if agg.FoodItem != models.DailyTotalItem || agg.Severity != models.SeverityHigh || agg.Type != models.ConflictCondition {
		t.Errorf("aggregate conflict = %+v, want high condition on daily total", agg)
	}
	if !strings.Contains(agg.Description, "90g") {
		t.Errorf("description should reference total: %s", agg.Description)
	}

	// Yogurt sits exactly at 20g and must not trigger.
	if got[1].FoodItem != "Soda" || got[2].FoodItem != "Cake" {
		t.Errorf("per-entry conflicts = %s, %s; want Soda, Cake", got[1].FoodItem, got[2].FoodItem)
	}
	for _, c := range got[1:] {
		if c.Severity != models.SeverityMedium {
			t.Errorf("per-entry severity = %s, want medium", c.Severity)
		}
	}
}

func TestDetectConflictsSugarBoundary(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithConditions("diabetes")

	tests := []struct {
		name     string
		sugars   []float64
		wantAgg  int
		severity models.Severity
	}{
		{"exactly 50 does not trigger", []float64{15, 15, 20}, 0, ""},
		{"50.01 triggers medium", []float64{15, 15, 20.01}, 1, models.SeverityMedium},
		{"exactly 80 stays medium", []float64{20, 20, 20, 20}, 1, models.SeverityMedium},
		{"above 80 is high", []float64{20, 20, 20, 20.5}, 1, models.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []models.FoodEntry
			for _, s := range tt.sugars {
				entries = append(entries, entry("Fruit", models.NutritionData{Sugar: s}))
			}
			agg := aggregateConflicts(DetectConflicts(p, entries))
			if len(agg) != tt.wantAgg {
				t.Fatalf("aggregate conflicts = %d, want %d", len(agg), tt.wantAgg)
			}
			if tt.wantAgg > 0 && agg[0].Severity != tt.severity {
				t.Errorf("Severity = %s, want %s", agg[0].Severity, tt.severity)
			}
		})
	}
}

func TestDetectConflictsHypertension(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithConditions("hypertension")

	tests := []struct {
		name         string
		sodium       []float64
		wantSeverity models.Severity
		wantEntries  int
	}{
		{"at limit", []float64{500, 500, 500, 500, 300}, "", 0},
		{"medium", []float64{400, 400, 400, 400, 400, 400}, models.SeverityMedium, 0},
		{"high with salty entry", []float64{1600, 1500}, models.SeverityHigh, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []models.FoodEntry
			for _, s := range tt.sodium {
				entries = append(entries, entry("Soup", models.NutritionData{Sodium: s}))
			}
			got := DetectConflicts(p, entries)
			agg := aggregateConflicts(got)

			if tt.wantSeverity == "" {
				if len(agg) != 0 {
					t.Errorf("expected no aggregate conflict, got %+v", agg)
				}
			} else if len(agg) != 1 || agg[0].Severity != tt.wantSeverity {
				t.Errorf("aggregate = %+v, want one %s", agg, tt.wantSeverity)
			}

			if perEntry := len(got) - len(agg); perEntry != tt.wantEntries {
				t.Errorf("per-entry conflicts = %d, want %d", perEntry, tt.wantEntries)
			}
		})
	}
}

func TestDetectConflictsHeart(t *testing.T) {
	entries := []models.FoodEntry{
		entry("Steak", models.NutritionData{Fat: 45}),
		entry("Fries", models.NutritionData{Fat: 25}),
	}

	tests := []struct {
		condition string
		want      int
	}{
		{"Heart disease", 1},
		{"cardiac arrhythmia", 1},
		{"heartburn", 1},
		{"asthma", 0},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			p := models.NewHealthProfile("Ada").WithConditions(tt.condition)
			got := DetectConflicts(p, entries)
			if len(got) != tt.want {
				t.Fatalf("conflicts = %d, want %d", len(got), tt.want)
			}
			if tt.want == 1 && (got[0].Severity != models.SeverityMedium || got[0].FoodItem != models.DailyTotalItem) {
				t.Errorf("conflict = %+v", got[0])
			}
		})
	}
}

func TestDetectConflictsHeartBelowThreshold(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithConditions("heart")
	below := []models.FoodEntry{entry("Cheese", models.NutritionData{Fat: 50})}
	if got := DetectConflicts(p, below); len(got) != 0 {
		t.Errorf("saturated fat at 15g should not trigger, got %d", len(got))
	}
}

func TestDetectConflictsOrdering(t *testing.T) {
	p := models.NewHealthProfile("Ada").
		WithAllergies("shrimp").
		WithConditions("diabetes", "hypertension")
	entries := []models.FoodEntry{
		entry("Shrimp Fried Rice", models.NutritionData{Sugar: 25, Sodium: 2600}),
		entry("Boba Tea", models.NutritionData{Sugar: 40}),
	}

	got := DetectConflicts(p, entries)
	wantItems := []string{
		"Shrimp Fried Rice",   // allergy
		models.DailyTotalItem, // diabetes aggregate
		models.DailyTotalItem, // hypertension aggregate
		"Shrimp Fried Rice",   // diabetes per-entry
		"Boba Tea",            // diabetes per-entry
		"Shrimp Fried Rice",   // hypertension per-entry
	}
	if len(got) != len(wantItems) {
		t.Fatalf("conflicts = %d, want %d: %+v", len(got), len(wantItems), got)
	}
	for i, item := range wantItems {
		if got[i].FoodItem != item {
			t.Errorf("conflict[%d].FoodItem = %s, want %s", i, got[i].FoodItem, item)
		}
	}
	if got[0].Type != models.ConflictAllergy {
		t.Errorf("first conflict should be allergy, got %s", got[0].Type)
	}
}
