// ABOUTME: Tests for recommendations, health score, and status classification.
// ABOUTME: Covers thresholds, seasonal branching, penalties, bonus, and clamping.
package insight

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/nutri/internal/models"
)

// balancedDay spreads 2000 kcal, 80g protein, 30g fiber, 30g sugar and
// 1500mg sodium across n distinct foods.
func balancedDay(n int) []models.FoodEntry {
	f := float64(n)
	entries := make([]models.FoodEntry, n)
	for i := range entries {
		entries[i] = entry(fmt.Sprintf("Food %d", i), models.NutritionData{
			Calories: 2000 / f,
			Protein:  80 / f,
			Carbs:    250 / f,
			Fat:      60 / f,
			Fiber:    30 / f,
			Sugar:    30 / f,
			Sodium:   1500 / f,
		})
	}
	return entries
}

func titles(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func findRec(recs []models.Recommendation, title string) *models.Recommendation {
	for i := range recs {
		if recs[i].Title == title {
			return &recs[i]
		}
	}
	return nil
}

func TestRecommendEmptyInput(t *testing.T) {
	p := models.NewHealthProfile("Ada")
	recs := Recommend(p, nil, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	want := []string{"Optimize Protein Intake", "Increase Fiber Intake", "Seasonal Eating: Spring/Summer"}
	got := titles(recs)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	if recs[0].Priority != models.PriorityHigh {
		t.Errorf("protein priority = %s, want high", recs[0].Priority)
	}
	if recs[2].Priority != models.PriorityLow || recs[2].Type != models.RecommendationTCM {
		t.Errorf("seasonal = %+v", recs[2])
	}
}

func TestRecommendBalancedDay(t *testing.T) {
	recs := Recommend(models.NewHealthProfile("Ada"), balancedDay(4), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	if len(recs) != 1 {
		t.Fatalf("expected only the seasonal recommendation, got %v", titles(recs))
	}
}

func TestRecommendProteinPriority(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		protein float64
		want    models.Priority
	}{
		{10, models.PriorityHigh},
		{29.99, models.PriorityHigh},
		{30, models.PriorityMedium},
		{49.99, models.PriorityMedium},
		{50, ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.protein), func(t *testing.T) {
			entries := []models.FoodEntry{entry("Chicken", models.NutritionData{Protein: tt.protein})}
			r := findRec(Recommend(nil, entries, now), "Optimize Protein Intake")
			if tt.want == "" {
				if r != nil {
					t.Errorf("expected no protein recommendation")
				}
				return
			}
			if r == nil || r.Priority != tt.want {
				t.Errorf("protein recommendation = %+v, want priority %s", r, tt.want)
			}
		})
	}
}

func TestRecommendSodium(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		sodium float64
		want   models.Priority
	}{
		{2300, ""},
		{2301, models.PriorityMedium},
		{3000, models.PriorityMedium},
		{3001, models.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.sodium), func(t *testing.T) {
			entries := []models.FoodEntry{entry("Ramen", models.NutritionData{Sodium: tt.sodium})}
			r := findRec(Recommend(nil, entries, now), "Reduce Sodium Intake")
			if tt.want == "" {
				if r != nil {
					t.Error("expected no sodium recommendation")
				}
				return
			}
			if r == nil || r.Priority != tt.want {
				t.Errorf("sodium recommendation = %+v, want priority %s", r, tt.want)
			}
			if r != nil && !strings.Contains(r.Description, fmt.Sprint(tt.sodium)) {
				t.Errorf("description should interpolate total: %s", r.Description)
			}
		})
	}
}

func TestRecommendConditions(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithConditions("diabetes", "hypertension", "cardiac issues")
	recs := Recommend(p, balancedDay(4), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	for _, title := range []string{"Blood Sugar Management", "Blood Pressure Support", "Heart-Healthy Nutrition"} {
		r := findRec(recs, title)
		if r == nil {
			t.Errorf("missing %q in %v", title, titles(recs))
			continue
		}
		if r.Priority != models.PriorityHigh {
			t.Errorf("%s priority = %s, want high", title, r.Priority)
		}
	}
}

func TestRecommendSeasonalBranch(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Seasonal Eating: Spring/Summer"},
		{time.June, "Seasonal Eating: Spring/Summer"},
		{time.July, "Seasonal Eating: Fall/Winter"},
		{time.December, "Seasonal Eating: Fall/Winter"},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			recs := Recommend(nil, nil, time.Date(2024, tt.month, 10, 0, 0, 0, 0, time.UTC))
			var seasonal []models.Recommendation
			for _, r := range recs {
				if r.Type == models.RecommendationTCM {
					seasonal = append(seasonal, r)
				}
			}
			if len(seasonal) != 1 {
				t.Fatalf("expected exactly one seasonal recommendation, got %d", len(seasonal))
			}
			if seasonal[0].Title != tt.want {
				t.Errorf("seasonal title = %s, want %s", seasonal[0].Title, tt.want)
			}
		})
	}
}

func TestRecommendPortionControl(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	big := []models.FoodEntry{
		entry("Burger", models.NutritionData{Calories: 700}),
		entry("Pizza", models.NutritionData{Calories: 800}),
	}
	r := findRec(Recommend(nil, big, now), "Portion Control")
	if r == nil {
		t.Fatal("expected portion control recommendation")
	}
	if r.Priority != models.PriorityMedium || r.Type != models.RecommendationLifestyle {
		t.Errorf("portion control = %+v", r)
	}
	if last := Recommend(nil, big, now); last[len(last)-1].Title != "Portion Control" {
		t.Error("portion control should follow the seasonal recommendation")
	}

	even := []models.FoodEntry{
		entry("Burger", models.NutritionData{Calories: 600}),
		entry("Pizza", models.NutritionData{Calories: 600}),
	}
	if findRec(Recommend(nil, even, now), "Portion Control") != nil {
		t.Error("average of exactly 600 should not trigger portion control")
	}
}

func TestScoreEmptyInput(t *testing.T) {
	p := models.NewHealthProfile("Ada")
	// protein <30 (-1.5), fiber <15 (-1), calories <1200 (-1.5)
	if got := Score(p, nil, nil); got != 6 {
		t.Errorf("Score() = %v, want 6", got)
	}
}

func TestScore(t *testing.T) {
	high := models.ConflictResult{Severity: models.SeverityHigh}
	medium := models.ConflictResult{Severity: models.SeverityMedium}
	low := models.ConflictResult{Severity: models.SeverityLow}

	tests := []struct {
		name      string
		profile   *models.HealthProfile
		entries   []models.FoodEntry
		conflicts []models.ConflictResult
		want      float64
	}{
		{"balanced", nil, balancedDay(4), nil, 10},
		{"variety bonus clamps at ceiling", nil, balancedDay(5), nil, 10},
		{"high conflict counts twice", nil, balancedDay(4), []models.ConflictResult{high}, 6},
		{"medium conflict counts twice", nil, balancedDay(4), []models.ConflictResult{medium}, 8},
		{"low conflict counts once", nil, balancedDay(4), []models.ConflictResult{low}, 9.5},
		{"floor", nil, nil, []models.ConflictResult{high, high, high}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.profile, tt.entries, tt.conflicts); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreNutrientPenalties(t *testing.T) {
	tests := []struct {
		name string
		n    models.NutritionData
		want float64
	}{
		// base: calories 2000, protein 80, fiber 30 (no penalties)
		{"protein between 30 and 50", models.NutritionData{Calories: 2000, Protein: 40, Fiber: 30}, 9.5},
		{"protein above 150", models.NutritionData{Calories: 2000, Protein: 160, Fiber: 30}, 9.5},
		{"fiber between 15 and 25", models.NutritionData{Calories: 2000, Protein: 80, Fiber: 20}, 9.5},
		{"sodium above 2300", models.NutritionData{Calories: 2000, Protein: 80, Fiber: 30, Sodium: 2400}, 9},
		{"sodium above 3500", models.NutritionData{Calories: 2000, Protein: 80, Fiber: 30, Sodium: 3600}, 8},
		{"sugar above 50", models.NutritionData{Calories: 2000, Protein: 80, Fiber: 30, Sugar: 60}, 9},
		{"sugar above 100", models.NutritionData{Calories: 2000, Protein: 80, Fiber: 30, Sugar: 110}, 8},
		{"calories above 3000", models.NutritionData{Calories: 3100, Protein: 80, Fiber: 30}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []models.FoodEntry{entry("Meal", tt.n)}
			if got := Score(nil, entries, nil); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreConditionPenalties(t *testing.T) {
	entries := []models.FoodEntry{entry("Dessert Platter", models.NutritionData{Calories: 2000, Protein: 80, Fiber: 30, Sugar: 76, Sodium: 2100})}

	// sugar >50 (-1) applies to everyone
	if got := Score(models.NewHealthProfile("Ada"), entries, nil); got != 9 {
		t.Errorf("no conditions: Score() = %v, want 9", got)
	}

	p := models.NewHealthProfile("Ada").WithConditions("diabetes", "hypertension")
	if got := Score(p, entries, nil); got != 6.5 {
		t.Errorf("with conditions: Score() = %v, want 6.5", got)
	}
}

func TestScoreBounds(t *testing.T) {
	p := models.NewHealthProfile("Ada").WithAllergies("a", "e").WithConditions("diabetes", "hypertension", "heart")
	inputs := [][]models.FoodEntry{
		nil,
		balancedDay(1),
		balancedDay(8),
		{entry("Cake", models.NutritionData{Calories: 5000, Sugar: 400, Sodium: 9000, Fat: 300})},
	}

	for i, entries := range inputs {
		got := Score(p, entries, DetectConflicts(p, entries))
		if got < 1 || got > 10 {
			t.Errorf("input %d: Score() = %v out of [1,10]", i, got)
		}
	}
}

func TestClassify(t *testing.T) {
	high := models.ConflictResult{Severity: models.SeverityHigh}
	medium := models.ConflictResult{Severity: models.SeverityMedium}
	low := models.ConflictResult{Severity: models.SeverityLow}

	tests := []struct {
		name      string
		conflicts []models.ConflictResult
		want      models.InsightStatus
	}{
		{"none", nil, models.StatusSafe},
		{"low only", []models.ConflictResult{low, low}, models.StatusSafe},
		{"medium", []models.ConflictResult{low, medium}, models.StatusCaution},
		{"high", []models.ConflictResult{high}, models.StatusAvoid},
		{"medium then high", []models.ConflictResult{medium, high}, models.StatusAvoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.conflicts); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	high := models.ConflictResult{Severity: models.SeverityHigh}
	for _, base := range [][]models.ConflictResult{
		nil,
		{{Severity: models.SeverityMedium}},
		{{Severity: models.SeverityLow}},
	} {
		if got := Classify(append(base, high)); got != models.StatusAvoid {
			t.Errorf("adding a high conflict to %v gave %s, want avoid", base, got)
		}
	}
}
