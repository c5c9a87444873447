// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export plus JSON import.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/nutri/internal/models"
	"gopkg.in/yaml.v3"
)

func seedExport(t *testing.T, repo Repository) (*models.HealthProfile, *models.FoodEntry, *models.FoodEntry) {
	t.Helper()
	p := models.NewHealthProfile("Ada").WithConditions("diabetes").WithAllergies("peanut")
	mustCreateProfile(t, repo, p)

	old := models.NewFoodEntry(p.ID, "Pancakes", models.NutritionData{Calories: 520, Protein: 9.5, Sodium: 800}).
		WithMeal(models.MealBreakfast).WithDate(testDay.AddDate(0, 0, -30))
	recent := models.NewFoodEntry(p.ID, "Lentil Soup", models.NutritionData{Calories: 230, Protein: 18, Carbs: 40, Fat: 0.8, Sodium: 440}).
		WithServing(1.5, models.UnitCup).WithMeal(models.MealLunch).WithDate(testDay)
	mustCreateEntry(t, repo, old)
	mustCreateEntry(t, repo, recent)
	return p, old, recent
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	p, _, _ := seedExport(t, db)

	data, err := ExportJSON(db, nil)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if exported.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, exported.Version)
	}
	if exported.Tool != "nutri" {
		t.Errorf("Expected tool nutri, got %s", exported.Tool)
	}
	if len(exported.Profiles) != 1 || exported.Profiles[0].ID != p.ID {
		t.Errorf("Expected the seeded profile, got %+v", exported.Profiles)
	}
	if len(exported.Entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(exported.Entries))
	}
}

func TestExportJSONSince(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	_, _, recent := seedExport(t, db)

	since := testDay.AddDate(0, 0, -7)
	data, err := ExportJSON(db, &since)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(exported.Profiles) != 1 {
		t.Errorf("profiles should survive the since filter, got %d", len(exported.Profiles))
	}
	if len(exported.Entries) != 1 || exported.Entries[0].ID != recent.ID {
		t.Errorf("expected only the recent entry, got %d", len(exported.Entries))
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExport(t, db)

	data, err := ExportYAML(db, nil)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if yamlData["version"] != ExportVersion {
		t.Errorf("Expected version %s, got %v", ExportVersion, yamlData["version"])
	}
	if yamlData["tool"] != "nutri" {
		t.Errorf("Expected tool nutri, got %v", yamlData["tool"])
	}

	profiles, ok := yamlData["profiles"].([]interface{})
	if !ok || len(profiles) != 1 {
		t.Fatalf("Expected one profile, got %v", yamlData["profiles"])
	}
	days, ok := profiles[0].(map[string]interface{})["days"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected days to be a map")
	}
	if _, ok := days["2024-03-15"]; !ok {
		t.Errorf("Expected 2024-03-15 in days, got %v", days)
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExport(t, db)

	md, err := ExportMarkdown(db, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Nutrition Export",
		"## Ada",
		"Conditions: diabetes",
		"Allergies: peanut",
		"### 2024-03-15",
		"| lunch | Lentil Soup | 1.5 cup | 230 | 18g | 40g | 0.8g |",
		"**Totals:** 230 kcal, 18g protein, 40g carbs, 0.8g fat, 440mg sodium",
		"Pancakes",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, md)
		}
	}
}

func TestExportMarkdownWithSince(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExport(t, db)

	since := testDay.AddDate(0, 0, -7)
	md, err := ExportMarkdown(db, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown with since failed: %v", err)
	}
	if !strings.Contains(md, "Lentil Soup") {
		t.Error("Expected recent entry")
	}
	if strings.Contains(md, "Pancakes") {
		t.Error("Should not contain old entry")
	}
}

func TestExportMarkdownProfileWithoutEntries(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	mustCreateProfile(t, db, models.NewHealthProfile("Empty"))

	md, err := ExportMarkdown(db, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "_No entries._") {
		t.Errorf("Expected empty marker, got:\n%s", md)
	}
}

func TestImportJSON(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	jsonData := `{
		"version": "1.0",
		"exported_at": "2026-01-31T12:00:00Z",
		"tool": "nutri",
		"profiles": [
			{
				"id": "11111111-1111-4111-8111-111111111111",
				"name": "Imported",
				"medical_conditions": ["hypertension"],
				"allergies": [],
				"medications": [],
				"smoking_status": "never",
				"created_at": "2026-01-31T08:00:00Z",
				"updated_at": "2026-01-31T08:00:00Z"
			}
		],
		"entries": [
			{
				"id": "22222222-2222-4222-8222-222222222222",
				"profile_id": "11111111-1111-4111-8111-111111111111",
				"food_name": "Miso Soup",
				"serving_size": 1,
				"serving_unit": "cup",
				"meal_type": "dinner",
				"nutrition": {"calories": 84, "protein": 6, "carbs": 8, "fat": 3, "sodium": 1200},
				"entry_date": "2026-01-31T00:00:00Z",
				"created_at": "2026-01-31T19:00:00Z"
			}
		]
	}`

	if err := ImportJSON(db, []byte(jsonData)); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	p, err := db.GetProfile("11111111")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Name != "Imported" || !p.HasCondition("hypertension") {
		t.Errorf("profile mismatch: %+v", p)
	}

	day := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	entries, err := db.ListEntries(p.ID, &day)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Nutrition.Sodium != 1200 {
		t.Errorf("expected imported entry, got %+v", entries)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := ImportJSON(db, []byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
