// ABOUTME: Export and import functionality for nutrition data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats across every backend.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/nutri/internal/insight"
	"github.com/harperreed/nutri/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the version stamped on every export.
const ExportVersion = "1.0"

// ExportData represents the full export format for nutrition data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Profiles   []*models.HealthProfile `json:"profiles" yaml:"profiles"`
	Entries    []*models.FoodEntry     `json:"entries" yaml:"entries"`
	Insights   []*models.Insight       `json:"insights,omitempty" yaml:"insights,omitempty"`
}

func newExportData(profiles []*models.HealthProfile, entries []*models.FoodEntry, insights []*models.Insight) *ExportData {
	if profiles == nil {
		profiles = []*models.HealthProfile{}
	}
	if entries == nil {
		entries = []*models.FoodEntry{}
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "nutri",
		Profiles:   profiles,
		Entries:    entries,
		Insights:   insights,
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	profiles, err := d.ListProfiles()
	if err != nil {
		return nil, err
	}

	var entries []*models.FoodEntry
	for _, p := range profiles {
		pe, err := d.ListEntries(p.ID, nil)
		if err != nil {
			return nil, err
		}
		entries = append(entries, pe...)
	}

	insights, err := d.listInsights()
	if err != nil {
		return nil, err
	}

	return newExportData(profiles, entries, insights), nil
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return importInto(d, data)
}

// importInto loads profiles first so entries and insights can reference them.
func importInto(repo Repository, data *ExportData) error {
	for _, p := range data.Profiles {
		if err := repo.CreateProfile(p); err != nil {
			return fmt.Errorf("import profile %s: %w", p.ID, err)
		}
	}
	for _, e := range data.Entries {
		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry %s: %w", e.ID, err)
		}
	}
	for _, in := range data.Insights {
		if err := repo.SaveInsight(in); err != nil {
			return fmt.Errorf("import insight %s: %w", in.ID, err)
		}
	}
	return nil
}

// FilterSince drops entries and insights dated before since. Profiles are kept.
func (e *ExportData) FilterSince(since time.Time) {
	day := models.Day(since)
	var entries []*models.FoodEntry
	for _, en := range e.Entries {
		if !en.EntryDate.Before(day) {
			entries = append(entries, en)
		}
	}
	if entries == nil {
		entries = []*models.FoodEntry{}
	}
	e.Entries = entries

	var insights []*models.Insight
	for _, in := range e.Insights {
		if !in.Date.Before(day) {
			insights = append(insights, in)
		}
	}
	e.Insights = insights
}

// ExportJSON exports data as indented JSON.
func ExportJSON(repo Repository, since *time.Time) ([]byte, error) {
	data, err := exportData(repo, since)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&data)
}

func exportData(repo Repository, since *time.Time) (*ExportData, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	if since != nil {
		data.FilterSince(*since)
	}
	return data, nil
}

type yamlProfile struct {
	ID         string                 `yaml:"id"`
	Name       string                 `yaml:"name"`
	Conditions []string               `yaml:"conditions,omitempty"`
	Allergies  []string               `yaml:"allergies,omitempty"`
	Days       map[string][]yamlEntry `yaml:"days"`
}

type yamlEntry struct {
	ID       string  `yaml:"id"`
	Food     string  `yaml:"food"`
	Meal     string  `yaml:"meal"`
	Serving  string  `yaml:"serving"`
	Calories float64 `yaml:"calories"`
	Protein  float64 `yaml:"protein"`
	Carbs    float64 `yaml:"carbs"`
	Fat      float64 `yaml:"fat"`
}

// ExportYAML exports data as YAML with entries grouped by profile and day.
func ExportYAML(repo Repository, since *time.Time) ([]byte, error) {
	data, err := exportData(repo, since)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string        `yaml:"version"`
		ExportedAt string        `yaml:"exported_at"`
		Tool       string        `yaml:"tool"`
		Profiles   []yamlProfile `yaml:"profiles"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Profiles:   make([]yamlProfile, 0, len(data.Profiles)),
	}

	byProfile := groupEntries(data.Entries)
	for _, p := range data.Profiles {
		yp := yamlProfile{
			ID:         p.ID.String()[:8],
			Name:       p.Name,
			Conditions: p.MedicalConditions,
			Allergies:  p.Allergies,
			Days:       make(map[string][]yamlEntry),
		}
		for _, e := range byProfile[p.ID.String()] {
			day := e.EntryDate.Format(models.DateLayout)
			yp.Days[day] = append(yp.Days[day], yamlEntry{
				ID:       e.ID.String()[:8],
				Food:     e.FoodName,
				Meal:     string(e.MealType),
				Serving:  servingLabel(e),
				Calories: e.Nutrition.Calories,
				Protein:  e.Nutrition.Protein,
				Carbs:    e.Nutrition.Carbs,
				Fat:      e.Nutrition.Fat,
			})
		}
		yamlData.Profiles = append(yamlData.Profiles, yp)
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown exports a human-readable food diary per profile and day.
func ExportMarkdown(repo Repository, since *time.Time) (string, error) {
	data, err := exportData(repo, since)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Nutrition Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	byProfile := groupEntries(data.Entries)
	for _, p := range data.Profiles {
		sb.WriteString(fmt.Sprintf("## %s\n\n", p.Name))
		if len(p.MedicalConditions) > 0 {
			sb.WriteString(fmt.Sprintf("Conditions: %s\n\n", strings.Join(p.MedicalConditions, ", ")))
		}
		if len(p.Allergies) > 0 {
			sb.WriteString(fmt.Sprintf("Allergies: %s\n\n", strings.Join(p.Allergies, ", ")))
		}

		entries := byProfile[p.ID.String()]
		if len(entries) == 0 {
			sb.WriteString("_No entries._\n\n")
			continue
		}

		days := make(map[string][]models.FoodEntry)
		var order []string
		for _, e := range entries {
			day := e.EntryDate.Format(models.DateLayout)
			if _, ok := days[day]; !ok {
				order = append(order, day)
			}
			days[day] = append(days[day], *e)
		}
		sort.Strings(order)

		for _, day := range order {
			sb.WriteString(fmt.Sprintf("### %s\n\n", day))
			sb.WriteString("| Meal | Food | Serving | Calories | Protein | Carbs | Fat |\n")
			sb.WriteString("|------|------|---------|----------|---------|-------|-----|\n")
			for _, e := range days[day] {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %sg | %sg | %sg |\n",
					e.MealType, e.FoodName, servingLabel(&e),
					amount(e.Nutrition.Calories, 0),
					amount(e.Nutrition.Protein, insight.DefaultDecimals),
					amount(e.Nutrition.Carbs, insight.DefaultDecimals),
					amount(e.Nutrition.Fat, insight.DefaultDecimals)))
			}
			t := insight.Aggregate(days[day])
			sb.WriteString(fmt.Sprintf("\n**Totals:** %s kcal, %sg protein, %sg carbs, %sg fat, %smg sodium\n\n",
				amount(t.Calories, 0),
				amount(t.Protein, insight.DefaultDecimals),
				amount(t.Carbs, insight.DefaultDecimals),
				amount(t.Fat, insight.DefaultDecimals),
				amount(t.Sodium, 0)))
		}
	}

	return sb.String(), nil
}

func groupEntries(entries []*models.FoodEntry) map[string][]*models.FoodEntry {
	out := make(map[string][]*models.FoodEntry)
	for _, e := range entries {
		key := e.ProfileID.String()
		out[key] = append(out[key], e)
	}
	return out
}

// amount renders v rounded to decimals without trailing zeros.
func amount(v float64, decimals int) string {
	return strconv.FormatFloat(insight.Format(v, decimals), 'f', -1, 64)
}

func servingLabel(e *models.FoodEntry) string {
	return amount(e.ServingSize, insight.DefaultDecimals) + " " + string(e.ServingUnit)
}
