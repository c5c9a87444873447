// ABOUTME: MCP tool implementations for the nutrition tracker.
// ABOUTME: Provides profile management, food logging, and daily insights.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_profile",
		Description: "Create a health profile with conditions, allergies, and medications",
	}, s.handleCreateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get a health profile with derived age and BMI",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_profile",
		Description: "Update selected fields of a health profile",
	}, s.handleUpdateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_profiles",
		Description: "List all health profiles",
	}, s.handleListProfiles)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_food",
		Description: "Log a food entry with nutrition already scaled to the serving",
	}, s.handleLogFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List food entries for a day (defaults to today)",
	}, s.handleListEntries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_entry",
		Description: "Delete a food entry by ID or ID prefix",
	}, s.handleDeleteEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_insight",
		Description: "Compute the nutrition insight for a day: conflicts, recommendations, health score, and weekly summary",
	}, s.handleGetInsight)
}

// Tool input/output types

type medicationInput struct {
	Name      string `json:"name" jsonschema:"Medication name"`
	Dosage    string `json:"dosage,omitempty" jsonschema:"Dosage, e.g. 500mg"`
	Frequency string `json:"frequency,omitempty" jsonschema:"How often it is taken"`
}

type createProfileInput struct {
	Name              string            `json:"name" jsonschema:"Display name for the profile"`
	HeightCm          float64           `json:"height_cm,omitempty" jsonschema:"Height in centimeters"`
	WeightKg          float64           `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms"`
	BirthYear         int               `json:"birth_year,omitempty" jsonschema:"Birth year"`
	BirthMonth        int               `json:"birth_month,omitempty" jsonschema:"Birth month 1-12"`
	MedicalConditions []string          `json:"medical_conditions,omitempty" jsonschema:"Medical condition labels such as diabetes or hypertension"`
	Allergies         []string          `json:"allergies,omitempty" jsonschema:"Allergen labels matched against food names"`
	Medications       []medicationInput `json:"medications,omitempty" jsonschema:"Current medications"`
	SmokingStatus     string            `json:"smoking_status,omitempty" jsonschema:"never, former, or current"`
	SmokingFrequency  string            `json:"smoking_frequency,omitempty" jsonschema:"Smoking frequency for current or former smokers"`
}

type profileOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type profileRefInput struct {
	ProfileID string `json:"profile_id,omitempty" jsonschema:"Profile ID or prefix; defaults to the configured or only profile"`
}

type updateProfileInput struct {
	ProfileID         string             `json:"profile_id,omitempty" jsonschema:"Profile ID or prefix; defaults to the configured or only profile"`
	Name              *string            `json:"name,omitempty" jsonschema:"New display name"`
	HeightCm          *float64           `json:"height_cm,omitempty" jsonschema:"Height in centimeters"`
	WeightKg          *float64           `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms"`
	BirthYear         *int               `json:"birth_year,omitempty" jsonschema:"Birth year"`
	BirthMonth        *int               `json:"birth_month,omitempty" jsonschema:"Birth month 1-12"`
	MedicalConditions *[]string          `json:"medical_conditions,omitempty" jsonschema:"Replacement list of medical conditions"`
	Allergies         *[]string          `json:"allergies,omitempty" jsonschema:"Replacement list of allergies"`
	Medications       *[]medicationInput `json:"medications,omitempty" jsonschema:"Replacement list of medications"`
	SmokingStatus     *string            `json:"smoking_status,omitempty" jsonschema:"never, former, or current"`
	SmokingFrequency  *string            `json:"smoking_frequency,omitempty" jsonschema:"Smoking frequency; empty clears it"`
}

type emptyInput struct{}

type logFoodInput struct {
	ProfileID   string             `json:"profile_id,omitempty" jsonschema:"Profile ID or prefix; defaults to the configured or only profile"`
	FoodName    string             `json:"food_name" jsonschema:"Name of the food"`
	Calories    float64            `json:"calories" jsonschema:"Calories (kcal) for the serving"`
	Protein     float64            `json:"protein" jsonschema:"Protein grams"`
	Carbs       float64            `json:"carbs" jsonschema:"Carbohydrate grams"`
	Fat         float64            `json:"fat" jsonschema:"Fat grams"`
	Fiber       float64            `json:"fiber,omitempty" jsonschema:"Fiber grams"`
	Sugar       float64            `json:"sugar,omitempty" jsonschema:"Sugar grams"`
	Sodium      float64            `json:"sodium,omitempty" jsonschema:"Sodium milligrams"`
	Vitamins    map[string]float64 `json:"vitamins,omitempty" jsonschema:"Vitamin amounts by name"`
	Minerals    map[string]float64 `json:"minerals,omitempty" jsonschema:"Mineral amounts by name"`
	ServingSize float64            `json:"serving_size,omitempty" jsonschema:"Serving size (default 1)"`
	ServingUnit string             `json:"serving_unit,omitempty" jsonschema:"piece, cup, gram, ounce, tablespoon, or teaspoon (default piece)"`
	MealType    string             `json:"meal_type,omitempty" jsonschema:"breakfast, lunch, dinner, or snack (default snack)"`
	Date        string             `json:"date,omitempty" jsonschema:"Entry date YYYY-MM-DD (default today)"`
}

type entryOutput struct {
	ID       string `json:"id"`
	FoodName string `json:"food_name"`
	Date     string `json:"date"`
	Message  string `json:"message"`
}

type dayInput struct {
	ProfileID string `json:"profile_id,omitempty" jsonschema:"Profile ID or prefix; defaults to the configured or only profile"`
	Date      string `json:"date,omitempty" jsonschema:"Day YYYY-MM-DD (default today)"`
}

type deleteEntryInput struct {
	ID string `json:"id" jsonschema:"Entry ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleCreateProfile(ctx context.Context, req *mcp.CallToolRequest, input createProfileInput) (*mcp.CallToolResult, profileOutput, error) {
	p := models.NewHealthProfile(strings.TrimSpace(input.Name)).
		WithConditions(input.MedicalConditions...).
		WithAllergies(input.Allergies...).
		WithMedications(toMedications(input.Medications)...).
		WithBody(input.HeightCm, input.WeightKg).
		WithBirth(input.BirthYear, input.BirthMonth)

	if input.SmokingStatus != "" {
		if !models.IsValidSmokingStatus(input.SmokingStatus) {
			return nil, profileOutput{}, fmt.Errorf("unknown smoking status: %s", input.SmokingStatus)
		}
		p.WithSmoking(models.SmokingStatus(input.SmokingStatus), input.SmokingFrequency)
	}

	if err := s.repo.CreateProfile(p); err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to create profile: %w", err)
	}
	s.log.Info("created profile", zap.String("profile_id", p.ID.String()))

	return nil, profileOutput{
		ID:      p.ID.String()[:8],
		Name:    p.Name,
		Message: fmt.Sprintf("Created profile %s (ID: %s)", p.Name, p.ID.String()[:8]),
	}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input profileRefInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(input.ProfileID)
	if err != nil {
		return nil, nil, err
	}

	result := map[string]interface{}{
		"profile": p,
	}
	if age := p.Age(s.now()); age > 0 {
		result["age"] = age
	}
	if bmi, err := p.BMI(); err == nil {
		result["bmi"] = bmi
		result["bmi_category"] = models.BMICategory(bmi)
	}
	return nil, result, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, req *mcp.CallToolRequest, input updateProfileInput) (*mcp.CallToolResult, profileOutput, error) {
	p, err := s.profile(input.ProfileID)
	if err != nil {
		return nil, profileOutput{}, err
	}

	upd := models.ProfileUpdate{
		Name:              input.Name,
		HeightCm:          input.HeightCm,
		WeightKg:          input.WeightKg,
		BirthYear:         input.BirthYear,
		BirthMonth:        input.BirthMonth,
		MedicalConditions: input.MedicalConditions,
		Allergies:         input.Allergies,
		SmokingFrequency:  input.SmokingFrequency,
	}
	if input.Medications != nil {
		meds := toMedications(*input.Medications)
		upd.Medications = &meds
	}
	if input.SmokingStatus != nil {
		if !models.IsValidSmokingStatus(*input.SmokingStatus) {
			return nil, profileOutput{}, fmt.Errorf("unknown smoking status: %s", *input.SmokingStatus)
		}
		status := models.SmokingStatus(*input.SmokingStatus)
		upd.SmokingStatus = &status
	}
	if upd.IsEmpty() {
		return nil, profileOutput{}, fmt.Errorf("no fields to update")
	}

	upd.Apply(p)
	if err := s.repo.UpdateProfile(p); err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return nil, profileOutput{
		ID:      p.ID.String()[:8],
		Name:    p.Name,
		Message: fmt.Sprintf("Updated profile %s", p.Name),
	}, nil
}

func (s *Server) handleListProfiles(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	profiles, err := s.repo.ListProfiles()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, map[string]interface{}{"message": "No profiles found."}, nil
	}
	return nil, profiles, nil
}

func (s *Server) handleLogFood(ctx context.Context, req *mcp.CallToolRequest, input logFoodInput) (*mcp.CallToolResult, entryOutput, error) {
	p, err := s.profile(input.ProfileID)
	if err != nil {
		return nil, entryOutput{}, err
	}
	day, err := s.day(input.Date)
	if err != nil {
		return nil, entryOutput{}, err
	}

	e := models.NewFoodEntry(p.ID, strings.TrimSpace(input.FoodName), models.NutritionData{
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Fiber:    input.Fiber,
		Sugar:    input.Sugar,
		Sodium:   input.Sodium,
		Vitamins: input.Vitamins,
		Minerals: input.Minerals,
	}).WithDate(day)

	if input.ServingSize > 0 || input.ServingUnit != "" {
		size, unit := e.ServingSize, e.ServingUnit
		if input.ServingSize > 0 {
			size = input.ServingSize
		}
		if input.ServingUnit != "" {
			if !models.IsValidServingUnit(input.ServingUnit) {
				return nil, entryOutput{}, fmt.Errorf("unknown serving unit: %s", input.ServingUnit)
			}
			unit = models.ServingUnit(input.ServingUnit)
		}
		e.WithServing(size, unit)
	}
	if input.MealType != "" {
		if !models.IsValidMealType(input.MealType) {
			return nil, entryOutput{}, fmt.Errorf("unknown meal type: %s", input.MealType)
		}
		e.WithMeal(models.MealType(input.MealType))
	}

	if err := s.repo.CreateEntry(e); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log food: %w", err)
	}

	date := e.EntryDate.Format(models.DateLayout)
	return nil, entryOutput{
		ID:       e.ID.String()[:8],
		FoodName: e.FoodName,
		Date:     date,
		Message:  fmt.Sprintf("Logged %s for %s on %s (ID: %s)", e.FoodName, p.Name, date, e.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(input.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	day, err := s.day(input.Date)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.repo.ListEntries(p.ID, &day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": fmt.Sprintf("No entries on %s.", day.Format(models.DateLayout))}, nil
	}
	return nil, entries, nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, req *mcp.CallToolRequest, input deleteEntryInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteEntry(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted entry: %s", input.ID),
	}, nil
}

func (s *Server) handleGetInsight(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(input.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	day, err := s.day(input.Date)
	if err != nil {
		return nil, nil, err
	}

	in, err := s.gen.Generate(ctx, p.ID.String(), day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute insight: %w", err)
	}
	return nil, in, nil
}

// profile resolves an explicit reference, then the server default, then the only profile.
func (s *Server) profile(ref string) (*models.HealthProfile, error) {
	return storage.ResolveProfile(s.repo, ref, s.defaultProfile)
}

// day parses a YYYY-MM-DD date, defaulting to today.
func (s *Server) day(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return models.Day(s.now()), nil
	}
	d, err := models.ParseDay(strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	return d, nil
}

func toMedications(in []medicationInput) []models.Medication {
	meds := make([]models.Medication, 0, len(in))
	for _, m := range in {
		meds = append(meds, models.Medication{
			Name:      strings.TrimSpace(m.Name),
			Dosage:    strings.TrimSpace(m.Dosage),
			Frequency: strings.TrimSpace(m.Frequency),
		})
	}
	return meds
}
