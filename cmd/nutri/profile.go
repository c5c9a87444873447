// ABOUTME: CLI commands for managing health profiles.
// ABOUTME: Supports create, show, list, update, and delete with ID prefixes.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// profileFlags holds the health attributes shared by create and update.
type profileFlags struct {
	name             string
	height           float64
	weight           float64
	birthYear        int
	birthMonth       int
	conditions       []string
	allergies        []string
	medications      []string
	smoking          string
	smokingFrequency string
}

func (f *profileFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.height, "height", 0, "height in centimeters")
	fs.Float64Var(&f.weight, "weight", 0, "weight in kilograms")
	fs.IntVar(&f.birthYear, "birth-year", 0, "birth year")
	fs.IntVar(&f.birthMonth, "birth-month", 0, "birth month (1-12)")
	fs.StringSliceVar(&f.conditions, "condition", nil, "medical condition (repeatable)")
	fs.StringSliceVar(&f.allergies, "allergy", nil, "allergy (repeatable)")
	fs.StringArrayVar(&f.medications, "medication", nil, "medication as name[:dosage[:frequency]] (repeatable)")
	fs.StringVar(&f.smoking, "smoking", "", "smoking status: never, former, or current")
	fs.StringVar(&f.smokingFrequency, "smoking-frequency", "", "smoking frequency")
}

var (
	profileCreateFlags profileFlags
	profileUpdateFlags profileFlags
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Manage health profiles",
	Long: `Manage health profiles used to personalize insights.

Conditions, allergies, and medications drive conflict detection:
allergies are matched against food names, conditions such as diabetes,
hypertension and heart disease cap sugar, sodium and fat, and medications
such as warfarin, MAOIs, and statins flag known food interactions.

EXAMPLES:

  nutri profile create Ada --height 168 --weight 62 --birth-year 1990
  nutri profile create Bob --condition diabetes --allergy shellfish \
      --medication metformin:500mg:twice-daily --smoking former
  nutri profile list
  nutri profile show abc12345
  nutri profile update abc12345 --weight 60.5
  nutri profile delete abc12345`,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a health profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := profileCreateFlags
		meds, err := parseMedications(f.medications)
		if err != nil {
			return err
		}

		p := models.NewHealthProfile(strings.TrimSpace(args[0])).
			WithBody(f.height, f.weight).
			WithBirth(f.birthYear, f.birthMonth).
			WithConditions(f.conditions...).
			WithAllergies(f.allergies...).
			WithMedications(meds...)

		if f.smoking != "" {
			if !models.IsValidSmokingStatus(f.smoking) {
				return fmt.Errorf("unknown smoking status: %s (use never, former, or current)", f.smoking)
			}
			p.WithSmoking(models.SmokingStatus(f.smoking), f.smokingFrequency)
		}

		if err := repo.CreateProfile(p); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		color.Green("✓ Created profile %s", p.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(p.ID.String()[:8]))
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:     "show [id]",
	Aliases: []string{"get"},
	Short:   "Show a health profile",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) == 1 {
			ref = args[0]
		}
		p, err := currentProfile(ref)
		if err != nil {
			return err
		}
		printProfile(p, time.Now())
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List health profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := repo.ListProfiles()
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range profiles {
			fmt.Printf("%s %s%s\n",
				faint.Sprint(p.ID.String()[:8]),
				padRight(p.Name, 20),
				faint.Sprint(labelSummary(p)))
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a health profile",
	Long: `Update selected fields of a health profile. Only flags you pass are changed.
List flags (--condition, --allergy, --medication) replace the whole list;
pass an empty value such as --allergy "" to clear one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetProfile(args[0])
		if err != nil {
			return fmt.Errorf("profile not found: %w", err)
		}

		upd, err := buildProfileUpdate(cmd.Flags(), profileUpdateFlags)
		if err != nil {
			return err
		}
		if upd.IsEmpty() {
			return fmt.Errorf("no fields to update")
		}

		upd.Apply(p)
		if err := repo.UpdateProfile(p); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		color.Green("✓ Updated profile %s", p.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(p.ID.String()[:8]))
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a health profile and all of its entries",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetProfile(args[0])
		if err != nil {
			return fmt.Errorf("profile not found: %w", err)
		}
		if err := repo.DeleteProfile(p.ID.String()); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}

		color.Yellow("✗ Deleted profile %s", p.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(p.ID.String()[:8]))
		return nil
	},
}

// buildProfileUpdate turns the flags the user actually passed into a ProfileUpdate.
func buildProfileUpdate(fs *pflag.FlagSet, f profileFlags) (models.ProfileUpdate, error) {
	var upd models.ProfileUpdate

	if fs.Changed("name") {
		name := strings.TrimSpace(f.name)
		upd.Name = &name
	}
	if fs.Changed("height") {
		upd.HeightCm = &f.height
	}
	if fs.Changed("weight") {
		upd.WeightKg = &f.weight
	}
	if fs.Changed("birth-year") {
		upd.BirthYear = &f.birthYear
	}
	if fs.Changed("birth-month") {
		upd.BirthMonth = &f.birthMonth
	}
	if fs.Changed("condition") {
		conditions := f.conditions
		upd.MedicalConditions = &conditions
	}
	if fs.Changed("allergy") {
		allergies := f.allergies
		upd.Allergies = &allergies
	}
	if fs.Changed("medication") {
		meds, err := parseMedications(f.medications)
		if err != nil {
			return upd, err
		}
		upd.Medications = &meds
	}
	if fs.Changed("smoking") {
		if !models.IsValidSmokingStatus(f.smoking) {
			return upd, fmt.Errorf("unknown smoking status: %s (use never, former, or current)", f.smoking)
		}
		status := models.SmokingStatus(f.smoking)
		upd.SmokingStatus = &status
	}
	if fs.Changed("smoking-frequency") {
		freq := f.smokingFrequency
		upd.SmokingFrequency = &freq
	}
	return upd, nil
}

// parseMedications parses name[:dosage[:frequency]] values.
func parseMedications(values []string) ([]models.Medication, error) {
	meds := make([]models.Medication, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		parts := strings.SplitN(v, ":", 3)
		m := models.Medication{Name: strings.TrimSpace(parts[0])}
		if m.Name == "" {
			return nil, fmt.Errorf("invalid medication %q (use name[:dosage[:frequency]])", v)
		}
		if len(parts) > 1 {
			m.Dosage = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			m.Frequency = strings.TrimSpace(parts[2])
		}
		meds = append(meds, m)
	}
	return meds, nil
}

func printProfile(p *models.HealthProfile, now time.Time) {
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	bold.Println(p.Name)
	fmt.Printf("  %s %s\n", faint.Sprint("ID:"), p.ID.String())

	if p.HeightCm > 0 {
		fmt.Printf("  %s %.1f cm\n", faint.Sprint("Height:"), p.HeightCm)
	}
	if p.WeightKg > 0 {
		fmt.Printf("  %s %.1f kg\n", faint.Sprint("Weight:"), p.WeightKg)
	}
	if bmi, err := p.BMI(); err == nil {
		fmt.Printf("  %s %.1f (%s)\n", faint.Sprint("BMI:"), bmi, models.BMICategory(bmi))
	}
	if age := p.Age(now); age > 0 {
		fmt.Printf("  %s %d\n", faint.Sprint("Age:"), age)
	}
	if len(p.MedicalConditions) > 0 {
		fmt.Printf("  %s %s\n", faint.Sprint("Conditions:"), strings.Join(p.MedicalConditions, ", "))
	}
	if len(p.Allergies) > 0 {
		fmt.Printf("  %s %s\n", faint.Sprint("Allergies:"), strings.Join(p.Allergies, ", "))
	}
	for _, m := range p.Medications {
		line := m.Name
		if m.Dosage != "" {
			line += " " + m.Dosage
		}
		if m.Frequency != "" {
			line += " (" + m.Frequency + ")"
		}
		fmt.Printf("  %s %s\n", faint.Sprint("Medication:"), line)
	}
	if p.SmokingStatus != "" {
		smoking := string(p.SmokingStatus)
		if p.SmokingFrequency != nil && *p.SmokingFrequency != "" {
			smoking += " (" + *p.SmokingFrequency + ")"
		}
		fmt.Printf("  %s %s\n", faint.Sprint("Smoking:"), smoking)
	}
}

// labelSummary joins conditions and allergies for one-line listings.
func labelSummary(p *models.HealthProfile) string {
	var parts []string
	if len(p.MedicalConditions) > 0 {
		parts = append(parts, strings.Join(p.MedicalConditions, ", "))
	}
	if len(p.Allergies) > 0 {
		parts = append(parts, "allergic: "+strings.Join(p.Allergies, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "; ")
}

func init() {
	profileCreateFlags.register(profileCreateCmd.Flags())
	profileUpdateFlags.register(profileUpdateCmd.Flags())
	profileUpdateCmd.Flags().StringVar(&profileUpdateFlags.name, "name", "", "new display name")

	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}
