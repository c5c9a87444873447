// ABOUTME: HealthProfile model with medical conditions, allergies, and medications.
// ABOUTME: Includes partial-update support plus derived age and BMI helpers.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SmokingStatus is the self-reported smoking habit of a profile.
type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

// IsValidSmokingStatus checks if a string is a valid smoking status.
func IsValidSmokingStatus(s string) bool {
	switch SmokingStatus(s) {
	case SmokingNever, SmokingFormer, SmokingCurrent:
		return true
	}
	return false
}

// Medication is a single medication the profile takes.
type Medication struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Dosage    string `json:"dosage,omitempty" yaml:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// HealthProfile holds the demographic and medical attributes of one user.
type HealthProfile struct {
	ID                uuid.UUID     `json:"id" yaml:"id"`
	Name              string        `json:"name" yaml:"name" validate:"required"`
	HeightCm          float64       `json:"height_cm,omitempty" yaml:"height_cm,omitempty" validate:"gte=0"`
	WeightKg          float64       `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty" validate:"gte=0"`
	BirthYear         int           `json:"birth_year,omitempty" yaml:"birth_year,omitempty" validate:"omitempty,gte=1900"`
	BirthMonth        int           `json:"birth_month,omitempty" yaml:"birth_month,omitempty" validate:"omitempty,min=1,max=12"`
	MedicalConditions []string      `json:"medical_conditions" yaml:"medical_conditions"`
	Allergies         []string      `json:"allergies" yaml:"allergies"`
	Medications       []Medication  `json:"medications" yaml:"medications" validate:"dive"`
	SmokingStatus     SmokingStatus `json:"smoking_status" yaml:"smoking_status" validate:"omitempty,oneof=never former current"`
	SmokingFrequency  *string       `json:"smoking_frequency,omitempty" yaml:"smoking_frequency,omitempty"`
	CreatedAt         time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" yaml:"updated_at"`
}

// NewHealthProfile creates a profile with generated UUID and current timestamps.
func NewHealthProfile(name string) *HealthProfile {
	now := time.Now()
	return &HealthProfile{
		ID:                uuid.New(),
		Name:              name,
		MedicalConditions: []string{},
		Allergies:         []string{},
		Medications:       []Medication{},
		SmokingStatus:     SmokingNever,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// WithConditions sets the medical condition labels.
func (p *HealthProfile) WithConditions(conditions ...string) *HealthProfile {
	p.MedicalConditions = cleanLabels(conditions)
	return p
}

// WithAllergies sets the allergy labels.
func (p *HealthProfile) WithAllergies(allergies ...string) *HealthProfile {
	p.Allergies = cleanLabels(allergies)
	return p
}

// WithMedications sets the medication list.
func (p *HealthProfile) WithMedications(meds ...Medication) *HealthProfile {
	p.Medications = append([]Medication{}, meds...)
	return p
}

// WithBody sets height and weight.
func (p *HealthProfile) WithBody(heightCm, weightKg float64) *HealthProfile {
	p.HeightCm = heightCm
	p.WeightKg = weightKg
	return p
}

// WithBirth sets birth year and month.
func (p *HealthProfile) WithBirth(year, month int) *HealthProfile {
	p.BirthYear = year
	p.BirthMonth = month
	return p
}

// WithSmoking sets smoking status and an optional frequency.
func (p *HealthProfile) WithSmoking(status SmokingStatus, frequency string) *HealthProfile {
	p.SmokingStatus = status
	if frequency != "" {
		p.SmokingFrequency = &frequency
	} else {
		p.SmokingFrequency = nil
	}
	return p
}

// HasCondition reports whether any medical condition contains the keyword,
// case-insensitively. "heart" matches "heartburn"; that heuristic is intentional.
func (p *HealthProfile) HasCondition(keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, c := range p.MedicalConditions {
		if strings.Contains(strings.ToLower(c), keyword) {
			return true
		}
	}
	return false
}

// Age returns the age in whole years at the given time, or 0 when the birth
// year is unknown.
func (p *HealthProfile) Age(now time.Time) int {
	if p.BirthYear == 0 {
		return 0
	}
	age := now.Year() - p.BirthYear
	if p.BirthMonth > 0 && int(now.Month()) < p.BirthMonth {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// ErrImplausibleBody is returned by BMI when height or weight is out of range.
var ErrImplausibleBody = errors.New("height/weight out of plausible range")

// BMI computes body mass index from height in centimeters and weight in kilograms.
func (p *HealthProfile) BMI() (float64, error) {
	if p.HeightCm < 50 || p.HeightCm > 250 || p.WeightKg < 10 || p.WeightKg > 400 {
		return 0, ErrImplausibleBody
	}
	h := p.HeightCm / 100.0
	return p.WeightKg / (h * h), nil
}

// BMICategory maps a BMI value to its WHO category label.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// ProfileUpdate is a partial update. Nil fields are left untouched.
type ProfileUpdate struct {
	Name              *string        `json:"name,omitempty"`
	HeightCm          *float64       `json:"height_cm,omitempty"`
	WeightKg          *float64       `json:"weight_kg,omitempty"`
	BirthYear         *int           `json:"birth_year,omitempty"`
	BirthMonth        *int           `json:"birth_month,omitempty"`
	MedicalConditions *[]string      `json:"medical_conditions,omitempty"`
	Allergies         *[]string      `json:"allergies,omitempty"`
	Medications       *[]Medication  `json:"medications,omitempty"`
	SmokingStatus     *SmokingStatus `json:"smoking_status,omitempty"`
	SmokingFrequency  *string        `json:"smoking_frequency,omitempty"`
}

// IsEmpty reports whether the update sets no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.HeightCm == nil && u.WeightKg == nil &&
		u.BirthYear == nil && u.BirthMonth == nil && u.MedicalConditions == nil &&
		u.Allergies == nil && u.Medications == nil && u.SmokingStatus == nil &&
		u.SmokingFrequency == nil
}

// Apply copies every set field onto p and bumps UpdatedAt.
func (u ProfileUpdate) Apply(p *HealthProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.HeightCm != nil {
		p.HeightCm = *u.HeightCm
	}
	if u.WeightKg != nil {
		p.WeightKg = *u.WeightKg
	}
	if u.BirthYear != nil {
		p.BirthYear = *u.BirthYear
	}
	if u.BirthMonth != nil {
		p.BirthMonth = *u.BirthMonth
	}
	if u.MedicalConditions != nil {
		p.MedicalConditions = cleanLabels(*u.MedicalConditions)
	}
	if u.Allergies != nil {
		p.Allergies = cleanLabels(*u.Allergies)
	}
	if u.Medications != nil {
		p.Medications = append([]Medication{}, *u.Medications...)
	}
	if u.SmokingStatus != nil {
		p.SmokingStatus = *u.SmokingStatus
	}
	if u.SmokingFrequency != nil {
		if *u.SmokingFrequency == "" {
			p.SmokingFrequency = nil
		} else {
			freq := *u.SmokingFrequency
			p.SmokingFrequency = &freq
		}
	}
	p.UpdatedAt = time.Now()
}

// cleanLabels trims labels and drops empty ones. Never returns nil.
func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
