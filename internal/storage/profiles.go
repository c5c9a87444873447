// ABOUTME: HealthProfile CRUD operations for SQLite storage.
// ABOUTME: List-valued profile fields are stored as JSON text columns.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

const profileColumns = `id, name, height_cm, weight_kg, birth_year, birth_month,
	medical_conditions, allergies, medications, smoking_status, smoking_frequency,
	created_at, updated_at`

// CreateProfile stores a new health profile.
func (d *DB) CreateProfile(p *models.HealthProfile) error {
	if err := models.Validate(p); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	conditions, allergies, meds, err := encodeProfileLists(p)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = d.db.Exec(query,
		p.ID.String(),
		p.Name,
		p.HeightCm,
		p.WeightKg,
		p.BirthYear,
		p.BirthMonth,
		conditions,
		allergies,
		meds,
		string(p.SmokingStatus),
		p.SmokingFrequency,
		p.CreatedAt.Format(time.RFC3339Nano),
		p.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID or ID prefix.
func (d *DB) GetProfile(idOrPrefix string) (*models.HealthProfile, error) {
	id, err := d.resolveID("profiles", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(idOrPrefix)
	}
	return p, err
}

// ListProfiles returns every profile ordered by name.
func (d *DB) ListProfiles() ([]*models.HealthProfile, error) {
	rows, err := d.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY name COLLATE NOCASE, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.HealthProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// UpdateProfile replaces the stored profile with p.
func (d *DB) UpdateProfile(p *models.HealthProfile) error {
	if err := models.Validate(p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	conditions, allergies, meds, err := encodeProfileLists(p)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	query := `
		UPDATE profiles SET name = ?, height_cm = ?, weight_kg = ?, birth_year = ?, birth_month = ?,
			medical_conditions = ?, allergies = ?, medications = ?, smoking_status = ?,
			smoking_frequency = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		p.Name,
		p.HeightCm,
		p.WeightKg,
		p.BirthYear,
		p.BirthMonth,
		conditions,
		allergies,
		meds,
		string(p.SmokingStatus),
		p.SmokingFrequency,
		p.UpdatedAt.Format(time.RFC3339Nano),
		p.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return notFound(p.ID.String())
	}
	return nil
}

// DeleteProfile removes a profile along with its entries and cached insights.
func (d *DB) DeleteProfile(idOrPrefix string) error {
	id, err := d.resolveID("profiles", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	// CASCADE is enabled, so entries and insights go with the profile
	result, err := d.db.Exec("DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return notFound(idOrPrefix)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.HealthProfile, error) {
	var p models.HealthProfile
	var idStr, conditions, allergies, meds, smoking, createdAt, updatedAt string
	var frequency sql.NullString

	err := row.Scan(&idStr, &p.Name, &p.HeightCm, &p.WeightKg, &p.BirthYear, &p.BirthMonth,
		&conditions, &allergies, &meds, &smoking, &frequency, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.SmokingStatus = models.SmokingStatus(smoking)
	if frequency.Valid {
		p.SmokingFrequency = &frequency.String
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	if err := json.Unmarshal([]byte(conditions), &p.MedicalConditions); err != nil {
		return nil, fmt.Errorf("decode medical conditions: %w", err)
	}
	if err := json.Unmarshal([]byte(allergies), &p.Allergies); err != nil {
		return nil, fmt.Errorf("decode allergies: %w", err)
	}
	if err := json.Unmarshal([]byte(meds), &p.Medications); err != nil {
		return nil, fmt.Errorf("decode medications: %w", err)
	}
	return &p, nil
}

func encodeProfileLists(p *models.HealthProfile) (conditions, allergies, meds string, err error) {
	enc := func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	}
	if conditions, err = enc(nonNil(p.MedicalConditions)); err != nil {
		return "", "", "", fmt.Errorf("encode medical conditions: %w", err)
	}
	if allergies, err = enc(nonNil(p.Allergies)); err != nil {
		return "", "", "", fmt.Errorf("encode allergies: %w", err)
	}
	medications := p.Medications
	if medications == nil {
		medications = []models.Medication{}
	}
	if meds, err = enc(medications); err != nil {
		return "", "", "", fmt.Errorf("encode medications: %w", err)
	}
	return conditions, allergies, meds, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
