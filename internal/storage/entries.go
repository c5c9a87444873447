// ABOUTME: FoodEntry CRUD operations for SQLite storage.
// ABOUTME: Entries are keyed by calendar day and ordered by creation time within a day.
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

const entryColumns = `id, profile_id, food_name, serving_size, serving_unit, meal_type,
	nutrition, entry_date, created_at`

// CreateEntry stores a new food entry. The owning profile must exist.
func (d *DB) CreateEntry(e *models.FoodEntry) error {
	if err := models.Validate(e); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	if _, err := d.GetProfile(e.ProfileID.String()); err != nil {
		return fmt.Errorf("create entry: profile %w", err)
	}

	nutrition, err := json.Marshal(e.Nutrition)
	if err != nil {
		return fmt.Errorf("encode nutrition: %w", err)
	}

	query := `INSERT INTO food_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = d.db.Exec(query,
		e.ID.String(),
		e.ProfileID.String(),
		e.FoodName,
		e.ServingSize,
		string(e.ServingUnit),
		string(e.MealType),
		string(nutrition),
		e.EntryDate.Format(models.DateLayout),
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// GetEntry retrieves a food entry by ID or ID prefix.
func (d *DB) GetEntry(idOrPrefix string) (*models.FoodEntry, error) {
	id, err := d.resolveID("food_entries", idOrPrefix)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(d.db.QueryRow(`SELECT `+entryColumns+` FROM food_entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(idOrPrefix)
	}
	return e, err
}

// ListEntries returns a profile's entries, restricted to one day when date is non-nil.
func (d *DB) ListEntries(profileID uuid.UUID, date *time.Time) ([]*models.FoodEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM food_entries WHERE profile_id = ?`
	args := []any{profileID.String()}
	if date != nil {
		query += ` AND entry_date = ?`
		args = append(args, date.Format(models.DateLayout))
	}
	query += ` ORDER BY entry_date ASC, created_at ASC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.FoodEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes a food entry by ID or prefix.
func (d *DB) DeleteEntry(idOrPrefix string) error {
	id, err := d.resolveID("food_entries", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM food_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return notFound(idOrPrefix)
	}
	return nil
}

func scanEntry(row rowScanner) (*models.FoodEntry, error) {
	var e models.FoodEntry
	var idStr, profileIDStr, unit, meal, nutrition, entryDate, createdAt string

	err := row.Scan(&idStr, &profileIDStr, &e.FoodName, &e.ServingSize, &unit, &meal,
		&nutrition, &entryDate, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.ProfileID, _ = uuid.Parse(profileIDStr)
	e.ServingUnit = models.ServingUnit(unit)
	e.MealType = models.MealType(meal)
	e.EntryDate, _ = models.ParseDay(entryDate)
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if err := json.Unmarshal([]byte(nutrition), &e.Nutrition); err != nil {
		return nil, fmt.Errorf("decode nutrition: %w", err)
	}
	return &e, nil
}
