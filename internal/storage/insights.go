// ABOUTME: Insight cache persistence for SQLite storage.
// ABOUTME: One insight per profile and day; saving again replaces the previous one.
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

// SaveInsight upserts the insight for its profile and date.
func (d *DB) SaveInsight(in *models.Insight) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode insight: %w", err)
	}

	query := `
		INSERT INTO insights (id, profile_id, insight_date, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (profile_id, insight_date) DO UPDATE SET
			id = excluded.id,
			payload = excluded.payload,
			created_at = excluded.created_at
	`
	_, err = d.db.Exec(query,
		in.ID.String(),
		in.ProfileID.String(),
		in.Date.Format(models.DateLayout),
		string(payload),
		in.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save insight: %w", err)
	}
	return nil
}

// GetInsight returns the cached insight for a profile and day.
func (d *DB) GetInsight(profileID uuid.UUID, date time.Time) (*models.Insight, error) {
	var payload string
	err := d.db.QueryRow(
		`SELECT payload FROM insights WHERE profile_id = ? AND insight_date = ?`,
		profileID.String(), date.Format(models.DateLayout),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(profileID.String() + "@" + date.Format(models.DateLayout))
		}
		return nil, fmt.Errorf("get insight: %w", err)
	}

	var in models.Insight
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		return nil, fmt.Errorf("decode insight: %w", err)
	}
	return &in, nil
}

// listInsights returns every cached insight, used by export.
func (d *DB) listInsights() ([]*models.Insight, error) {
	rows, err := d.db.Query(`SELECT payload FROM insights ORDER BY insight_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	defer rows.Close()

	var out []*models.Insight
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan insight: %w", err)
		}
		var in models.Insight
		if err := json.Unmarshal([]byte(payload), &in); err != nil {
			return nil, fmt.Errorf("decode insight: %w", err)
		}
		out = append(out, &in)
	}
	return out, rows.Err()
}
