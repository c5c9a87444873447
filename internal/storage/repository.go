// ABOUTME: Repository interface for nutrition data storage.
// ABOUTME: Defines contract for profiles, food entries, and the insight cache.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

var (
	// ErrNotFound is returned when no record matches an ID or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousPrefix is returned when an ID prefix matches more than one record.
	ErrAmbiguousPrefix = errors.New("ambiguous prefix")
)

// Repository defines the storage interface for nutrition data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Profile operations
	CreateProfile(p *models.HealthProfile) error
	GetProfile(idOrPrefix string) (*models.HealthProfile, error)
	ListProfiles() ([]*models.HealthProfile, error)
	UpdateProfile(p *models.HealthProfile) error
	DeleteProfile(idOrPrefix string) error

	// Food entry operations. A nil date lists every entry for the profile.
	CreateEntry(e *models.FoodEntry) error
	GetEntry(idOrPrefix string) (*models.FoodEntry, error)
	ListEntries(profileID uuid.UUID, date *time.Time) ([]*models.FoodEntry, error)
	DeleteEntry(idOrPrefix string) error

	// Insight cache. Cached insights are disposable; callers recompute.
	SaveInsight(in *models.Insight) error
	GetInsight(profileID uuid.UUID, date time.Time) (*models.Insight, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// isFullUUID reports whether s looks like a complete UUID rather than a prefix.
func isFullUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
