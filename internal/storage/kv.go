// ABOUTME: Repository implementation over any byte-oriented key-value store.
// ABOUTME: Records are JSON values under typed key prefixes; used by the badger and charm backends.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

// Key prefixes for each record type.
const (
	ProfilePrefix = "profile:"
	EntryPrefix   = "entry:"
	InsightPrefix = "insight:"
)

// KV is the minimal key-value contract the KVStore needs.
// Get must return an error wrapping ErrNotFound for missing keys.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Close() error
}

// KVStore implements Repository on top of a KV.
type KVStore struct {
	kv KV
	mu sync.Mutex
}

// Compile-time check that KVStore implements Repository.
var _ Repository = (*KVStore)(nil)

// NewKVStore wraps kv as a Repository.
func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv}
}

// Close closes the underlying store.
func (s *KVStore) Close() error {
	return s.kv.Close()
}

// CreateProfile stores a new health profile.
func (s *KVStore) CreateProfile(p *models.HealthProfile) error {
	if err := models.Validate(p); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.putNew(ProfilePrefix+p.ID.String(), p); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID or ID prefix.
func (s *KVStore) GetProfile(idOrPrefix string) (*models.HealthProfile, error) {
	key, err := s.resolveKey(ProfilePrefix, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return getJSON[models.HealthProfile](s.kv, key)
}

// ListProfiles returns every profile ordered by name.
func (s *KVStore) ListProfiles() ([]*models.HealthProfile, error) {
	profiles, err := listJSON[models.HealthProfile](s.kv, ProfilePrefix)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := strings.ToLower(profiles[i].Name), strings.ToLower(profiles[j].Name)
		if a != b {
			return a < b
		}
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	return profiles, nil
}

// UpdateProfile replaces the stored profile with p.
func (s *KVStore) UpdateProfile(p *models.HealthProfile) error {
	if err := models.Validate(p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ProfilePrefix + p.ID.String()
	if _, err := s.kv.Get([]byte(key)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(p.ID.String())
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if err := putJSON(s.kv, key, p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// DeleteProfile removes a profile along with its entries and cached insights.
func (s *KVStore) DeleteProfile(idOrPrefix string) error {
	key, err := s.resolveKey(ProfilePrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	profileID, err := uuid.Parse(strings.TrimPrefix(key, ProfilePrefix))
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.ListEntries(profileID, nil)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	for _, e := range entries {
		if err := s.kv.Delete([]byte(EntryPrefix + e.ID.String())); err != nil {
			return fmt.Errorf("delete profile entry: %w", err)
		}
	}

	keys, err := s.kv.Keys()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	insightPrefix := []byte(InsightPrefix + profileID.String() + ":")
	for _, k := range keys {
		if bytes.HasPrefix(k, insightPrefix) {
			if err := s.kv.Delete(k); err != nil {
				return fmt.Errorf("delete profile insight: %w", err)
			}
		}
	}

	if err := s.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// CreateEntry stores a new food entry. The owning profile must exist.
func (s *KVStore) CreateEntry(e *models.FoodEntry) error {
	if err := models.Validate(e); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	if _, err := s.GetProfile(e.ProfileID.String()); err != nil {
		return fmt.Errorf("create entry: profile %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.putNew(EntryPrefix+e.ID.String(), e); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// GetEntry retrieves a food entry by ID or ID prefix.
func (s *KVStore) GetEntry(idOrPrefix string) (*models.FoodEntry, error) {
	key, err := s.resolveKey(EntryPrefix, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return getJSON[models.FoodEntry](s.kv, key)
}

// ListEntries returns a profile's entries, restricted to one day when date is non-nil.
func (s *KVStore) ListEntries(profileID uuid.UUID, date *time.Time) ([]*models.FoodEntry, error) {
	all, err := listJSON[models.FoodEntry](s.kv, EntryPrefix)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var day string
	if date != nil {
		day = date.Format(models.DateLayout)
	}
	var entries []*models.FoodEntry
	for _, e := range all {
		if e.ProfileID != profileID {
			continue
		}
		if date != nil && e.EntryDate.Format(models.DateLayout) != day {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].EntryDate.Before(entries[j].EntryDate)
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// DeleteEntry removes a food entry by ID or prefix.
func (s *KVStore) DeleteEntry(idOrPrefix string) error {
	key, err := s.resolveKey(EntryPrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// SaveInsight upserts the insight for its profile and date.
func (s *KVStore) SaveInsight(in *models.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := putJSON(s.kv, insightKey(in.ProfileID, in.Date), in); err != nil {
		return fmt.Errorf("save insight: %w", err)
	}
	return nil
}

// GetInsight returns the cached insight for a profile and day.
func (s *KVStore) GetInsight(profileID uuid.UUID, date time.Time) (*models.Insight, error) {
	key := insightKey(profileID, date)
	in, err := getJSON[models.Insight](s.kv, key)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound(strings.TrimPrefix(key, InsightPrefix))
	}
	return in, err
}

// GetAllData retrieves all data for export.
func (s *KVStore) GetAllData() (*ExportData, error) {
	profiles, err := s.ListProfiles()
	if err != nil {
		return nil, err
	}
	var entries []*models.FoodEntry
	for _, p := range profiles {
		pe, err := s.ListEntries(p.ID, nil)
		if err != nil {
			return nil, err
		}
		entries = append(entries, pe...)
	}
	insights, err := listJSON[models.Insight](s.kv, InsightPrefix)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	sort.SliceStable(insights, func(i, j int) bool { return insights[i].Date.Before(insights[j].Date) })
	return newExportData(profiles, entries, insights), nil
}

// ImportData imports data from an export file.
func (s *KVStore) ImportData(data *ExportData) error {
	return importInto(s, data)
}

// insightKey builds the cache key for a profile and day.
func insightKey(profileID uuid.UUID, date time.Time) string {
	return InsightPrefix + profileID.String() + ":" + date.Format(models.DateLayout)
}

// resolveKey finds the full key for an ID prefix under typePrefix.
func (s *KVStore) resolveKey(typePrefix, idOrPrefix string) (string, error) {
	if strings.TrimSpace(idOrPrefix) == "" {
		return "", notFound(idOrPrefix)
	}
	keys, err := s.kv.Keys()
	if err != nil {
		return "", err
	}

	search := []byte(typePrefix + strings.ToLower(idOrPrefix))
	var matches []string
	for _, k := range keys {
		if bytes.HasPrefix(k, search) {
			matches = append(matches, string(k))
			if len(matches) > 1 {
				break
			}
		}
	}
	return pickMatch(idOrPrefix, matches)
}

// putNew stores v under key, refusing to overwrite an existing record.
func (s *KVStore) putNew(key string, v any) error {
	if _, err := s.kv.Get([]byte(key)); err == nil {
		return fmt.Errorf("record %s already exists", key)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return putJSON(s.kv, key, v)
}

func putJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set([]byte(key), data)
}

func getJSON[T any](kv KV, key string) (*T, error) {
	data, err := kv.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &out, nil
}

func listJSON[T any](kv KV, prefix string) ([]*T, error) {
	keys, err := kv.Keys()
	if err != nil {
		return nil, err
	}
	var out []*T
	for _, k := range keys {
		if !bytes.HasPrefix(k, []byte(prefix)) {
			continue
		}
		v, err := getJSON[T](kv, string(k))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
