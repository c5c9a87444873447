// ABOUTME: Generator fetches a profile and its entries, computes, and caches an Insight.
// ABOUTME: Always recomputes; the cached copy is disposable.
package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"go.uber.org/zap"
)

// WindowDays is the length of the trailing weekly window, inclusive of the requested date.
const WindowDays = 7

// Source supplies the inputs for an insight.
type Source interface {
	GetProfile(idOrPrefix string) (*models.HealthProfile, error)
	ListEntries(profileID uuid.UUID, date *time.Time) ([]*models.FoodEntry, error)
}

// Cache stores computed insights.
type Cache interface {
	SaveInsight(in *models.Insight) error
}

// Generator wires an Engine to its data source and cache.
type Generator struct {
	engine *Engine
	source Source
	cache  Cache
	log    *zap.Logger
}

// NewGenerator creates a Generator. cache may be nil; log may be nil.
func NewGenerator(engine *Engine, source Source, cache Cache, log *zap.Logger) *Generator {
	if engine == nil {
		engine = NewEngine()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{engine: engine, source: source, cache: cache, log: log}
}

// Generate computes the insight for the profile identified by profileRef on date.
func (g *Generator) Generate(ctx context.Context, profileRef string, date time.Time) (*models.Insight, error) {
	day := models.Day(date)

	profile, err := g.source.GetProfile(profileRef)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	daily, err := g.source.ListEntries(profile.ID, &day)
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", day.Format(models.DateLayout), err)
	}

	// Collected day by day, oldest first.
	var weekly []models.FoodEntry
	for i := WindowDays - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d := day.AddDate(0, 0, -i)
		if i == 0 {
			weekly = append(weekly, Values(daily)...)
			continue
		}
		entries, err := g.source.ListEntries(profile.ID, &d)
		if err != nil {
			return nil, fmt.Errorf("list entries for %s: %w", d.Format(models.DateLayout), err)
		}
		weekly = append(weekly, Values(entries)...)
	}
	if weekly == nil {
		weekly = []models.FoodEntry{}
	}

	in := g.engine.ComputeInsight(profile, Values(daily), weekly, day)
	g.log.Debug("computed insight",
		zap.String("profile_id", profile.ID.String()),
		zap.String("date", day.Format(models.DateLayout)),
		zap.Int("entries", len(daily)),
		zap.Int("week_entries", len(weekly)),
		zap.Int("conflicts", len(in.Conflicts)),
		zap.Float64("health_score", in.HealthScore),
		zap.String("status", string(in.Status)))

	if g.cache != nil {
		if err := g.cache.SaveInsight(in); err != nil {
			g.log.Warn("failed to cache insight",
				zap.String("profile_id", profile.ID.String()),
				zap.String("date", day.Format(models.DateLayout)),
				zap.Error(err))
		}
	}

	return in, nil
}
