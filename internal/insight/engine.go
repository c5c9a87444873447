// ABOUTME: Engine composes all insight components into a single Insight.
// ABOUTME: Pure and safe for concurrent use; the clock is injectable.
package insight

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

// Engine computes insights. The zero value is not usable; call NewEngine.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for seasonal branching and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine using time.Now unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeInsight builds the Insight for profile on date. weekly holds the
// entries of the 7-day window ending on date; a nil weekly slice omits the
// weekly summary.
func (e *Engine) ComputeInsight(profile *models.HealthProfile, daily, weekly []models.FoodEntry, date time.Time) *models.Insight {
	conflicts := DetectConflicts(profile, daily)
	totals := Aggregate(daily)

	in := &models.Insight{
		Conflicts:       conflicts,
		Recommendations: Recommend(profile, daily, e.now()),
		HealthScore:     Score(profile, daily, conflicts),
		Status:          Classify(conflicts),
		DailyTotals:     &totals,
		Date:            models.Day(date),
		CreatedAt:       e.now(),
	}
	if profile != nil {
		in.ProfileID = profile.ID
		in.ID = insightID(profile.ID, in.Date)
	}
	if weekly != nil {
		summary := Summarize(profile, weekly)
		in.WeeklySummary = &summary
	}
	return in
}

// insightID derives a stable ID so a recomputed insight replaces its cached copy.
func insightID(profileID uuid.UUID, date time.Time) uuid.UUID {
	return uuid.NewSHA1(profileID, []byte(date.Format(models.DateLayout)))
}

// Values dereferences entry pointers, skipping nils.
func Values(entries []*models.FoodEntry) []models.FoodEntry {
	out := make([]models.FoodEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}
