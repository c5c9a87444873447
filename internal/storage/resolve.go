// ABOUTME: Profile selection shared by the CLI and MCP server.
// ABOUTME: Explicit reference, then configured default, then the only profile.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/nutri/internal/models"
)

// ErrNoProfile is returned when no profile reference was given and none can be inferred.
var ErrNoProfile = errors.New("no profile selected")

// ResolveProfile returns the profile named by the first non-empty ref.
// With no refs it falls back to the sole stored profile.
func ResolveProfile(repo Repository, refs ...string) (*models.HealthProfile, error) {
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		p, err := repo.GetProfile(ref)
		if err != nil {
			return nil, fmt.Errorf("get profile %s: %w", ref, err)
		}
		return p, nil
	}

	profiles, err := repo.ListProfiles()
	if err != nil {
		return nil, err
	}
	switch len(profiles) {
	case 0:
		return nil, fmt.Errorf("%w: create one first", ErrNoProfile)
	case 1:
		return profiles[0], nil
	default:
		return nil, fmt.Errorf("%w: %d profiles exist, pass a profile ID", ErrNoProfile, len(profiles))
	}
}
