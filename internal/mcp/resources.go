// ABOUTME: MCP resource implementations for the nutrition tracker.
// ABOUTME: Provides nutri://profiles and nutri://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/nutri/internal/insight"
	"github.com/harperreed/nutri/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	profilesURI = "nutri://profiles"
	todayURI    = "nutri://today"
)

func (s *Server) registerResources() {
	// nutri://profiles - every profile with its health context
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         profilesURI,
		Name:        "Health Profiles",
		Description: "All health profiles with conditions, allergies, and medications",
		MIMEType:    "application/json",
	}, s.handleProfilesResource)

	// nutri://today - today's entries and totals per profile
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Food Log",
		Description: "Food entries logged today with nutrient totals for each profile",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleProfilesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	profiles, err := s.repo.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []*models.HealthProfile{}
	}

	return jsonResource(profilesURI, map[string]interface{}{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

type dayLog struct {
	ProfileID string                `json:"profile_id"`
	Name      string                `json:"name"`
	Entries   []*models.FoodEntry   `json:"entries"`
	Totals    models.NutrientTotals `json:"totals"`
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.Day(s.now())

	profiles, err := s.repo.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	logs := make([]dayLog, 0, len(profiles))
	total := 0
	for _, p := range profiles {
		entries, err := s.repo.ListEntries(p.ID, &today)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries: %w", err)
		}
		if entries == nil {
			entries = []*models.FoodEntry{}
		}
		total += len(entries)
		logs = append(logs, dayLog{
			ProfileID: p.ID.String(),
			Name:      p.Name,
			Entries:   entries,
			Totals:    insight.Aggregate(insight.Values(entries)),
		})
	}

	return jsonResource(todayURI, map[string]interface{}{
		"date":     today.Format(models.DateLayout),
		"profiles": logs,
		"counts": map[string]int{
			"profiles": len(logs),
			"entries":  total,
		},
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
