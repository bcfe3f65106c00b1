// ABOUTME: MCP resource implementations for the diabetes metric store.
// ABOUTME: Provides glucolog://summary and glucolog://latest as JSON.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// glucolog://summary - per-domain counts and date spans
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "glucolog://summary",
		Name:        "Metric Store Summary",
		Description: "Row counts and date span for glucose, sleep, and exercise data",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// glucolog://latest - most recent record per domain
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "glucolog://latest",
		Name:        "Latest Readings",
		Description: "Most recent glucose reading, sleep record, and exercise session",
		MIMEType:    "application/json",
	}, s.handleLatestResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	domains := make(map[string]interface{}, len(models.AllDomains))
	for _, domain := range models.AllDomains {
		stats, err := s.repo.Stats(domain)
		if err != nil {
			return nil, fmt.Errorf("stats for %s: %w", domain, err)
		}
		domains[string(domain)] = stats
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"domains":      domains,
	}

	return jsonResource("glucolog://summary", result)
}

func (s *Server) handleLatestResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := make(map[string]interface{}, 3)

	glucose, err := s.repo.LatestGlucoseReading()
	if err != nil && !errors.Is(err, storage.ErrNoData) {
		return nil, fmt.Errorf("latest glucose: %w", err)
	}
	result["glucose"] = glucose

	sleep, err := s.repo.LatestSleepRecord()
	if err != nil && !errors.Is(err, storage.ErrNoData) {
		return nil, fmt.Errorf("latest sleep: %w", err)
	}
	result["sleep"] = sleep

	exercise, err := s.repo.LatestExerciseRecord()
	if err != nil && !errors.Is(err, storage.ErrNoData) {
		return nil, fmt.Errorf("latest exercise: %w", err)
	}
	result["exercise"] = exercise

	return jsonResource("glucolog://latest", result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
