// ABOUTME: MCP tool implementations for diabetes metrics.
// ABOUTME: Data fetches, pattern detection, correlations, and monitoring status.
package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/glucolog/glucolog/internal/analysis"
	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// get_glucose_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_glucose_data",
		Description: "Get glucose readings (mg/dL), most recent first, optionally bounded by date range",
	}, s.handleGetGlucoseData)

	// get_sleep_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_sleep_data",
		Description: "Get nightly sleep records with stage breakdown and efficiency, most recent first",
	}, s.handleGetSleepData)

	// get_exercise_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise_data",
		Description: "Get exercise sessions with duration, most recent first",
	}, s.handleGetExerciseData)

	// detect_patterns
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "detect_patterns",
		Description: "Detect temporal patterns: hourly/weekday glucose, time-in-range, sleep and exercise habits",
	}, s.handleDetectPatterns)

	// find_correlations
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_correlations",
		Description: "Compute Pearson correlations between daily-aggregated exercise, sleep, and glucose metrics",
	}, s.handleFindCorrelations)

	// get_monitoring_status
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_monitoring_status",
		Description: "Report CGM ingestion freshness and completeness over a lookback window",
	}, s.handleGetMonitoringStatus)
}

// Tool input/output types

type fetchInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"Range start (YYYY-MM-DD); requires end_date"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"Range end (YYYY-MM-DD) inclusive; requires start_date"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Max records to return; omit for all"`
}

type detectPatternsInput struct {
	StartDate   string `json:"start_date,omitempty" jsonschema:"Range start (YYYY-MM-DD); requires end_date"`
	EndDate     string `json:"end_date,omitempty" jsonschema:"Range end (YYYY-MM-DD) inclusive; requires start_date"`
	PatternType string `json:"pattern_type,omitempty" jsonschema:"One of all, glucose, sleep, exercise, temporal (default all)"`
}

type findCorrelationsInput struct {
	StartDate       string `json:"start_date,omitempty" jsonschema:"Range start (YYYY-MM-DD); requires end_date"`
	EndDate         string `json:"end_date,omitempty" jsonschema:"Range end (YYYY-MM-DD) inclusive; requires start_date"`
	CorrelationType string `json:"correlation_type,omitempty" jsonschema:"One of all, exercise_glucose, sleep_glucose, sleep_exercise (default all)"`
}

type monitoringStatusInput struct {
	HoursBack int `json:"hours_back,omitempty" jsonschema:"Lookback window in hours (default 24)"`
}

type dataEnvelope struct {
	Table        string      `json:"table"`
	TotalRecords int         `json:"total_records"`
	DateRange    string      `json:"date_range"`
	Limit        string      `json:"limit"`
	Data         interface{} `json:"data"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// envelope wraps a fetched slice in the shared response shape.
func envelope(domain models.Domain, count int, r *models.DateRange, limit int, data interface{}) dataEnvelope {
	rangeLabel := "all"
	if r != nil {
		rangeLabel = r.String()
	}
	limitLabel := "none"
	if limit > 0 {
		limitLabel = strconv.Itoa(limit)
	}
	return dataEnvelope{
		Table:        domain.Table(),
		TotalRecords: count,
		DateRange:    rangeLabel,
		Limit:        limitLabel,
		Data:         data,
	}
}

// Tool handlers. Validation failures come back as structured error payloads,
// not protocol errors; only data-access failures are reported as errors.

func (s *Server) handleGetGlucoseData(ctx context.Context, req *mcp.CallToolRequest, input fetchInput) (*mcp.CallToolResult, any, error) {
	r, err := models.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errorPayload{Error: err.Error()}, nil
	}

	readings, err := s.repo.GlucoseReadings(storage.Query{Range: r, Limit: input.Limit})
	if err != nil {
		return nil, nil, fmt.Errorf("get glucose data: %w", err)
	}

	return nil, envelope(models.DomainGlucose, len(readings), r, input.Limit, readings), nil
}

func (s *Server) handleGetSleepData(ctx context.Context, req *mcp.CallToolRequest, input fetchInput) (*mcp.CallToolResult, any, error) {
	r, err := models.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errorPayload{Error: err.Error()}, nil
	}

	records, err := s.repo.SleepRecords(storage.Query{Range: r, Limit: input.Limit})
	if err != nil {
		return nil, nil, fmt.Errorf("get sleep data: %w", err)
	}

	return nil, envelope(models.DomainSleep, len(records), r, input.Limit, records), nil
}

func (s *Server) handleGetExerciseData(ctx context.Context, req *mcp.CallToolRequest, input fetchInput) (*mcp.CallToolResult, any, error) {
	r, err := models.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errorPayload{Error: err.Error()}, nil
	}

	records, err := s.repo.ExerciseRecords(storage.Query{Range: r, Limit: input.Limit})
	if err != nil {
		return nil, nil, fmt.Errorf("get exercise data: %w", err)
	}

	return nil, envelope(models.DomainExercise, len(records), r, input.Limit, records), nil
}

func (s *Server) handleDetectPatterns(ctx context.Context, req *mcp.CallToolRequest, input detectPatternsInput) (*mcp.CallToolResult, any, error) {
	r, err := models.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errorPayload{Error: err.Error()}, nil
	}

	patternType, err := analysis.ParsePatternType(input.PatternType)
	if err != nil {
		return nil, errorPayload{Error: err.Error()}, nil
	}

	report, err := s.analyzer.DetectPatterns(r, patternType)
	if err != nil {
		return nil, nil, fmt.Errorf("detect patterns: %w", err)
	}

	return nil, report, nil
}

func (s *Server) handleFindCorrelations(ctx context.Context, req *mcp.CallToolRequest, input findCorrelationsInput) (*mcp.CallToolResult, any, error) {
	r, err := models.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errorPayload{Error: err.Error()}, nil
	}

	corrType, err := analysis.ParseCorrelationType(input.CorrelationType)
	if err != nil {
		return nil, errorPayload{Error: err.Error()}, nil
	}

	report, err := s.analyzer.FindCorrelations(r, corrType)
	if err != nil {
		return nil, nil, fmt.Errorf("find correlations: %w", err)
	}

	return nil, report, nil
}

func (s *Server) handleGetMonitoringStatus(ctx context.Context, req *mcp.CallToolRequest, input monitoringStatusInput) (*mcp.CallToolResult, any, error) {
	status, err := s.analyzer.MonitoringStatus(input.HoursBack)
	if err != nil {
		return nil, nil, fmt.Errorf("get monitoring status: %w", err)
	}

	return nil, status, nil
}
