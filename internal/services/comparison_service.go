package services

import (
	"context"
	"errors"
	"time"

	"github.com/aircastio/aircast/internal/compare"
	"github.com/aircastio/aircast/internal/config"
	"github.com/aircastio/aircast/internal/dataset"
	"github.com/aircastio/aircast/internal/events"
	"github.com/aircastio/aircast/internal/forecast"
	"github.com/aircastio/aircast/internal/logging"
)

// ComparisonService runs model comparisons for the HTTP layer. Each Execute
// call builds a fresh orchestrator from configuration, so the service is
// safe for concurrent requests.
type ComparisonService struct {
	logger    *logging.Logger
	cfg       config.ForecastConfig
	publisher events.Publisher
	subject   string
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(
	logger *logging.Logger,
	cfg config.ForecastConfig,
	publisher events.Publisher,
	subject string,
) *ComparisonService {
	return &ComparisonService{
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
		subject:   subject,
	}
}

// CompareRequest represents a comparison request after payload parsing
type CompareRequest struct {
	Dataset       *dataset.Dataset
	TargetColumn  string   // empty means the configured default
	ForecastSteps int      // 0 means the configured default
	TestSize      float64  // 0 means the configured default
	Models        []string // empty means all registered models
}

// CompareResponse represents the complete comparison response
type CompareResponse struct {
	TargetColumn  string `json:"target_column"`
	Rows          int    `json:"rows"`
	ForecastSteps int    `json:"forecast_steps"`
	*compare.Selection
}

// Execute runs a comparison and publishes a completion event
func (s *ComparisonService) Execute(ctx context.Context, req *CompareRequest) (*CompareResponse, error) {
	startExec := time.Now()

	if req == nil || req.Dataset == nil {
		return nil, NewServiceError("INVALID_INPUT", "request data is required")
	}

	targetColumn := req.TargetColumn
	if targetColumn == "" {
		targetColumn = s.cfg.TargetColumn
	}
	forecastSteps := req.ForecastSteps
	if forecastSteps == 0 {
		forecastSteps = s.cfg.ForecastSteps
	}
	testSize := req.TestSize
	if testSize == 0 {
		testSize = s.cfg.TestSize
	}

	c := compare.New(s.logger)
	c.SetMinRows(s.cfg.MinRows)
	if err := s.registerModels(c); err != nil {
		return nil, NewServiceErrorWithDetails("COMPARISON_FAILED",
			"Failed to initialize models",
			map[string]interface{}{"error": err.Error()})
	}

	report, err := c.TrainAndCompare(ctx, req.Dataset, compare.Request{
		TargetColumn:  targetColumn,
		ForecastSteps: forecastSteps,
		TestFraction:  testSize,
		Models:        req.Models,
	})
	if err != nil {
		return nil, s.mapComparisonError(err)
	}

	selection, err := c.Selection()
	if err != nil {
		return nil, NewServiceErrorWithDetails("COMPARISON_FAILED",
			"Failed to shape comparison result",
			map[string]interface{}{"error": err.Error()})
	}

	s.publishCompleted(ctx, req.Dataset, report, selection, targetColumn, forecastSteps, startExec)

	return &CompareResponse{
		TargetColumn:  targetColumn,
		Rows:          req.Dataset.NumRows(),
		ForecastSteps: forecastSteps,
		Selection:     selection,
	}, nil
}

// registerModels wires the configured forecasters in their fixed order
func (s *ComparisonService) registerModels(c *compare.Comparison) error {
	seasonal := forecast.NewSeasonalForecaster()
	if s.cfg.Seasonal.Period > 0 {
		seasonal.Period = s.cfg.Seasonal.Period
	}
	if s.cfg.Seasonal.Alpha > 0 {
		seasonal.Alpha = s.cfg.Seasonal.Alpha
	}
	if s.cfg.Seasonal.Beta > 0 {
		seasonal.Beta = s.cfg.Seasonal.Beta
	}
	if s.cfg.Seasonal.Gamma > 0 {
		seasonal.Gamma = s.cfg.Seasonal.Gamma
	}
	if err := c.AddModel("seasonal", seasonal); err != nil {
		return err
	}

	gbt := forecast.NewGBTForecaster()
	if s.cfg.GBT.NEstimators > 0 {
		gbt.NEstimators = s.cfg.GBT.NEstimators
	}
	if s.cfg.GBT.MaxDepth > 0 {
		gbt.MaxDepth = s.cfg.GBT.MaxDepth
	}
	if s.cfg.GBT.LearningRate > 0 {
		gbt.LearningRate = s.cfg.GBT.LearningRate
	}
	if s.cfg.GBT.MinLeafSize > 0 {
		gbt.MinLeafSize = s.cfg.GBT.MinLeafSize
	}
	if len(s.cfg.GBT.Lags) > 0 {
		gbt.Lags = s.cfg.GBT.Lags
	}
	if s.cfg.GBT.RollingWindow > 0 {
		gbt.RollingWindow = s.cfg.GBT.RollingWindow
	}
	return c.AddModel("gbt", gbt)
}

// mapComparisonError converts engine errors into service error codes
func (s *ComparisonService) mapComparisonError(err error) error {
	var validation *compare.ValidationError
	if errors.As(err, &validation) {
		return NewServiceErrorWithDetails("INVALID_INPUT", validation.Error(),
			map[string]interface{}{"field": validation.Field})
	}

	var noValid *compare.NoValidModelError
	if errors.As(err, &noValid) {
		details := map[string]interface{}{"attempted": noValid.Attempted}
		failures := make(map[string]interface{}, len(noValid.Failures))
		for name, reason := range noValid.Failures {
			failures[name] = reason
		}
		details["failures"] = failures
		return NewServiceErrorWithDetails("NO_VALID_MODEL", noValid.Error(), details)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewServiceError("REQUEST_CANCELLED", err.Error())
	}

	return NewServiceErrorWithDetails("COMPARISON_FAILED",
		"Comparison run failed",
		map[string]interface{}{"error": err.Error()})
}

// publishCompleted emits the completion event. Publishing is best effort:
// a broker failure is logged, never surfaced to the caller.
func (s *ComparisonService) publishCompleted(
	ctx context.Context,
	ds *dataset.Dataset,
	report *compare.Report,
	selection *compare.Selection,
	targetColumn string,
	forecastSteps int,
	startExec time.Time,
) {
	if s.publisher == nil {
		return
	}

	event := events.ComparisonCompleted{
		RunID:         report.RunID,
		Timestamp:     report.Timestamp.Format(time.RFC3339),
		TargetColumn:  targetColumn,
		Rows:          ds.NumRows(),
		BestModel:     report.BestModel,
		ModelMAE:      make(map[string]float64, len(selection.Metrics)),
		ForecastSteps: forecastSteps,
		DurationMS:    time.Since(startExec).Milliseconds(),
	}
	for name, metrics := range selection.Metrics {
		event.ModelMAE[name] = metrics.MAE
	}
	for name, entry := range report.Models {
		if !entry.Success {
			event.FailedModels = append(event.FailedModels, name)
		}
	}

	payload, err := events.Encode(event)
	if err != nil {
		s.logger.Error("Failed to encode comparison event", "run_id", report.RunID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, s.subject, payload); err != nil {
		s.logger.Error("Failed to publish comparison event",
			"run_id", report.RunID, "subject", s.subject, "error", err)
	}
}
