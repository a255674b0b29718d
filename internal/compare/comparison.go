// Package compare implements the model comparison engine: it trains every
// registered forecaster on one shared train/test split of a target series,
// evaluates each forecast against the same held-out suffix, ranks the models
// by MAE and selects the single best performer. Per-model training failures
// are isolated; only invalid input or a run where every model fails escalate
// to the caller.
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aircastio/aircast/internal/dataset"
	"github.com/aircastio/aircast/internal/forecast"
	"github.com/aircastio/aircast/internal/logging"
)

// DefaultMinRows is the global minimum dataset size for a comparison
const DefaultMinRows = 20

// DefaultTestFraction is the held-out fraction used when a request leaves it unset
const DefaultTestFraction = 0.2

// Request holds the parameters of one comparison run
type Request struct {
	TargetColumn  string
	ForecastSteps int
	TestFraction  float64  // 0 means DefaultTestFraction
	Models        []string // subset of registered names; empty means all
}

// Comparison orchestrates one registry of named forecasters. Models are
// fitted sequentially in registration order, which also fixes the tie-break
// order for equal MAE.
//
// A Comparison is not safe for concurrent use: AddModel and Reset must not
// race with an in-flight TrainAndCompare on the same instance.
type Comparison struct {
	logger  *logging.Logger
	minRows int

	names  []string // registration order
	models map[string]forecast.Forecaster

	lastReport  *Report
	lastResults []*ModelResult
	lastActual  []float64
}

// New creates an empty comparison orchestrator
func New(logger *logging.Logger) *Comparison {
	if logger == nil {
		logger = logging.Global()
	}
	return &Comparison{
		logger:  logger,
		minRows: DefaultMinRows,
		models:  make(map[string]forecast.Forecaster),
	}
}

// SetMinRows overrides the minimum dataset size required by validation.
// Non-positive values are ignored and keep the current minimum.
func (c *Comparison) SetMinRows(n int) {
	if n > 0 {
		c.minRows = n
	}
}

// AddModel registers a forecaster under a unique name
func (c *Comparison) AddModel(name string, f forecast.Forecaster) error {
	if name == "" {
		return &ValidationError{Field: "model", Reason: "name must not be empty"}
	}
	if f == nil {
		return &ValidationError{Field: "model", Reason: "forecaster must not be nil"}
	}
	if _, exists := c.models[name]; exists {
		return &DuplicateModelError{Name: name}
	}
	c.names = append(c.names, name)
	c.models[name] = f
	return nil
}

// ModelNames returns the registered model names in registration order
func (c *Comparison) ModelNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// TrainAndCompare runs the full comparison: validate, split, fit and
// evaluate every selected model against the same held-out suffix, rank the
// survivors and cache the resulting report.
func (c *Comparison) TrainAndCompare(ctx context.Context, ds *dataset.Dataset, req Request) (*Report, error) {
	start := time.Now()

	selected, series, err := c.validate(ds, req)
	if err != nil {
		return nil, err
	}

	testFraction := req.TestFraction
	if testFraction == 0 {
		testFraction = DefaultTestFraction
	}

	train, test, err := Split(series, testFraction)
	if err != nil {
		return nil, err
	}

	var warnings []string
	horizon := req.ForecastSteps
	if horizon > len(test) {
		warnings = append(warnings,
			fmt.Sprintf("forecast_steps %d exceeds test partition length %d, evaluation clamped", horizon, len(test)))
		c.logger.Warn("Forecast horizon clamped to test partition",
			"requested", horizon, "evaluated", len(test))
		horizon = len(test)
	}
	actual := test[:horizon]

	results := make([]*ModelResult, 0, len(selected))
	for _, name := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := c.runModel(name, train, actual, horizon)
		if err != nil {
			// Metric computation failures are programming errors, never
			// recorded as model failures
			return nil, err
		}
		results = append(results, result)
	}

	report, err := BuildReport(results, uuid.New().String(), time.Now().UTC(), warnings)
	if err != nil {
		return nil, err
	}

	c.lastReport = report
	c.lastResults = results
	c.lastActual = actual

	c.logger.Info("Comparison completed",
		"run_id", report.RunID,
		"rows", ds.NumRows(),
		"models", len(results),
		"best_model", report.BestModel,
		"horizon", horizon,
		"duration_ms", time.Since(start).Milliseconds())

	return report, nil
}

// runModel fits and evaluates a single model with failure isolation: model
// errors become a failed ModelResult, not a call failure.
func (c *Comparison) runModel(name string, train, actual []float64, horizon int) (*ModelResult, error) {
	model := c.models[name]

	if err := model.Fit(train); err != nil {
		c.logger.Warn("Model training failed",
			"model", name, "train_size", len(train), "error", err)
		return &ModelResult{Name: name, FailureReason: err.Error()}, nil
	}

	predictions, err := model.Forecast(horizon)
	if err != nil {
		c.logger.Warn("Model forecast failed",
			"model", name, "horizon", horizon, "error", err)
		return &ModelResult{Name: name, FailureReason: err.Error()}, nil
	}
	if len(predictions) != horizon {
		reason := fmt.Sprintf("model returned %d predictions for horizon %d", len(predictions), horizon)
		c.logger.Warn("Model violated the forecast contract", "model", name, "detail", reason)
		return &ModelResult{Name: name, FailureReason: reason}, nil
	}

	mae, err := MAE(predictions, actual)
	if err != nil {
		return nil, err
	}
	rmse, err := RMSE(predictions, actual)
	if err != nil {
		return nil, err
	}

	return &ModelResult{
		Name:        name,
		Predictions: predictions,
		MAE:         mae,
		RMSE:        rmse,
		SampleCount: horizon,
		Success:     true,
	}, nil
}

// validate checks the request before any model is touched and resolves the
// selected model names and target series
func (c *Comparison) validate(ds *dataset.Dataset, req Request) ([]string, []float64, error) {
	if ds == nil {
		return nil, nil, &ValidationError{Field: "data", Reason: "dataset is required"}
	}
	if req.TargetColumn == "" {
		return nil, nil, &ValidationError{Field: "target_col", Reason: "must not be empty"}
	}
	if !ds.HasColumn(req.TargetColumn) {
		return nil, nil, &ValidationError{
			Field:  "target_col",
			Reason: fmt.Sprintf("column %q not found in data", req.TargetColumn),
		}
	}
	if ds.NumRows() < c.minRows {
		return nil, nil, &ValidationError{
			Field:  "data",
			Reason: fmt.Sprintf("need at least %d rows, got %d", c.minRows, ds.NumRows()),
		}
	}
	if req.ForecastSteps < 1 {
		return nil, nil, &ValidationError{Field: "forecast_steps", Reason: "must be >= 1"}
	}
	if req.TestFraction < 0 || req.TestFraction >= 1 {
		return nil, nil, &ValidationError{Field: "test_size", Reason: "must be in (0, 1)"}
	}
	if len(c.names) == 0 {
		return nil, nil, &ValidationError{Field: "models", Reason: "no models registered"}
	}

	selected := c.names
	if len(req.Models) > 0 {
		selected = make([]string, 0, len(req.Models))
		seen := make(map[string]bool)
		// Preserve registration order regardless of the request's ordering
		requested := make(map[string]bool, len(req.Models))
		for _, name := range req.Models {
			if _, ok := c.models[name]; !ok {
				return nil, nil, &ValidationError{
					Field:  "models",
					Reason: fmt.Sprintf("unknown model %q", name),
				}
			}
			requested[name] = true
		}
		for _, name := range c.names {
			if requested[name] && !seen[name] {
				selected = append(selected, name)
				seen[name] = true
			}
		}
	}

	series, err := ds.Column(req.TargetColumn)
	if err != nil {
		return nil, nil, &ValidationError{Field: "target_col", Reason: err.Error()}
	}

	return selected, series, nil
}

// LastReport returns the most recent run's report
func (c *Comparison) LastReport() (*Report, error) {
	if c.lastReport == nil {
		return nil, ErrNoComparisonRun
	}
	return c.lastReport, nil
}

// BestModelName returns the winner of the most recent run
func (c *Comparison) BestModelName() (string, error) {
	if c.lastReport == nil {
		return "", ErrNoComparisonRun
	}
	return c.lastReport.BestModel, nil
}

// BestPredictions returns the winner's forecast from the most recent run
func (c *Comparison) BestPredictions() ([]float64, error) {
	if c.lastReport == nil {
		return nil, ErrNoComparisonRun
	}
	for _, r := range c.lastResults {
		if r.Name == c.lastReport.BestModel {
			out := make([]float64, len(r.Predictions))
			copy(out, r.Predictions)
			return out, nil
		}
	}
	return nil, ErrNoComparisonRun
}

// TestActual returns the held-out values the most recent run evaluated against
func (c *Comparison) TestActual() ([]float64, error) {
	if c.lastActual == nil {
		return nil, ErrNoComparisonRun
	}
	out := make([]float64, len(c.lastActual))
	copy(out, c.lastActual)
	return out, nil
}

// Results returns the most recent run's per-model results in registration order
func (c *Comparison) Results() ([]*ModelResult, error) {
	if c.lastResults == nil {
		return nil, ErrNoComparisonRun
	}
	out := make([]*ModelResult, len(c.lastResults))
	copy(out, c.lastResults)
	return out, nil
}

// Reset clears cached run state but keeps model registrations. Idempotent.
func (c *Comparison) Reset() {
	c.lastReport = nil
	c.lastResults = nil
	c.lastActual = nil
}
