package compare

import (
	"context"

	"github.com/aircastio/aircast/internal/dataset"
	"github.com/aircastio/aircast/internal/forecast"
	"github.com/aircastio/aircast/internal/logging"
)

// ModelMetrics is the per-model error summary exposed by the facade
type ModelMetrics struct {
	MAE         float64 `json:"mae"`
	RMSE        float64 `json:"rmse"`
	SampleCount int     `json:"sample_count"`
}

// Selection is the trimmed result most callers need: the winner plus
// per-model metrics and predictions, with the full report attached
type Selection struct {
	BestModel      string                  `json:"best_model"`
	Metrics        map[string]ModelMetrics `json:"metrics"`
	Predictions    map[string][]float64    `json:"predictions"`
	TestActual     []float64               `json:"test_actual"`
	WinnerForecast []float64               `json:"winner_forecast"`
	Report         *Report                 `json:"comparison_report"`
}

// SelectBest is the single-call convenience entry point: it wires the two
// standard forecasters with default configuration, runs a comparison with
// the default held-out fraction and returns the trimmed selection. It adds
// no validation or failure semantics of its own.
func SelectBest(ds *dataset.Dataset, targetCol string, forecastSteps int) (*Selection, error) {
	c := New(logging.Global())
	if err := c.AddModel("seasonal", forecast.NewSeasonalForecaster()); err != nil {
		return nil, err
	}
	if err := c.AddModel("gbt", forecast.NewGBTForecaster()); err != nil {
		return nil, err
	}

	_, err := c.TrainAndCompare(context.Background(), ds, Request{
		TargetColumn:  targetCol,
		ForecastSteps: forecastSteps,
		TestFraction:  DefaultTestFraction,
	})
	if err != nil {
		return nil, err
	}

	return c.Selection()
}

// Selection shapes the most recent run into the facade result
func (c *Comparison) Selection() (*Selection, error) {
	report, err := c.LastReport()
	if err != nil {
		return nil, err
	}
	results, err := c.Results()
	if err != nil {
		return nil, err
	}
	actual, err := c.TestActual()
	if err != nil {
		return nil, err
	}

	sel := &Selection{
		BestModel:   report.BestModel,
		Metrics:     make(map[string]ModelMetrics),
		Predictions: make(map[string][]float64),
		TestActual:  actual,
		Report:      report,
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		sel.Metrics[r.Name] = ModelMetrics{
			MAE:         r.MAE,
			RMSE:        r.RMSE,
			SampleCount: r.SampleCount,
		}
		predictions := make([]float64, len(r.Predictions))
		copy(predictions, r.Predictions)
		sel.Predictions[r.Name] = predictions
		if r.Name == report.BestModel {
			sel.WinnerForecast = predictions
		}
	}
	return sel, nil
}
