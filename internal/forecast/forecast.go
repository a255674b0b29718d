// Package forecast implements the forecasting models compared by the
// comparison engine. Every model satisfies the Forecaster contract: fit on a
// chronologically ordered series, then produce a forecast of exactly the
// requested horizon. How a model extends its forecast across the horizon
// (native roll-forward vs. recursion on its own outputs) is an internal
// detail hidden behind the contract.
package forecast

// Forecaster is the capability contract every model must satisfy
type Forecaster interface {
	// Name returns the model name
	Name() string

	// MinObservations returns the minimum training series length the model
	// can be fitted on
	MinObservations() int

	// Fit estimates internal state from the training series. It replaces any
	// previously fitted state and fails with *InsufficientDataError if the
	// series is shorter than MinObservations.
	Fit(series []float64) error

	// Forecast produces exactly horizon future values. It never truncates or
	// pads; if the full horizon cannot be produced it fails with
	// *ForecastError.
	Forecast(horizon int) ([]float64, error)
}
