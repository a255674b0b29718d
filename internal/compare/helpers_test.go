package compare

import (
	"math"

	"github.com/aircastio/aircast/internal/dataset"
	"github.com/aircastio/aircast/internal/forecast"
)

// Shared fixtures for the comparison engine tests

// makeDataset builds a single-column dataset from a generator function
func makeDataset(column string, n int, gen func(i int) float64) *dataset.Dataset {
	values := make([]float64, n)
	for i := range values {
		values[i] = gen(i)
	}
	ds, err := dataset.FromFloats([]string{column}, [][]float64{values})
	if err != nil {
		panic(err)
	}
	return ds
}

// noisySeasonal generates a seasonal pattern with deterministic "noise"
func noisySeasonal(i int) float64 {
	seasonal := 15 * math.Sin(2*math.Pi*float64(i%12)/12)
	noise := 2 * math.Sin(float64(i)*0.7)
	return 100 + seasonal + noise
}

// stubForecaster is a scripted model for orchestrator tests
type stubForecaster struct {
	name     string
	minObs   int
	fitErr   error
	values   []float64 // repeated/truncated to the horizon
	forecast func(horizon int) ([]float64, error)
}

func (s *stubForecaster) Name() string { return s.name }

func (s *stubForecaster) MinObservations() int {
	if s.minObs == 0 {
		return 1
	}
	return s.minObs
}

func (s *stubForecaster) Fit(series []float64) error {
	if s.fitErr != nil {
		return s.fitErr
	}
	if len(series) < s.MinObservations() {
		return &forecast.InsufficientDataError{Model: s.name, Need: s.MinObservations(), Have: len(series)}
	}
	return nil
}

func (s *stubForecaster) Forecast(horizon int) ([]float64, error) {
	if s.forecast != nil {
		return s.forecast(horizon)
	}
	out := make([]float64, horizon)
	for i := range out {
		out[i] = s.values[i%len(s.values)]
	}
	return out, nil
}
