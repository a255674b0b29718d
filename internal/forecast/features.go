package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Lag-feature engineering for the supervised forecaster. The same row
// builder serves training (historical lags) and forecasting (predicted lags
// appended to the working series), so there is no hidden state between the
// two paths.

// featureWidth returns the number of features per row: one per lag plus the
// rolling mean and rolling standard deviation
func featureWidth(lags []int) int {
	return len(lags) + 2
}

// minHistory returns the number of observations needed before the first
// feature row can be built
func minHistory(lags []int, window int) int {
	max := window
	for _, lag := range lags {
		if lag > max {
			max = lag
		}
	}
	return max
}

// buildFeatureRow builds the feature row for predicting series[t] from the
// values before t. t must be at least minHistory(lags, window).
func buildFeatureRow(series []float64, t int, lags []int, window int) []float64 {
	row := make([]float64, 0, featureWidth(lags))
	for _, lag := range lags {
		row = append(row, series[t-lag])
	}
	recent := series[t-window : t]
	row = append(row, stat.Mean(recent, nil))
	row = append(row, stat.StdDev(recent, nil))
	return row
}

// buildTrainingSet derives (features -> next value) pairs from the series
func buildTrainingSet(series []float64, lags []int, window int) (x [][]float64, y []float64, err error) {
	start := minHistory(lags, window)
	if len(series) <= start {
		return nil, nil, fmt.Errorf("series of length %d cannot produce lag features requiring %d observations", len(series), start)
	}
	n := len(series) - start
	x = make([][]float64, 0, n)
	y = make([]float64, 0, n)
	for t := start; t < len(series); t++ {
		x = append(x, buildFeatureRow(series, t, lags, window))
		y = append(y, series[t])
	}
	return x, y, nil
}
