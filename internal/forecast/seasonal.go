package forecast

import (
	"math"
)

// SeasonalForecaster implements Holt-Winters triple exponential smoothing:
// a level, trend and multiplicative seasonal component fitted recursively
// over the series. Multi-step forecasts roll the fitted state forward, so
// the horizon extension is native to the model.
type SeasonalForecaster struct {
	Alpha  float64 // Level smoothing factor (0-1)
	Beta   float64 // Trend smoothing factor (0-1)
	Gamma  float64 // Seasonal smoothing factor (0-1)
	Period int     // Seasonal period in observations

	fitted *seasonalState
}

// seasonalState is the rolled-forward smoothing state after fitting
type seasonalState struct {
	level    float64
	trend    float64
	seasonal []float64 // seasonal factor history, indexed like the input series
	n        int       // training series length
}

// NewSeasonalForecaster creates a seasonal forecaster with default smoothing
// parameters and a 12-observation period
func NewSeasonalForecaster() *SeasonalForecaster {
	return &SeasonalForecaster{
		Alpha:  0.3,
		Beta:   0.1,
		Gamma:  0.1,
		Period: 12,
	}
}

// Name returns the model name
func (f *SeasonalForecaster) Name() string {
	return "seasonal"
}

// MinObservations requires two complete seasons to initialize the trend and
// seasonal factors
func (f *SeasonalForecaster) MinObservations() int {
	period := f.Period
	if period < 2 {
		period = 12
	}
	return 2 * period
}

// Fit estimates level, trend and seasonal factors over the series
func (f *SeasonalForecaster) Fit(series []float64) error {
	f.fitted = nil

	alpha := f.Alpha
	beta := f.Beta
	gamma := f.Gamma
	period := f.Period

	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	if beta <= 0 || beta > 1 {
		beta = 0.1
	}
	if gamma <= 0 || gamma > 1 {
		gamma = 0.1
	}
	if period < 2 {
		period = 12
	}

	if len(series) < 2*period {
		return &InsufficientDataError{Model: f.Name(), Need: 2 * period, Have: len(series)}
	}
	for _, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ForecastError{Model: f.Name(), Reason: "series contains NaN or Inf"}
		}
	}

	n := len(series)
	level := make([]float64, n)
	trend := make([]float64, n)
	seasonal := make([]float64, n)

	// Initialize level as mean of the first season
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += series[i]
	}
	level[0] = sum / float64(period)
	trend[0] = (series[period] - series[0]) / float64(period)

	for i := 0; i < period; i++ {
		if level[0] != 0 {
			seasonal[i] = series[i] / level[0]
		} else {
			seasonal[i] = 1.0
		}
	}

	for i := 1; i < n; i++ {
		var prevSeasonal float64
		if i >= period {
			prevSeasonal = seasonal[i-period]
		} else {
			prevSeasonal = seasonal[i]
		}
		if prevSeasonal == 0 {
			prevSeasonal = 1.0
		}

		level[i] = alpha*(series[i]/prevSeasonal) + (1-alpha)*(level[i-1]+trend[i-1])
		trend[i] = beta*(level[i]-level[i-1]) + (1-beta)*trend[i-1]
		if level[i] != 0 {
			seasonal[i] = gamma*(series[i]/level[i]) + (1-gamma)*prevSeasonal
		} else {
			seasonal[i] = prevSeasonal
		}
	}

	if !isFinite(level[n-1]) || !isFinite(trend[n-1]) {
		return &ForecastError{Model: f.Name(), Reason: "smoothing diverged to a non-finite state"}
	}

	f.Alpha, f.Beta, f.Gamma, f.Period = alpha, beta, gamma, period
	f.fitted = &seasonalState{
		level:    level[n-1],
		trend:    trend[n-1],
		seasonal: seasonal,
		n:        n,
	}
	return nil
}

// Forecast rolls the fitted state forward horizon steps
func (f *SeasonalForecaster) Forecast(horizon int) ([]float64, error) {
	if f.fitted == nil {
		return nil, &ForecastError{Model: f.Name(), Reason: "model has not been fitted"}
	}
	if horizon < 1 {
		return nil, &ForecastError{Model: f.Name(), Reason: "horizon must be >= 1"}
	}

	st := f.fitted
	out := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		// Seasonal factor from the matching position one period back
		idx := st.n - f.Period + (st.n+i)%f.Period
		factor := st.seasonal[idx]
		if factor == 0 {
			factor = 1.0
		}

		v := (st.level + float64(i+1)*st.trend) * factor
		if !isFinite(v) {
			return nil, &ForecastError{Model: f.Name(), Reason: "forecast produced a non-finite value"}
		}
		out[i] = v
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
