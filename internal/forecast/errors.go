package forecast

import "fmt"

// InsufficientDataError indicates a training series shorter than a model's
// minimum history requirement
type InsufficientDataError struct {
	Model string
	Need  int
	Have  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need %d observations, have %d", e.Model, e.Need, e.Have)
}

// ForecastError indicates a model that fitted successfully could not produce
// the requested horizon
type ForecastError struct {
	Model  string
	Reason string
}

func (e *ForecastError) Error() string {
	return fmt.Sprintf("%s: forecast failed: %s", e.Model, e.Reason)
}
