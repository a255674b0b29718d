package compare

import (
	"errors"
	"fmt"
)

// ErrNoComparisonRun is returned by accessors called before any successful
// TrainAndCompare
var ErrNoComparisonRun = errors.New("no comparison has been run")

// ValidationError indicates malformed input, always raised before any model
// is touched
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// DuplicateModelError indicates an AddModel call reusing a registered name
type DuplicateModelError struct {
	Name string
}

func (e *DuplicateModelError) Error() string {
	return fmt.Sprintf("model %q is already registered", e.Name)
}

// NoValidModelError indicates every registered model failed for this call,
// leaving nothing to rank
type NoValidModelError struct {
	Attempted int
	Failures  map[string]string // model name -> failure reason
}

func (e *NoValidModelError) Error() string {
	return fmt.Sprintf("all %d models failed, nothing to compare", e.Attempted)
}

// MetricComputationError indicates an internal invariant violation in metric
// computation. It is a programming-error class and always surfaces.
type MetricComputationError struct {
	Reason string
}

func (e *MetricComputationError) Error() string {
	return fmt.Sprintf("metric computation failed: %s", e.Reason)
}
