package compare

import "math"

// Error metrics shared by every model in a comparison run. Predicted and
// actual sequences must already be aligned to the same held-out window;
// a length mismatch here means the orchestrator is broken, so it is
// reported as a MetricComputationError rather than silently tolerated.

// MAE computes the Mean Absolute Error between predicted and actual
func MAE(predicted, actual []float64) (float64, error) {
	if err := checkPair(predicted, actual); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range predicted {
		sum += math.Abs(predicted[i] - actual[i])
	}
	return sum / float64(len(predicted)), nil
}

// RMSE computes the Root Mean Squared Error between predicted and actual
func RMSE(predicted, actual []float64) (float64, error) {
	if err := checkPair(predicted, actual); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range predicted {
		diff := predicted[i] - actual[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(predicted))), nil
}

// PercentageDifference returns how much worse a model's MAE is than the
// winner's, in percent. The winner itself is exactly 0. A zero winner MAE
// with a nonzero model MAE yields +Inf; callers cap it before serializing.
func PercentageDifference(modelMAE, bestMAE float64) float64 {
	if modelMAE == bestMAE {
		return 0.0
	}
	if bestMAE == 0 {
		return math.Inf(1)
	}
	return (modelMAE - bestMAE) / bestMAE * 100
}

func checkPair(predicted, actual []float64) error {
	if len(predicted) == 0 {
		return &MetricComputationError{Reason: "empty input"}
	}
	if len(predicted) != len(actual) {
		return &MetricComputationError{Reason: "predicted and actual lengths differ"}
	}
	for i := range predicted {
		if math.IsNaN(predicted[i]) || math.IsNaN(actual[i]) {
			return &MetricComputationError{Reason: "input contains NaN"}
		}
		if math.IsInf(predicted[i], 0) || math.IsInf(actual[i], 0) {
			return &MetricComputationError{Reason: "input contains Inf"}
		}
	}
	return nil
}
