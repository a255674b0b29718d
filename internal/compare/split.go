package compare

// Split partitions a chronologically ordered series into a training prefix
// and a test suffix. The test partition is always the trailing contiguous
// slice: shuffling a time series would leak future values into training.
// Deterministic: identical input and fraction always produce identical
// partitions, and train ++ test reproduces the input exactly.
func Split(series []float64, testFraction float64) (train, test []float64, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, &ValidationError{
			Field:  "test_size",
			Reason: "must be in (0, 1)",
		}
	}

	testLen := int(float64(len(series)) * testFraction)
	if testLen < 1 {
		return nil, nil, &ValidationError{
			Field:  "data",
			Reason: "series too short to hold a test partition at the requested fraction",
		}
	}
	trainLen := len(series) - testLen
	if trainLen < 1 {
		return nil, nil, &ValidationError{
			Field:  "data",
			Reason: "series too short to hold a training partition at the requested fraction",
		}
	}

	return series[:trainLen], series[trainLen:], nil
}
