package forecast

import "math"

// Common series generators shared by the model tests

// constantSeries returns n copies of v
func constantSeries(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// trendingSeries returns a linear series: intercept + slope*i
func trendingSeries(n int, intercept, slope float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = intercept + slope*float64(i)
	}
	return s
}

// seasonalSeries returns a sinusoid around a positive base level
func seasonalSeries(n, period int, base, amplitude float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = base + amplitude*math.Sin(2*math.Pi*float64(i%period)/float64(period))
	}
	return s
}
