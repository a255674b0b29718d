package compare

import (
	"math"
	"sort"
	"time"
)

// ModelResult is the per-model outcome of one comparison run. Immutable once
// produced; a failed result never carries predictions or metrics.
type ModelResult struct {
	Name          string
	Predictions   []float64
	MAE           float64
	RMSE          float64
	SampleCount   int
	Success       bool
	FailureReason string
}

// ReportEntry is one model's row in a comparison report. Metric fields are
// pointers so that failed models serialize without them.
type ReportEntry struct {
	Rank                 int      `json:"rank,omitempty"`
	MAE                  *float64 `json:"mae,omitempty"`
	RMSE                 *float64 `json:"rmse,omitempty"`
	SampleCount          int      `json:"sample_count,omitempty"`
	IsBest               bool     `json:"is_best"`
	PercentageDifference *float64 `json:"percentage_difference,omitempty"`
	Success              bool     `json:"success"`
	FailureReason        string   `json:"failure_reason,omitempty"`
}

// Report aggregates all ModelResults of one comparison run
type Report struct {
	RunID     string                  `json:"run_id"`
	Timestamp time.Time               `json:"timestamp"`
	BestModel string                  `json:"best_model"`
	Warnings  []string                `json:"warnings,omitempty"`
	Models    map[string]*ReportEntry `json:"models"`
}

// BuildReport ranks the successful results ascending by MAE and assembles
// the report. The results slice must be in model registration order: a
// stable sort then breaks MAE ties by registration order, keeping the winner
// deterministic. Failed results appear in the report body without a rank.
func BuildReport(results []*ModelResult, runID string, now time.Time, warnings []string) (*Report, error) {
	successful := make([]*ModelResult, 0, len(results))
	failures := make(map[string]string)
	for _, r := range results {
		if r.Success {
			successful = append(successful, r)
		} else {
			failures[r.Name] = r.FailureReason
		}
	}
	if len(successful) == 0 {
		return nil, &NoValidModelError{Attempted: len(results), Failures: failures}
	}

	sort.SliceStable(successful, func(i, j int) bool {
		return successful[i].MAE < successful[j].MAE
	})

	bestMAE := successful[0].MAE
	report := &Report{
		RunID:     runID,
		Timestamp: now,
		BestModel: successful[0].Name,
		Warnings:  warnings,
		Models:    make(map[string]*ReportEntry, len(results)),
	}

	capped := false
	for rank, r := range successful {
		pctDiff := PercentageDifference(r.MAE, bestMAE)
		if math.IsInf(pctDiff, 1) {
			// JSON cannot carry +Inf; cap and flag
			pctDiff = math.MaxFloat64
			capped = true
		}

		mae, rmse := r.MAE, r.RMSE
		report.Models[r.Name] = &ReportEntry{
			Rank:                 rank + 1,
			MAE:                  &mae,
			RMSE:                 &rmse,
			SampleCount:          r.SampleCount,
			IsBest:               rank == 0,
			PercentageDifference: &pctDiff,
			Success:              true,
		}
	}

	if capped {
		report.Warnings = append(report.Warnings,
			"winner MAE is zero, percentage differences capped")
	}

	for _, r := range results {
		if r.Success {
			continue
		}
		report.Models[r.Name] = &ReportEntry{
			Success:       false,
			FailureReason: r.FailureReason,
		}
	}

	return report, nil
}
