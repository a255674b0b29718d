package services

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aircastio/aircast/internal/config"
	"github.com/aircastio/aircast/internal/dataset"
	"github.com/aircastio/aircast/internal/events"
	"github.com/aircastio/aircast/internal/logging"
)

const testSubject = "aircast.comparison.completed"

func testService(t *testing.T) (*ComparisonService, *events.MemoryPublisher) {
	t.Helper()

	publisher := events.NewMemoryPublisher()
	t.Cleanup(func() { _ = publisher.Close() })

	logger := logging.NewWithWriter(io.Discard, zerolog.ErrorLevel)
	cfg := config.Default().Forecast
	return NewComparisonService(logger, cfg, publisher, testSubject), publisher
}

func seasonalDataset(column string, n int) *dataset.Dataset {
	values := make([]float64, n)
	for i := range values {
		values[i] = 80 + 20*math.Sin(2*math.Pi*float64(i%12)/12) + math.Sin(float64(i)*0.9)
	}
	ds, err := dataset.FromFloats([]string{column}, [][]float64{values})
	if err != nil {
		panic(err)
	}
	return ds
}

func TestComparisonService_Execute(t *testing.T) {
	svc, publisher := testService(t)
	ds := seasonalDataset("PM2.5", 100)

	resp, err := svc.Execute(context.Background(), &CompareRequest{Dataset: ds})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.TargetColumn != "PM2.5" {
		t.Errorf("TargetColumn = %s, want the configured default", resp.TargetColumn)
	}
	if resp.ForecastSteps != 6 {
		t.Errorf("ForecastSteps = %d, want the configured default 6", resp.ForecastSteps)
	}
	if resp.Rows != 100 {
		t.Errorf("Rows = %d, want 100", resp.Rows)
	}
	if resp.BestModel == "" {
		t.Error("No winner selected")
	}
	if resp.Report == nil {
		t.Fatal("Response missing the comparison report")
	}

	// A completion event must be on the wire
	payload, ok := publisher.Next(testSubject)
	if !ok {
		t.Fatal("No comparison event published")
	}
	var event events.ComparisonCompleted
	if err := events.Decode(payload, &event); err != nil {
		t.Fatalf("Failed to decode event: %v", err)
	}
	if event.RunID != resp.Report.RunID {
		t.Errorf("Event run_id = %s, want %s", event.RunID, resp.Report.RunID)
	}
	if event.BestModel != resp.BestModel {
		t.Errorf("Event best_model = %s, want %s", event.BestModel, resp.BestModel)
	}
	if event.Rows != 100 {
		t.Errorf("Event rows = %d", event.Rows)
	}
}

func TestComparisonService_ExecuteOverrides(t *testing.T) {
	svc, _ := testService(t)
	ds := seasonalDataset("NO2", 100)

	resp, err := svc.Execute(context.Background(), &CompareRequest{
		Dataset:       ds,
		TargetColumn:  "NO2",
		ForecastSteps: 3,
		TestSize:      0.3,
		Models:        []string{"gbt"},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.TargetColumn != "NO2" || resp.ForecastSteps != 3 {
		t.Errorf("Overrides not applied: %+v", resp)
	}
	if len(resp.Report.Models) != 1 {
		t.Errorf("Model subset not applied: %d models", len(resp.Report.Models))
	}
	if resp.BestModel != "gbt" {
		t.Errorf("BestModel = %s, want gbt", resp.BestModel)
	}
}

func TestComparisonService_ExecuteNilRequest(t *testing.T) {
	svc, _ := testService(t)

	for _, req := range []*CompareRequest{nil, {}} {
		_, err := svc.Execute(context.Background(), req)
		svcErr, ok := err.(*ServiceError)
		if !ok {
			t.Fatalf("Expected ServiceError, got %T: %v", err, err)
		}
		if svcErr.Code != "INVALID_INPUT" {
			t.Errorf("Code = %s, want INVALID_INPUT", svcErr.Code)
		}
	}
}

func TestComparisonService_ExecuteInvalidInput(t *testing.T) {
	svc, publisher := testService(t)
	ds := seasonalDataset("PM2.5", 100)

	_, err := svc.Execute(context.Background(), &CompareRequest{
		Dataset:      ds,
		TargetColumn: "missing_column",
	})
	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected ServiceError, got %T: %v", err, err)
	}
	if svcErr.Code != "INVALID_INPUT" {
		t.Errorf("Code = %s, want INVALID_INPUT", svcErr.Code)
	}
	if svcErr.Details["field"] != "target_col" {
		t.Errorf("Details = %v", svcErr.Details)
	}
	// No event for a failed run
	if _, ok := publisher.Next(testSubject); ok {
		t.Error("Event published for a failed run")
	}
}

func TestComparisonService_ExecuteTooFewRows(t *testing.T) {
	svc, _ := testService(t)
	ds := seasonalDataset("PM2.5", 10)

	_, err := svc.Execute(context.Background(), &CompareRequest{Dataset: ds})
	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected ServiceError, got %T: %v", err, err)
	}
	if svcErr.Code != "INVALID_INPUT" {
		t.Errorf("Code = %s, want INVALID_INPUT", svcErr.Code)
	}
}

func TestComparisonService_ConfiguredMinRows(t *testing.T) {
	svc, _ := testService(t)
	svc.cfg.MinRows = 50

	// 25 rows clears the built-in minimum but not the configured one
	ds := seasonalDataset("PM2.5", 25)
	_, err := svc.Execute(context.Background(), &CompareRequest{Dataset: ds})
	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected ServiceError, got %T: %v", err, err)
	}
	if svcErr.Code != "INVALID_INPUT" {
		t.Errorf("Code = %s, want INVALID_INPUT", svcErr.Code)
	}

	svc.cfg.MinRows = 50
	if _, err := svc.Execute(context.Background(), &CompareRequest{Dataset: seasonalDataset("PM2.5", 60)}); err != nil {
		t.Errorf("60 rows rejected at configured minimum 50: %v", err)
	}
}

func TestComparisonService_ExecuteNoValidModel(t *testing.T) {
	svc, _ := testService(t)
	// 25 rows leaves a 20-row train partition: below both models' minimums
	// once the seasonal period is raised
	svc.cfg.Seasonal.Period = 24
	svc.cfg.GBT.Lags = []int{48}

	ds := seasonalDataset("PM2.5", 25)
	_, err := svc.Execute(context.Background(), &CompareRequest{Dataset: ds})
	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected ServiceError, got %T: %v", err, err)
	}
	if svcErr.Code != "NO_VALID_MODEL" {
		t.Errorf("Code = %s, want NO_VALID_MODEL", svcErr.Code)
	}
	failures, ok := svcErr.Details["failures"].(map[string]interface{})
	if !ok || len(failures) != 2 {
		t.Errorf("Expected per-model failure details, got %v", svcErr.Details)
	}
}

func TestComparisonService_ExecuteCancelled(t *testing.T) {
	svc, _ := testService(t)
	ds := seasonalDataset("PM2.5", 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Execute(ctx, &CompareRequest{Dataset: ds})
	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected ServiceError, got %T: %v", err, err)
	}
	if svcErr.Code != "REQUEST_CANCELLED" {
		t.Errorf("Code = %s, want REQUEST_CANCELLED", svcErr.Code)
	}
}

func TestComparisonService_NilPublisher(t *testing.T) {
	logger := logging.NewWithWriter(io.Discard, zerolog.ErrorLevel)
	svc := NewComparisonService(logger, config.Default().Forecast, nil, testSubject)

	ds := seasonalDataset("PM2.5", 60)
	if _, err := svc.Execute(context.Background(), &CompareRequest{Dataset: ds}); err != nil {
		t.Fatalf("Execute without a publisher failed: %v", err)
	}
}
