// Package events publishes comparison lifecycle events to a message broker.
// The service only ever produces events; consumption is left to downstream
// systems, so the package exposes a Publisher and not a full queue.
package events

import "context"

// Publisher publishes encoded events to a subject/topic
type Publisher interface {
	// Publish publishes a single event payload
	Publish(ctx context.Context, subject string, data []byte) error

	// PublishBatch publishes multiple payloads and returns how many were
	// accepted by the broker
	PublishBatch(ctx context.Context, messages []BatchMessage) (int, error)

	// Close releases the broker connection
	Close() error
}

// BatchMessage is one payload in a batch publish
type BatchMessage struct {
	Subject string
	Data    []byte
}

// ComparisonCompleted is emitted after every successful comparison run
type ComparisonCompleted struct {
	RunID         string             `json:"run_id"`
	Timestamp     string             `json:"timestamp"`
	TargetColumn  string             `json:"target_column"`
	Rows          int                `json:"rows"`
	BestModel     string             `json:"best_model"`
	ModelMAE      map[string]float64 `json:"model_mae"`
	FailedModels  []string           `json:"failed_models,omitempty"`
	ForecastSteps int                `json:"forecast_steps"`
	DurationMS    int64              `json:"duration_ms"`
}
