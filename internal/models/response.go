package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ModelInfo describes one registered forecasting model
type ModelInfo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	MinObservations int    `json:"min_observations"`
}

// ModelListResponse represents the list models response
type ModelListResponse struct {
	Models []ModelInfo `json:"models"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
