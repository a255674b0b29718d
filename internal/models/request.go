package models

// CompareRequest is the JSON body of a comparison request. Data arrives
// either column-oriented (columns) or row-oriented (column_names + rows);
// exactly one of the two must be set.
type CompareRequest struct {
	Columns     map[string][]interface{} `json:"columns,omitempty"`
	ColumnNames []string                 `json:"column_names,omitempty"`
	Rows        [][]interface{}          `json:"rows,omitempty"`

	TargetColumn  string   `json:"target_col,omitempty"`     // default from configuration
	ForecastSteps int      `json:"forecast_steps,omitempty"` // default from configuration
	TestSize      float64  `json:"test_size,omitempty"`      // default from configuration
	Models        []string `json:"models,omitempty"`         // empty means all
}
