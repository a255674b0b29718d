// Package dataset provides the tabular input type consumed by the model
// comparison engine: named columns of equal length holding numeric values
// in chronological row order.
package dataset

import (
	"encoding/json"
	"fmt"
)

// Dataset is an immutable column-oriented table. Rows are chronologically
// ordered and must never be reordered after construction.
type Dataset struct {
	columns []string
	index   map[string]int
	data    [][]float64 // column-major, data[i] is the column at columns[i]
}

// FromRows builds a Dataset from row-major cells. Every row must have
// exactly len(columns) cells and every cell must be numeric.
func FromRows(columns []string, rows [][]interface{}) (*Dataset, error) {
	d, err := newEmpty(columns)
	if err != nil {
		return nil, err
	}
	for i := range d.data {
		d.data[i] = make([]float64, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", r, len(row), len(columns))
		}
		for c, cell := range row {
			v, ok := toFloat64(cell)
			if !ok {
				return nil, fmt.Errorf("non-numeric value in column %q at row %d: %v", columns[c], r, cell)
			}
			d.data[c][r] = v
		}
	}
	return d, nil
}

// FromColumns builds a Dataset from column-major cells. The columns slice
// fixes the column order; every named column must be present in cols and all
// columns must share one length.
func FromColumns(columns []string, cols map[string][]interface{}) (*Dataset, error) {
	d, err := newEmpty(columns)
	if err != nil {
		return nil, err
	}
	rows := -1
	for i, name := range columns {
		raw, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("column %q missing from data", name)
		}
		if rows == -1 {
			rows = len(raw)
		} else if len(raw) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(raw), rows)
		}
		values := make([]float64, len(raw))
		for r, cell := range raw {
			v, numeric := toFloat64(cell)
			if !numeric {
				return nil, fmt.Errorf("non-numeric value in column %q at row %d: %v", name, r, cell)
			}
			values[r] = v
		}
		d.data[i] = values
	}
	return d, nil
}

// FromFloats builds a Dataset from already-converted column values,
// used by library callers and tests.
func FromFloats(columns []string, cols [][]float64) (*Dataset, error) {
	d, err := newEmpty(columns)
	if err != nil {
		return nil, err
	}
	if len(cols) != len(columns) {
		return nil, fmt.Errorf("got %d columns of data for %d column names", len(cols), len(columns))
	}
	rows := -1
	for i, col := range cols {
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", columns[i], len(col), rows)
		}
		values := make([]float64, len(col))
		copy(values, col)
		d.data[i] = values
	}
	return d, nil
}

func newEmpty(columns []string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column name: %q", name)
		}
		index[name] = i
	}
	names := make([]string, len(columns))
	copy(names, columns)
	return &Dataset{
		columns: names,
		index:   index,
		data:    make([][]float64, len(columns)),
	}, nil
}

// NumRows returns the number of rows
func (d *Dataset) NumRows() int {
	if len(d.data) == 0 {
		return 0
	}
	return len(d.data[0])
}

// Columns returns the ordered column names
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	copy(names, d.columns)
	return names
}

// HasColumn reports whether the named column exists
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns a copy of the named column's values in row order
func (d *Dataset) Column(name string) ([]float64, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column: %q", name)
	}
	values := make([]float64, len(d.data[i]))
	copy(values, d.data[i])
	return values, nil
}

// toFloat64 converts JSON-decoded and native numeric values to float64
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
