// pkg/model/table.go
package model

import (
	"fmt"
	"strings"
	"time"
)

// DType identifies the declared element type of a column
type DType int

const (
	// DTypeText holds free-form string values
	DTypeText DType = iota
	// DTypeNumeric holds float64 values
	DTypeNumeric
	// DTypeBool holds boolean values
	DTypeBool
	// DTypeTime holds time.Time values
	DTypeTime
)

// String returns the dtype name used in reports
func (d DType) String() string {
	switch d {
	case DTypeText:
		return "text"
	case DTypeNumeric:
		return "float64"
	case DTypeBool:
		return "bool"
	case DTypeTime:
		return "datetime"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// Column is a named, typed sequence of cell values.
// A nil entry in Values is the canonical missing marker; any non-nil
// entry holds the Go value matching the column's DType (string,
// float64, bool or time.Time).
type Column struct {
	Name   string
	Type   DType
	Values []interface{}
}

// Table is an ordered collection of equal-length columns
type Table struct {
	Columns []Column
}

// NumRows returns the row count of the table
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumCols returns the column count of the table
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// Column returns the column with the given name, or nil if absent
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// NumericColumns returns the numeric-typed columns in table order
func (t *Table) NumericColumns() []*Column {
	var cols []*Column
	for i := range t.Columns {
		if t.Columns[i].Type == DTypeNumeric {
			cols = append(cols, &t.Columns[i])
		}
	}
	return cols
}

// Copy returns a deep copy of the table. Cell values themselves are
// immutable (strings, float64, bool, time.Time), so copying the value
// slices is sufficient.
func (t *Table) Copy() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, col := range t.Columns {
		values := make([]interface{}, len(col.Values))
		copy(values, col.Values)
		out.Columns[i] = Column{
			Name:   col.Name,
			Type:   col.Type,
			Values: values,
		}
	}
	return out
}

// Validate checks the table invariants: unique column names and a
// uniform row count across columns
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		if seen[col.Name] {
			return fmt.Errorf("duplicate column name: %s", col.Name)
		}
		seen[col.Name] = true
	}

	if len(t.Columns) > 1 {
		rows := len(t.Columns[0].Values)
		for _, col := range t.Columns[1:] {
			if len(col.Values) != rows {
				return fmt.Errorf("column %s has %d rows, expected %d",
					col.Name, len(col.Values), rows)
			}
		}
	}

	return nil
}

// MissingCount returns the number of nil cells in the column
func (c *Column) MissingCount() int {
	count := 0
	for _, v := range c.Values {
		if v == nil {
			count++
		}
	}
	return count
}

// Float64s returns the non-missing numeric values of the column in row
// order. Returns nil for non-numeric columns.
func (c *Column) Float64s() []float64 {
	if c.Type != DTypeNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := v.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// CellString renders a cell value the way reports display it
func CellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv64(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// strconv64 formats a float without trailing zero noise
func strconv64(f float64) string {
	s := fmt.Sprintf("%g", f)
	return strings.TrimSpace(s)
}
