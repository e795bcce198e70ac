// pkg/model/table_test.go
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableShape(t *testing.T) {
	table := &Table{Columns: []Column{
		{Name: "a", Type: DTypeNumeric, Values: []interface{}{1.0, 2.0}},
		{Name: "b", Type: DTypeText, Values: []interface{}{"x", nil}},
	}}

	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, 2, table.NumCols())
	assert.Equal(t, []string{"a", "b"}, table.ColumnNames())
}

func TestTableCopyIsDeep(t *testing.T) {
	table := &Table{Columns: []Column{
		{Name: "a", Type: DTypeText, Values: []interface{}{"x", "y"}},
	}}

	cp := table.Copy()
	cp.Columns[0].Values[0] = nil

	assert.Equal(t, "x", table.Columns[0].Values[0])
	assert.Nil(t, cp.Columns[0].Values[0])
}

func TestTableValidate(t *testing.T) {
	dup := &Table{Columns: []Column{
		{Name: "a", Values: []interface{}{1.0}},
		{Name: "a", Values: []interface{}{2.0}},
	}}
	assert.Error(t, dup.Validate())

	ragged := &Table{Columns: []Column{
		{Name: "a", Values: []interface{}{1.0, 2.0}},
		{Name: "b", Values: []interface{}{1.0}},
	}}
	assert.Error(t, ragged.Validate())

	ok := &Table{Columns: []Column{
		{Name: "a", Values: []interface{}{1.0}},
		{Name: "b", Values: []interface{}{nil}},
	}}
	assert.NoError(t, ok.Validate())
}

func TestColumnMissingCount(t *testing.T) {
	col := Column{Values: []interface{}{nil, "x", nil, "y"}}
	assert.Equal(t, 2, col.MissingCount())
}

func TestColumnFloat64s(t *testing.T) {
	col := Column{Type: DTypeNumeric, Values: []interface{}{1.5, nil, 2.5}}
	assert.Equal(t, []float64{1.5, 2.5}, col.Float64s())

	text := Column{Type: DTypeText, Values: []interface{}{"a"}}
	assert.Nil(t, text.Float64s())
}

func TestNumericColumns(t *testing.T) {
	table := &Table{Columns: []Column{
		{Name: "a", Type: DTypeNumeric},
		{Name: "b", Type: DTypeText},
		{Name: "c", Type: DTypeNumeric},
	}}

	numeric := table.NumericColumns()
	assert.Len(t, numeric, 2)
	assert.Equal(t, "a", numeric[0].Name)
	assert.Equal(t, "c", numeric[1].Name)
}

func TestCellString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "hello", CellString("hello"))
	assert.Equal(t, "2.5", CellString(2.5))
	assert.Equal(t, "true", CellString(true))
	assert.Equal(t, "2024-03-01T12:00:00Z", CellString(ts))
}

func TestAuditTotalFlagged(t *testing.T) {
	audit := Audit{
		"a": {Count: 3, Examples: []string{"??"}},
		"b": {Count: 2, Examples: []string{"n/a"}},
	}
	assert.Equal(t, 5, audit.TotalFlagged())
}
