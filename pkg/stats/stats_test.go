// pkg/stats/stats_test.go
package stats

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/model"
)

func sampleTable() *model.Table {
	return &model.Table{Columns: []model.Column{
		{Name: "id", Type: model.DTypeNumeric, Values: []interface{}{1.0, 2.0, 3.0, 4.0}},
		{Name: "age", Type: model.DTypeNumeric, Values: []interface{}{25.0, nil, 31.0, 40.0}},
		{Name: "department", Type: model.DTypeText, Values: []interface{}{"Eng", "HR", nil, "Eng"}},
		{Name: "score", Type: model.DTypeNumeric, Values: []interface{}{88.5, 92.0, nil, nil}},
	}}
}

func TestComputeSummary(t *testing.T) {
	summary := ComputeSummary(sampleTable())

	assert.Equal(t, 4, summary.Shape.Rows)
	assert.Equal(t, 4, summary.Shape.Columns)

	require.Len(t, summary.DTypes, 4)
	assert.Equal(t, ColumnDType{Column: "id", DType: "float64"}, summary.DTypes[0])
	assert.Equal(t, ColumnDType{Column: "department", DType: "text"}, summary.DTypes[2])

	// Only the three numeric columns get describe output
	require.Len(t, summary.Numeric, 3)
	assert.Equal(t, "id", summary.Numeric[0].Column)
	assert.Equal(t, "age", summary.Numeric[1].Column)
	assert.Equal(t, "score", summary.Numeric[2].Column)
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4})

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 1.2909944487, s.Std, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	// Quantiles must be ordered and inside the observed range
	assert.LessOrEqual(t, s.Min, s.Q25)
	assert.LessOrEqual(t, s.Q25, s.Median)
	assert.LessOrEqual(t, s.Median, s.Q75)
	assert.LessOrEqual(t, s.Q75, s.Max)
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)

	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Max))
}

func TestComputeSchema(t *testing.T) {
	p := NewProfiler(zap.NewNop(), 2)
	schema := p.ComputeSchema(sampleTable())

	require.Len(t, schema, 4)
	// Output order matches table order regardless of worker count
	assert.Equal(t, "id", schema[0].Column)
	assert.Equal(t, "age", schema[1].Column)
	assert.Equal(t, "department", schema[2].Column)
	assert.Equal(t, "score", schema[3].Column)

	dept := schema[2]
	assert.Equal(t, "text", dept.DType)
	assert.Equal(t, 2, dept.UniqueCount)
	assert.Equal(t, 1, dept.MissingCount)
	assert.Equal(t, []string{"Eng", "HR", "Eng"}, dept.SampleValues)

	assert.Equal(t, 0, schema[0].MissingCount)
	assert.Equal(t, 2, schema[3].MissingCount)
}

func TestComputeMissingness(t *testing.T) {
	rows := ComputeMissingness(sampleTable())
	require.Len(t, rows, 4)

	byName := make(map[string]MissingnessRow)
	for _, row := range rows {
		byName[row.Column] = row
	}

	assert.Equal(t, 0, byName["id"].MissingCount)
	assert.Equal(t, 1, byName["age"].MissingCount)
	assert.Equal(t, 1, byName["department"].MissingCount)
	assert.Equal(t, 2, byName["score"].MissingCount)

	assert.InDelta(t, 25.0, byName["age"].MissingPct, 1e-9)
	assert.InDelta(t, 50.0, byName["score"].MissingPct, 1e-9)

	// Sorted by percentage descending
	pcts := make([]float64, len(rows))
	for i, row := range rows {
		pcts[i] = row.MissingPct
	}
	assert.True(t, sort.SliceIsSorted(pcts, func(i, j int) bool {
		return pcts[i] > pcts[j]
	}))
	assert.Equal(t, "score", rows[0].Column)
}

func TestComputeMissingnessEmptyTable(t *testing.T) {
	rows := ComputeMissingness(&model.Table{})
	assert.Empty(t, rows)
}

func TestComputeCorrelation(t *testing.T) {
	table := &model.Table{Columns: []model.Column{
		{Name: "x", Type: model.DTypeNumeric, Values: []interface{}{1.0, 2.0, 3.0, 4.0}},
		{Name: "y", Type: model.DTypeNumeric, Values: []interface{}{2.0, 4.0, 6.0, 8.0}},
		{Name: "z", Type: model.DTypeNumeric, Values: []interface{}{4.0, 3.0, 2.0, 1.0}},
	}}

	corr := ComputeCorrelation(table)
	require.NotNil(t, corr)
	assert.Equal(t, []string{"x", "y", "z"}, corr.Columns)

	assert.InDelta(t, 1.0, corr.Matrix[0][0], 1e-9)
	assert.InDelta(t, 1.0, corr.Matrix[0][1], 1e-9)
	assert.InDelta(t, -1.0, corr.Matrix[0][2], 1e-9)
	assert.InDelta(t, corr.Matrix[1][2], corr.Matrix[2][1], 1e-12)
}

func TestComputeCorrelationPairwiseComplete(t *testing.T) {
	table := &model.Table{Columns: []model.Column{
		{Name: "x", Type: model.DTypeNumeric, Values: []interface{}{1.0, nil, 3.0, 4.0}},
		{Name: "y", Type: model.DTypeNumeric, Values: []interface{}{2.0, 9.0, 6.0, 8.0}},
	}}

	corr := ComputeCorrelation(table)
	require.NotNil(t, corr)
	// Row 2 is dropped pairwise; the remaining points are perfectly linear
	assert.InDelta(t, 1.0, corr.Matrix[0][1], 1e-9)
}

func TestComputeCorrelationNeedsTwoNumericColumns(t *testing.T) {
	table := &model.Table{Columns: []model.Column{
		{Name: "x", Type: model.DTypeNumeric, Values: []interface{}{1.0, 2.0}},
		{Name: "label", Type: model.DTypeText, Values: []interface{}{"a", "b"}},
	}}

	assert.Nil(t, ComputeCorrelation(table))
}
