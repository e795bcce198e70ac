// pkg/report/report_test.go
package report

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/stats"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := NewWriter(zap.NewNop(), filepath.Join(t.TempDir(), "reports"))
	require.NoError(t, err)
	return w
}

func testSummary() stats.Summary {
	return stats.Summary{
		Shape: stats.Shape{Rows: 10, Columns: 3},
		DTypes: []stats.ColumnDType{
			{Column: "id", DType: "float64"},
			{Column: "name", DType: "text"},
			{Column: "score", DType: "float64"},
		},
		Numeric: []stats.ColumnNumericSummary{
			{Column: "id", Summary: stats.NumericSummary{
				Count: 10, Mean: 5.5, Std: 3.0276503540974917,
				Min: 1, Q25: 3.25, Median: 5.5, Q75: 7.75, Max: 10,
			}},
			{Column: "score", Summary: stats.NumericSummary{
				Count: 8, Mean: 82.5, Std: 6.5,
				Min: 70, Q25: 78, Median: 83, Q75: 88, Max: 91,
			}},
		},
	}
}

func TestNewWriterValidation(t *testing.T) {
	_, err := NewWriter(nil, "out")
	assert.Error(t, err)

	_, err = NewWriter(zap.NewNop(), "")
	assert.Error(t, err)
}

func TestWriteSummaryMarkdown(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.WriteSummaryMarkdown(testSummary())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutDir(), "summary.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Dataset Summary")
	assert.Contains(t, content, "**Rows:** 10")
	assert.Contains(t, content, "**Columns:** 3")
	assert.Contains(t, content, "| `name` | text |")
	assert.Contains(t, content, "summary_statistics.csv")
	assert.NotContains(t, content, "No numeric columns")
}

func TestWriteSummaryMarkdownNoNumeric(t *testing.T) {
	w := newTestWriter(t)
	summary := stats.Summary{
		Shape:  stats.Shape{Rows: 2, Columns: 1},
		DTypes: []stats.ColumnDType{{Column: "name", DType: "text"}},
	}

	path, err := w.WriteSummaryMarkdown(summary)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "_No numeric columns found._")
	assert.NotContains(t, string(data), "summary_statistics.csv")
}

func TestWriteSummaryStatisticsCSV(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.WriteSummaryStatisticsCSV(testSummary())
	require.NoError(t, err)
	require.NotEmpty(t, path)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}, records[0])
	assert.Equal(t, "id", records[1][0])
	assert.Equal(t, "10", records[1][1])
	assert.Equal(t, "5.5", records[1][2])
	assert.Equal(t, "score", records[2][0])
}

func TestWriteSummaryStatisticsCSVNoNumeric(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.WriteSummaryStatisticsCSV(stats.Summary{})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestWriteSchemaJSON(t *testing.T) {
	w := newTestWriter(t)
	schema := []stats.ColumnSchema{
		{Column: "id", DType: "float64", UniqueCount: 10, MissingCount: 0,
			SampleValues: []string{"1", "2", "3"}},
		{Column: "name", DType: "text", UniqueCount: 4, MissingCount: 2,
			SampleValues: []string{"Alice", "Bob", "Carol"}},
	}

	path, err := w.WriteSchemaJSON(schema)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []stats.ColumnSchema
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, schema, decoded)
	// Indented output, not a single line
	assert.True(t, strings.Contains(string(data), "\n  "))
}

func TestWriteMissingnessCSV(t *testing.T) {
	w := newTestWriter(t)
	rows := []stats.MissingnessRow{
		{Column: "score", MissingCount: 3, MissingPct: 30},
		{Column: "name", MissingCount: 1, MissingPct: 10},
		{Column: "id", MissingCount: 0, MissingPct: 0},
	}

	path, err := w.WriteMissingnessCSV(rows)
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"column", "missing_count", "missing_pct"}, records[0])
	assert.Equal(t, []string{"score", "3", "30"}, records[1])
	assert.Equal(t, []string{"id", "0", "0"}, records[3])
}

func TestWriteCorrelationCSV(t *testing.T) {
	w := newTestWriter(t)
	corr := &stats.CorrelationMatrix{
		Columns: []string{"x", "y"},
		Matrix: [][]float64{
			{1, -0.5},
			{-0.5, 1},
		},
	}

	path, err := w.WriteCorrelationCSV(corr)
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"", "x", "y"}, records[0])
	assert.Equal(t, []string{"x", "1", "-0.5"}, records[1])
	assert.Equal(t, []string{"y", "-0.5", "1"}, records[2])
}

func TestWriteCorrelationCSVNil(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.WriteCorrelationCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "", formatFloat(math.NaN()))
	assert.Equal(t, "2.5", formatFloat(2.5))
	assert.Equal(t, "3", formatFloat(3))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
