// pkg/pipeline/pipeline_test.go
package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/config"
	"github.com/dataset-tools/insights/pkg/loader"
	"github.com/dataset-tools/insights/pkg/model"
)

const messyCSV = `id,age,department,notes
1,25,Engineering,good
2,30,??missing,fine
3,31,lost??,ok
4,40,HR,??done??
5,29,Marketing,
`

func newTestAnalyzer(t *testing.T) (*Analyzer, string) {
	t.Helper()
	outDir := filepath.Join(t.TempDir(), "reports")
	cfg := &config.Config{
		OutputDir:           outDir,
		MaxAuditExamples:    5,
		MaxHistogramColumns: 6,
		ProfileWorkers:      2,
	}
	analyzer, err := NewAnalyzer(cfg, zap.NewNop())
	require.NoError(t, err)
	return analyzer, outDir
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewAnalyzerValidation(t *testing.T) {
	_, err := NewAnalyzer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewAnalyzer(&config.Config{OutputDir: "out"}, nil)
	assert.Error(t, err)
}

func TestAnalyzeFile(t *testing.T) {
	analyzer, outDir := newTestAnalyzer(t)
	path := writeFixture(t, messyCSV)

	result, err := analyzer.AnalyzeFile(path)
	require.NoError(t, err)

	// Shape and cleaning
	assert.Equal(t, 5, result.Table.NumRows())
	assert.Equal(t, 4, result.Table.NumCols())

	dept, ok := result.Audit["department"]
	require.True(t, ok)
	assert.Equal(t, 2, dept.Count)
	assert.Equal(t, []string{"??missing", "lost??"}, dept.Examples)

	// Wrapped non-keyword text survives untouched
	notes := result.Cleaned.Column("notes")
	require.NotNil(t, notes)
	assert.Equal(t, "??done??", notes.Values[3])

	// Missingness reflects the cleaned table, sorted descending
	require.NotEmpty(t, result.Missingness)
	assert.Equal(t, "department", result.Missingness[0].Column)
	assert.Equal(t, 2, result.Missingness[0].MissingCount)
	assert.InDelta(t, 40.0, result.Missingness[0].MissingPct, 1e-9)

	// Run metrics
	m := result.Metrics
	assert.NotEmpty(t, m.RunID)
	assert.Equal(t, path, m.Source)
	assert.Equal(t, 5, m.RowsProfiled)
	assert.Equal(t, 4, m.ColumnsProfiled)
	assert.Equal(t, 2, m.TextColumnsScanned)
	assert.Equal(t, 2, m.FlaggedCells)
	assert.Equal(t, 2, m.ColumnsWithMissing)
	assert.Equal(t, 3, m.TotalMissing)
	assert.False(t, m.EndTime.IsZero())
	assert.Positive(t, m.Duration())

	// All report and plot files exist on disk
	wantReports := []string{
		"summary.md", "summary_statistics.csv", "schema.json",
		"missingness.csv", "correlation.csv",
	}
	require.Len(t, m.ReportFiles, len(wantReports))
	for i, name := range wantReports {
		assert.Equal(t, filepath.Join(outDir, name), m.ReportFiles[i])
		assert.FileExists(t, m.ReportFiles[i])
	}

	wantPlots := []string{
		"distribution_histogram.png", "correlation_heatmap.png",
		"missingness_bar.png",
	}
	require.Len(t, m.PlotFiles, len(wantPlots))
	for i, name := range wantPlots {
		assert.Equal(t, filepath.Join(outDir, "plots", name), m.PlotFiles[i])
		assert.FileExists(t, m.PlotFiles[i])
	}

	assert.Equal(t,
		"Done. 2/4 columns have missing data (3 total missing values).",
		result.ConsoleSummary())
}

func TestAnalyzeFileTextOnly(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)
	path := writeFixture(t, "name,city\nAlice,Oslo\nBob,Bergen\n")

	result, err := analyzer.AnalyzeFile(path)
	require.NoError(t, err)

	// No numeric columns: stats CSV, correlation CSV, histogram and
	// heatmap are all skipped; the missingness bar still renders
	assert.Nil(t, result.Correlation)
	require.Len(t, result.Metrics.ReportFiles, 3)
	require.Len(t, result.Metrics.PlotFiles, 1)
	assert.Contains(t, result.Metrics.PlotFiles[0], "missingness_bar.png")
}

func TestAnalyzeFileMissingFile(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)

	_, err := analyzer.AnalyzeFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, ErrorCategoryLoad, runErr.Category)
	assert.Equal(t, "load", runErr.Stage)
	assert.True(t, errors.Is(err, loader.ErrFileNotFound))
	assert.True(t, IsUserInputError(err))
}

func TestAnalyzeFileEmptyDataset(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)
	path := writeFixture(t, "a,b,c\n")

	_, err := analyzer.AnalyzeFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, loader.ErrEmptyDataset))
	assert.True(t, IsUserInputError(err))
}

func TestAnalyzeTableNil(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)

	_, err := analyzer.AnalyzeTable(nil, "db")
	require.Error(t, err)

	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, ErrorCategoryLoad, runErr.Category)
}

func TestAnalyzeTableInvalid(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)
	table := &model.Table{Columns: []model.Column{
		{Name: "a", Type: model.DTypeNumeric, Values: []interface{}{1.0, 2.0}},
		{Name: "a", Type: model.DTypeNumeric, Values: []interface{}{3.0, 4.0}},
	}}

	_, err := analyzer.AnalyzeTable(table, "db")
	assert.Error(t, err)
}

func TestErrorCategoryString(t *testing.T) {
	assert.Equal(t, "None", ErrorCategoryNone.String())
	assert.Equal(t, "Load", ErrorCategoryLoad.String())
	assert.Equal(t, "Unknown(99)", ErrorCategory(99).String())
}

func TestRunErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := newRunError(ErrorCategoryReport, "report", inner)

	assert.Equal(t, "report stage failed: boom", err.Error())
	assert.Equal(t, inner, errors.Unwrap(err))
	assert.False(t, IsUserInputError(err))
}
