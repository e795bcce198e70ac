// pkg/report/report.go
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/stats"
)

// Writer emits report files into an output directory
type Writer struct {
	logger *zap.Logger
	outDir string
}

// NewWriter creates a report writer for the given output directory
func NewWriter(logger *zap.Logger, outDir string) (*Writer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if outDir == "" {
		return nil, errors.New("output directory cannot be empty")
	}

	return &Writer{logger: logger, outDir: outDir}, nil
}

// OutDir returns the output directory path
func (w *Writer) OutDir() string {
	return w.outDir
}

// WriteSummaryMarkdown writes the dataset overview to summary.md and
// returns the written path. The wide numeric-statistics table lives in
// summary_statistics.csv so it stays usable in a spreadsheet.
func (w *Writer) WriteSummaryMarkdown(summary stats.Summary) (string, error) {
	if err := w.ensureOutDir(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Dataset Summary\n\n")
	fmt.Fprintf(&b, "**Rows:** %d  \n", summary.Shape.Rows)
	fmt.Fprintf(&b, "**Columns:** %d\n\n", summary.Shape.Columns)
	b.WriteString("## Column Overview\n\n")
	b.WriteString("| Column | Type |\n")
	b.WriteString("|--------|------|\n")
	for _, ct := range summary.DTypes {
		fmt.Fprintf(&b, "| `%s` | %s |\n", ct.Column, ct.DType)
	}

	if len(summary.Numeric) > 0 {
		b.WriteString("\nDetailed numeric statistics are in ")
		b.WriteString("[summary_statistics.csv](summary_statistics.csv).\n")
	} else {
		b.WriteString("\n_No numeric columns found._\n")
	}

	return w.writeFile("summary.md", []byte(b.String()))
}

// WriteSummaryStatisticsCSV writes per-column numeric statistics to
// summary_statistics.csv. Returns "" when there are no numeric columns.
func (w *Writer) WriteSummaryStatisticsCSV(summary stats.Summary) (string, error) {
	if len(summary.Numeric) == 0 {
		return "", nil
	}
	if err := w.ensureOutDir(); err != nil {
		return "", err
	}

	records := [][]string{
		{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"},
	}
	for _, cs := range summary.Numeric {
		s := cs.Summary
		records = append(records, []string{
			cs.Column,
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Std),
			formatFloat(s.Min),
			formatFloat(s.Q25),
			formatFloat(s.Median),
			formatFloat(s.Q75),
			formatFloat(s.Max),
		})
	}

	return w.writeCSV("summary_statistics.csv", records)
}

// WriteSchemaJSON writes column schema metadata to schema.json
func (w *Writer) WriteSchemaJSON(schema []stats.ColumnSchema) (string, error) {
	if err := w.ensureOutDir(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	return w.writeFile("schema.json", data)
}

// WriteMissingnessCSV writes the missingness table to missingness.csv
func (w *Writer) WriteMissingnessCSV(rows []stats.MissingnessRow) (string, error) {
	if err := w.ensureOutDir(); err != nil {
		return "", err
	}

	records := [][]string{{"column", "missing_count", "missing_pct"}}
	for _, row := range rows {
		records = append(records, []string{
			row.Column,
			strconv.Itoa(row.MissingCount),
			formatFloat(row.MissingPct),
		})
	}

	return w.writeCSV("missingness.csv", records)
}

// WriteCorrelationCSV writes the full correlation matrix to
// correlation.csv. Returns "" when corr is nil (fewer than two numeric
// columns).
func (w *Writer) WriteCorrelationCSV(corr *stats.CorrelationMatrix) (string, error) {
	if corr == nil {
		return "", nil
	}
	if err := w.ensureOutDir(); err != nil {
		return "", err
	}

	header := append([]string{""}, corr.Columns...)
	records := [][]string{header}
	for i, name := range corr.Columns {
		record := make([]string, 0, len(corr.Columns)+1)
		record = append(record, name)
		for _, v := range corr.Matrix[i] {
			record = append(record, formatFloat(v))
		}
		records = append(records, record)
	}

	return w.writeCSV("correlation.csv", records)
}

// ensureOutDir creates the output directory if needed
func (w *Writer) ensureOutDir() error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// writeFile writes bytes to a file under the output directory
func (w *Writer) writeFile(name string, data []byte) (string, error) {
	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	w.logger.Info("Wrote report file", zap.String("path", path))
	return path, nil
}

// writeCSV writes records to a CSV file under the output directory
func (w *Writer) writeCSV(name string, records [][]string) (string, error) {
	path := filepath.Join(w.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", name, err)
	}

	w.logger.Info("Wrote report file", zap.String("path", path))
	return path, nil
}

// formatFloat renders a float for CSV output; NaN becomes empty, like
// most tabular tooling
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
