// pkg/pipeline/pipeline.go
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/cleaner"
	"github.com/dataset-tools/insights/pkg/config"
	"github.com/dataset-tools/insights/pkg/loader"
	"github.com/dataset-tools/insights/pkg/model"
	"github.com/dataset-tools/insights/pkg/plot"
	"github.com/dataset-tools/insights/pkg/report"
	"github.com/dataset-tools/insights/pkg/stats"
)

// Analyzer orchestrates the analysis pipeline:
// load -> clean -> statistics -> reports -> plots
type Analyzer struct {
	cfg      *config.Config
	logger   *zap.Logger
	loader   *loader.CSVLoader
	cleaner  *cleaner.DataCleaner
	profiler *stats.Profiler
	writer   *report.Writer
	plotter  *plot.Plotter
}

// Result holds everything a single analysis run produced
type Result struct {
	Table       *model.Table
	Cleaned     *model.Table
	Audit       model.Audit
	Summary     stats.Summary
	Schema      []stats.ColumnSchema
	Missingness []stats.MissingnessRow
	Correlation *stats.CorrelationMatrix
	Metrics     *RunMetrics
}

// NewAnalyzer creates a new analysis pipeline
func NewAnalyzer(cfg *config.Config, logger *zap.Logger) (*Analyzer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	csvLoader, err := loader.NewCSVLoader(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader: %w", err)
	}

	dataCleaner, err := cleaner.NewDataCleaner(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}

	writer, err := report.NewWriter(logger, cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create report writer: %w", err)
	}

	plotter, err := plot.NewPlotter(logger, cfg.OutputDir, cfg.MaxHistogramColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to create plotter: %w", err)
	}

	return &Analyzer{
		cfg:      cfg,
		logger:   logger,
		loader:   csvLoader,
		cleaner:  dataCleaner,
		profiler: stats.NewProfiler(logger, cfg.ProfileWorkers),
		writer:   writer,
		plotter:  plotter,
	}, nil
}

// AnalyzeFile loads the CSV at path and runs the full pipeline
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	table, err := a.loader.Load(path)
	if err != nil {
		return nil, newRunError(ErrorCategoryLoad, "load", err)
	}

	return a.analyze(table, path)
}

// AnalyzeTable runs the full pipeline over an already-loaded table
// (for example one read from a database source)
func (a *Analyzer) AnalyzeTable(table *model.Table, source string) (*Result, error) {
	if table == nil {
		return nil, newRunError(ErrorCategoryLoad, "load", errors.New("table cannot be nil"))
	}
	if err := table.Validate(); err != nil {
		return nil, newRunError(ErrorCategoryLoad, "load", err)
	}

	return a.analyze(table, source)
}

// analyze is the shared pipeline body
func (a *Analyzer) analyze(table *model.Table, source string) (*Result, error) {
	metrics := NewRunMetrics(source)
	logger := a.logger.With(zap.String("run_id", metrics.RunID))

	logger.Info("Starting analysis",
		zap.String("source", source),
		zap.Int("rows", table.NumRows()),
		zap.Int("columns", table.NumCols()))

	// Clean: coerce suspicious placeholders to missing, keep the audit
	cleaned, audit := a.cleaner.CleanTable(table, a.cfg.MaxAuditExamples)

	// Statistics. Summary and schema describe the data as loaded;
	// missingness is computed on the cleaned table so the percentages
	// reflect suspicious-value coercion.
	summary := stats.ComputeSummary(table)
	schema := a.profiler.ComputeSchema(table)
	missingness := stats.ComputeMissingness(cleaned)
	correlation := stats.ComputeCorrelation(table)

	result := &Result{
		Table:       table,
		Cleaned:     cleaned,
		Audit:       audit,
		Summary:     summary,
		Schema:      schema,
		Missingness: missingness,
		Correlation: correlation,
		Metrics:     metrics,
	}

	a.fillMetrics(result)

	if err := a.writeReports(result); err != nil {
		return result, err
	}

	if err := a.renderPlots(result); err != nil {
		return result, err
	}

	metrics.Finish()
	metrics.Log(logger)
	return result, nil
}

// fillMetrics derives the run totals from the computed results
func (a *Analyzer) fillMetrics(r *Result) {
	m := r.Metrics
	m.RowsProfiled = r.Table.NumRows()
	m.ColumnsProfiled = r.Table.NumCols()
	m.FlaggedCells = r.Audit.TotalFlagged()

	for _, col := range r.Table.Columns {
		if col.Type == model.DTypeText {
			m.TextColumnsScanned++
		}
	}

	for _, row := range r.Missingness {
		m.TotalMissing += row.MissingCount
		if row.MissingCount > 0 {
			m.ColumnsWithMissing++
		}
	}
}

// writeReports emits all report files
func (a *Analyzer) writeReports(r *Result) error {
	writes := []func() (string, error){
		func() (string, error) { return a.writer.WriteSummaryMarkdown(r.Summary) },
		func() (string, error) { return a.writer.WriteSummaryStatisticsCSV(r.Summary) },
		func() (string, error) { return a.writer.WriteSchemaJSON(r.Schema) },
		func() (string, error) { return a.writer.WriteMissingnessCSV(r.Missingness) },
		func() (string, error) { return a.writer.WriteCorrelationCSV(r.Correlation) },
	}

	for _, write := range writes {
		path, err := write()
		if err != nil {
			return newRunError(ErrorCategoryReport, "report", err)
		}
		if path != "" {
			r.Metrics.ReportFiles = append(r.Metrics.ReportFiles, path)
		}
	}

	return nil
}

// renderPlots generates the diagnostic plots. Histogram and heatmap
// are skipped without error when the table lacks numeric columns.
func (a *Analyzer) renderPlots(r *Result) error {
	histPath, err := a.plotter.DistributionHistogram(r.Table)
	if err != nil {
		return newRunError(ErrorCategoryPlot, "plot", err)
	}
	if histPath != "" {
		r.Metrics.PlotFiles = append(r.Metrics.PlotFiles, histPath)
	}

	heatPath, err := a.plotter.CorrelationHeatmap(r.Correlation)
	if err != nil {
		return newRunError(ErrorCategoryPlot, "plot", err)
	}
	if heatPath != "" {
		r.Metrics.PlotFiles = append(r.Metrics.PlotFiles, heatPath)
	}

	barPath, err := a.plotter.MissingnessBar(r.Missingness)
	if err != nil {
		return newRunError(ErrorCategoryPlot, "plot", err)
	}
	r.Metrics.PlotFiles = append(r.Metrics.PlotFiles, barPath)

	return nil
}

// ConsoleSummary returns the one-line wrap-up printed after a run
func (r *Result) ConsoleSummary() string {
	return fmt.Sprintf("Done. %d/%d columns have missing data (%d total missing values).",
		r.Metrics.ColumnsWithMissing,
		r.Metrics.ColumnsProfiled,
		r.Metrics.TotalMissing)
}
