// pkg/pipeline/metrics.go
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunMetrics tracks metrics for a single analysis run
type RunMetrics struct {
	RunID     string
	Source    string
	StartTime time.Time
	EndTime   time.Time

	RowsProfiled       int
	ColumnsProfiled    int
	TextColumnsScanned int
	FlaggedCells       int
	ColumnsWithMissing int
	TotalMissing       int

	ReportFiles []string
	PlotFiles   []string
}

// NewRunMetrics creates a metrics tracker with a fresh run ID
func NewRunMetrics(source string) *RunMetrics {
	return &RunMetrics{
		RunID:     uuid.New().String(),
		Source:    source,
		StartTime: time.Now(),
	}
}

// Finish records the end time of the run
func (m *RunMetrics) Finish() {
	m.EndTime = time.Now()
}

// Duration returns the total duration of the run
func (m *RunMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// Log emits the run metrics at info level
func (m *RunMetrics) Log(logger *zap.Logger) {
	logger.Info("Analysis run complete",
		zap.String("run_id", m.RunID),
		zap.String("source", m.Source),
		zap.Duration("duration", m.Duration()),
		zap.Int("rows", m.RowsProfiled),
		zap.Int("columns", m.ColumnsProfiled),
		zap.Int("text_columns_scanned", m.TextColumnsScanned),
		zap.Int("flagged_cells", m.FlaggedCells),
		zap.Int("columns_with_missing", m.ColumnsWithMissing),
		zap.Int("total_missing", m.TotalMissing),
		zap.Int("report_files", len(m.ReportFiles)),
		zap.Int("plot_files", len(m.PlotFiles)),
	)
}
