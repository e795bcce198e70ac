// pkg/plot/plot.go
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dataset-tools/insights/pkg/model"
	"github.com/dataset-tools/insights/pkg/stats"
)

// DefaultMaxHistogramColumns caps the subplots in the distribution grid
const DefaultMaxHistogramColumns = 6

const histogramBins = 30

// Plotter renders diagnostic PNG plots into <outDir>/plots
type Plotter struct {
	logger      *zap.Logger
	outDir      string
	maxHistCols int
}

// NewPlotter creates a Plotter for the given output directory.
// maxHistCols <= 0 selects DefaultMaxHistogramColumns.
func NewPlotter(logger *zap.Logger, outDir string, maxHistCols int) (*Plotter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if maxHistCols <= 0 {
		maxHistCols = DefaultMaxHistogramColumns
	}

	return &Plotter{
		logger:      logger,
		outDir:      outDir,
		maxHistCols: maxHistCols,
	}, nil
}

// plotsDir creates and returns <outDir>/plots
func (p *Plotter) plotsDir() (string, error) {
	dir := filepath.Join(p.outDir, "plots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create plots directory: %w", err)
	}
	return dir, nil
}

// MissingnessBar renders a bar chart of missing percentage per column
func (p *Plotter) MissingnessBar(rows []stats.MissingnessRow) (string, error) {
	dir, err := p.plotsDir()
	if err != nil {
		return "", err
	}

	names := make([]string, len(rows))
	values := make(plotter.Values, len(rows))
	for i, row := range rows {
		names[i] = row.Column
		values[i] = row.MissingPct
	}

	pl := plot.New()
	pl.Title.Text = "Missing Data (%) per Column"
	pl.Y.Label.Text = "Missing %"
	pl.X.Label.Text = "Column"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	bars.LineStyle.Width = 0

	pl.Add(bars)
	pl.NominalX(names...)

	path := filepath.Join(dir, "missingness_bar.png")
	width := vg.Length(maxInt(8, len(rows))) * vg.Inch / 2
	if err := pl.Save(width, 5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save missingness bar chart: %w", err)
	}

	p.logger.Info("Wrote plot", zap.String("path", path))
	return path, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// columnHistData extracts the non-missing values for up to maxHistCols
// numeric columns
func (p *Plotter) columnHistData(table *model.Table) ([]string, [][]float64) {
	var names []string
	var data [][]float64
	for _, col := range table.NumericColumns() {
		if len(names) == p.maxHistCols {
			break
		}
		names = append(names, col.Name)
		data = append(data, col.Float64s())
	}
	return names, data
}
