// pkg/plot/heatmap.go
package plot

import (
	"fmt"
	"math"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dataset-tools/insights/pkg/stats"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Row 0 is
// drawn at the bottom of the heat map, so Z flips the row index to keep
// the first column at the top like a table.
type corrGrid struct {
	corr *stats.CorrelationMatrix
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.corr.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	n := len(g.corr.Columns)
	v := g.corr.Matrix[n-1-r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// CorrelationHeatmap renders the numeric correlation matrix. Returns ""
// when corr is nil (fewer than two numeric columns).
func (p *Plotter) CorrelationHeatmap(corr *stats.CorrelationMatrix) (string, error) {
	if corr == nil {
		return "", nil
	}

	colorMap := moreland.SmoothBlueRed()
	colorMap.SetMin(-1)
	colorMap.SetMax(1)

	pl := plot.New()
	pl.Title.Text = "Correlation Heatmap"

	heatMap := plotter.NewHeatMap(corrGrid{corr: corr}, colorMap.Palette(255))
	heatMap.Min = -1
	heatMap.Max = 1
	pl.Add(heatMap)

	pl.NominalX(corr.Columns...)
	reversed := make([]string, len(corr.Columns))
	for i, name := range corr.Columns {
		reversed[len(corr.Columns)-1-i] = name
	}
	pl.NominalY(reversed...)

	dir, err := p.plotsDir()
	if err != nil {
		return "", err
	}

	size := vg.Length(maxInt(6, len(corr.Columns))) * vg.Inch
	path := filepath.Join(dir, "correlation_heatmap.png")
	if err := pl.Save(size, size, path); err != nil {
		return "", fmt.Errorf("failed to save correlation heatmap: %w", err)
	}

	p.logger.Info("Wrote plot", zap.String("path", path))
	return path, nil
}
