// pkg/plot/histogram.go
package plot

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/dataset-tools/insights/pkg/model"
)

// DistributionHistogram renders a grid of histograms for up to
// maxHistCols numeric columns. Returns "" when the table has no numeric
// columns.
func (p *Plotter) DistributionHistogram(table *model.Table) (string, error) {
	names, data := p.columnHistData(table)
	if len(names) == 0 {
		return "", nil
	}

	ncols := len(names)
	if ncols > 3 {
		ncols = 3
	}
	nrows := (len(names) + ncols - 1) / ncols

	plots := make([][]*plot.Plot, nrows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, ncols)
	}

	for i, name := range names {
		pl := plot.New()
		pl.Title.Text = name
		pl.Y.Label.Text = "Count"

		if len(data[i]) > 0 {
			hist, err := plotter.NewHist(plotter.Values(data[i]), histogramBins)
			if err != nil {
				return "", fmt.Errorf("failed to build histogram for %s: %w", name, err)
			}
			pl.Add(hist)
		}

		plots[i/ncols][i%ncols] = pl
	}

	img := vgimg.New(vg.Length(5*ncols)*vg.Inch, vg.Length(4*nrows)*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: nrows,
		Cols: ncols,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := 0; r < nrows; r++ {
		for c := 0; c < ncols; c++ {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	dir, err := p.plotsDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "distribution_histogram.png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", fmt.Errorf("failed to write histogram grid: %w", err)
	}

	p.logger.Info("Wrote plot", zap.String("path", path))
	return path, nil
}
