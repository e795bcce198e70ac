// pkg/stats/correlation.go
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/dataset-tools/insights/pkg/model"
)

// CorrelationMatrix holds the Pearson correlation of every numeric
// column pair. Matrix[i][j] correlates Columns[i] with Columns[j];
// the diagonal is 1.
type CorrelationMatrix struct {
	Columns []string
	Matrix  [][]float64
}

// ComputeCorrelation returns the pairwise-complete Pearson correlation
// matrix over the numeric columns. Returns nil when fewer than two
// numeric columns exist.
func ComputeCorrelation(table *model.Table) *CorrelationMatrix {
	numeric := table.NumericColumns()
	if len(numeric) < 2 {
		return nil
	}

	names := make([]string, len(numeric))
	for i, col := range numeric {
		names[i] = col.Name
	}

	matrix := make([][]float64, len(numeric))
	for i := range matrix {
		matrix[i] = make([]float64, len(numeric))
		matrix[i][i] = 1
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r := pairwiseCorrelation(numeric[i], numeric[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return &CorrelationMatrix{Columns: names, Matrix: matrix}
}

// pairwiseCorrelation correlates two columns over the rows where both
// are present
func pairwiseCorrelation(a, b *model.Column) float64 {
	var x, y []float64
	for row := range a.Values {
		fa, okA := a.Values[row].(float64)
		fb, okB := b.Values[row].(float64)
		if okA && okB {
			x = append(x, fa)
			y = append(y, fb)
		}
	}

	return stat.Correlation(x, y, nil)
}
