// pkg/stats/summary.go
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dataset-tools/insights/pkg/model"
)

// Shape holds the row/column counts of a table
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// ColumnDType pairs a column name with its dtype name, in table order
type ColumnDType struct {
	Column string `json:"column"`
	DType  string `json:"dtype"`
}

// NumericSummary holds descriptive statistics for one numeric column.
// Count is the number of non-missing values; the remaining fields are
// undefined (NaN) when Count is zero.
type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// ColumnNumericSummary pairs a numeric column with its statistics
type ColumnNumericSummary struct {
	Column  string         `json:"column"`
	Summary NumericSummary `json:"summary"`
}

// Summary is the dataset overview: shape, per-column dtypes, and
// descriptive statistics for the numeric columns
type Summary struct {
	Shape   Shape                  `json:"shape"`
	DTypes  []ColumnDType          `json:"dtypes"`
	Numeric []ColumnNumericSummary `json:"numeric_summary"`
}

// ComputeSummary returns shape, dtypes, and descriptive statistics for
// the numeric columns of the table
func ComputeSummary(table *model.Table) Summary {
	summary := Summary{
		Shape: Shape{Rows: table.NumRows(), Columns: table.NumCols()},
	}

	for _, col := range table.Columns {
		summary.DTypes = append(summary.DTypes, ColumnDType{
			Column: col.Name,
			DType:  col.Type.String(),
		})
	}

	for _, col := range table.NumericColumns() {
		summary.Numeric = append(summary.Numeric, ColumnNumericSummary{
			Column:  col.Name,
			Summary: Describe(col.Float64s()),
		})
	}

	return summary
}

// Describe computes count, mean, std (sample), min, quartiles and max
// for a slice of observations
func Describe(data []float64) NumericSummary {
	if len(data) == 0 {
		nan := math.NaN()
		return NumericSummary{
			Count: 0,
			Mean:  nan, Std: nan, Min: nan,
			Q25: nan, Median: nan, Q75: nan, Max: nan,
		}
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return NumericSummary{
		Count:  len(data),
		Mean:   stat.Mean(data, nil),
		Std:    stat.StdDev(data, nil),
		Min:    floats.Min(sorted),
		Q25:    stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median: stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		Q75:    stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Max:    floats.Max(sorted),
	}
}
