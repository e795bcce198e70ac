// pkg/stats/missingness.go
package stats

import (
	"math"
	"sort"

	"github.com/dataset-tools/insights/pkg/model"
)

// MissingnessRow reports missing cells for one column
type MissingnessRow struct {
	Column       string  `json:"column"`
	MissingCount int     `json:"missing_count"`
	MissingPct   float64 `json:"missing_pct"`
}

// ComputeMissingness returns per-column missing counts and percentages,
// sorted by percentage descending (ties keep table order). Callers who
// want the reported numbers to reflect suspicious-value coercion must
// pass the cleaned table.
func ComputeMissingness(table *model.Table) []MissingnessRow {
	rows := table.NumRows()
	out := make([]MissingnessRow, 0, len(table.Columns))

	for _, col := range table.Columns {
		count := col.MissingCount()
		pct := 0.0
		if rows > 0 {
			pct = round2(float64(count) / float64(rows) * 100)
		}
		out = append(out, MissingnessRow{
			Column:       col.Name,
			MissingCount: count,
			MissingPct:   pct,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MissingPct > out[j].MissingPct
	})
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
