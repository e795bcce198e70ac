// pkg/stats/schema.go
package stats

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/model"
)

// ColumnSchema holds per-column metadata for the schema report
type ColumnSchema struct {
	Column       string   `json:"column"`
	DType        string   `json:"dtype"`
	UniqueCount  int      `json:"unique_count"`
	MissingCount int      `json:"missing_count"`
	SampleValues []string `json:"sample_values"`
}

// maxSampleValues caps the non-missing sample values kept per column
const maxSampleValues = 3

// Profiler computes per-column schema metadata. Columns are
// independent, so profiling fans out over a small worker pool; output
// order always matches table order.
type Profiler struct {
	logger  *zap.Logger
	workers int
}

// NewProfiler creates a Profiler. workers <= 0 selects runtime.NumCPU().
func NewProfiler(logger *zap.Logger, workers int) *Profiler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Profiler{logger: logger, workers: workers}
}

// ComputeSchema returns metadata for every column, in table order
func (p *Profiler) ComputeSchema(table *model.Table) []ColumnSchema {
	schema := make([]ColumnSchema, len(table.Columns))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				schema[i] = profileColumn(&table.Columns[i])
			}
		}()
	}

	for i := range table.Columns {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	p.logger.Debug("Computed schema",
		zap.Int("columns", len(schema)),
		zap.Int("workers", p.workers))
	return schema
}

// profileColumn computes the schema record for a single column
func profileColumn(col *model.Column) ColumnSchema {
	unique := make(map[interface{}]struct{})
	missing := 0
	samples := make([]string, 0, maxSampleValues)

	for _, v := range col.Values {
		if v == nil {
			missing++
			continue
		}
		unique[v] = struct{}{}
		if len(samples) < maxSampleValues {
			samples = append(samples, model.CellString(v))
		}
	}

	return ColumnSchema{
		Column:       col.Name,
		DType:        col.Type.String(),
		UniqueCount:  len(unique),
		MissingCount: missing,
		SampleValues: samples,
	}
}
