// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/model"
)

// DefaultMaxExamples is the default cap on distinct raw values
// recorded per column in the cleaning audit
const DefaultMaxExamples = 5

// DataCleaner coerces disguised missing-value placeholders to the
// canonical missing marker and records an audit of what it changed
type DataCleaner struct {
	logger *zap.Logger
}

// NewDataCleaner creates a new DataCleaner instance
func NewDataCleaner(logger *zap.Logger) (*DataCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &DataCleaner{logger: logger}, nil
}

// CleanTable scans every text-typed column of the table and returns a
// cleaned copy plus a per-column audit. Flagged cells become nil in the
// copy; every other cell is identical to the input. The input table is
// never mutated. maxExamples caps the distinct raw values kept per
// audit entry; values <= 0 select DefaultMaxExamples.
func (c *DataCleaner) CleanTable(table *model.Table, maxExamples int) (*model.Table, model.Audit) {
	if maxExamples <= 0 {
		maxExamples = DefaultMaxExamples
	}

	cleaned := table.Copy()
	audit := make(model.Audit)

	for i := range cleaned.Columns {
		col := &cleaned.Columns[i]
		if col.Type != model.DTypeText {
			continue
		}

		entry, changed := cleanColumn(col, maxExamples)
		if !changed {
			continue
		}

		audit[col.Name] = entry
		c.logger.Debug("Coerced suspicious values to missing",
			zap.String("column", col.Name),
			zap.Int("count", entry.Count),
			zap.Strings("examples", entry.Examples))
	}

	return cleaned, audit
}

// cleanColumn flags suspicious cells in a single text column, replaces
// them with nil in place, and collects the audit entry. Returns false
// when no cell was flagged.
func cleanColumn(col *model.Column, maxExamples int) (model.ColumnAudit, bool) {
	flagged := make([]int, 0)
	for row, value := range col.Values {
		if isSuspicious(normalizeCandidate(value)) {
			flagged = append(flagged, row)
		}
	}

	if len(flagged) == 0 {
		return model.ColumnAudit{}, false
	}

	// Examples keep the original raw text, de-duplicated by exact
	// string, in first-occurrence row order, capped at maxExamples
	examples := make([]string, 0, maxExamples)
	seen := make(map[string]bool)
	for _, row := range flagged {
		raw := col.Values[row].(string)
		if seen[raw] {
			continue
		}
		seen[raw] = true
		examples = append(examples, raw)
		if len(examples) == maxExamples {
			break
		}
	}

	for _, row := range flagged {
		col.Values[row] = nil
	}

	return model.ColumnAudit{Count: len(flagged), Examples: examples}, true
}
