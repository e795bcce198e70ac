// pkg/model/audit.go
package model

// ColumnAudit summarizes the suspicious values coerced to missing in a
// single column
type ColumnAudit struct {
	// Count is the total number of flagged cells
	Count int `json:"count"`
	// Examples holds up to the configured cap of distinct raw values,
	// in first-occurrence row order
	Examples []string `json:"examples"`
}

// Audit maps column name to its cleaning summary. Columns with zero
// flagged cells have no entry.
type Audit map[string]ColumnAudit

// TotalFlagged returns the number of flagged cells across all columns
func (a Audit) TotalFlagged() int {
	total := 0
	for _, col := range a {
		total += col.Count
	}
	return total
}
