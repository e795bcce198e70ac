// pkg/connector/connector.go
package connector

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/model"
)

// TableSource defines the interface for database-backed table sources.
// A source loads a named table into the in-memory columnar model so it
// can be profiled like a CSV file.
type TableSource interface {
	// LoadTable reads the named table into a model.Table
	LoadTable(ctx context.Context, table string) (*model.Table, error)

	// Validate verifies the connection and permissions
	Validate() error

	// Close closes the connection and releases resources
	Close() error
}

var identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// quoteTableName validates and quotes a user-supplied table name,
// allowing an optional schema qualifier
func quoteTableName(name string) (string, error) {
	if !identifierRE.MatchString(name) {
		return "", fmt.Errorf("invalid table name: %q", name)
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid table name: %q", name)
	}
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, "."), nil
}

// scanTable drains a result set into a model.Table. Column dtypes are
// derived from the Go values the driver produces: int64/float64 become
// numeric, bool stays boolean, time.Time becomes temporal, everything
// else is text. Numeric columns are widened to float64 to match the
// statistics layer.
func scanTable(rows *sqlx.Rows) (*model.Table, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read column names: %w", err)
	}

	raw := make([][]interface{}, len(names))
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range record {
			raw[i] = append(raw[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	table := &model.Table{Columns: make([]model.Column, len(names))}
	for i, name := range names {
		table.Columns[i] = buildColumn(name, raw[i])
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// buildColumn types a scanned column from the values the driver returned
func buildColumn(name string, values []interface{}) model.Column {
	dtype := inferScannedType(values)

	out := make([]interface{}, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		switch dtype {
		case model.DTypeNumeric:
			out[i] = toFloat64(v)
		case model.DTypeBool:
			out[i] = v.(bool)
		case model.DTypeTime:
			out[i] = v.(time.Time)
		default:
			out[i] = toText(v)
		}
	}

	return model.Column{Name: name, Type: dtype, Values: out}
}

// inferScannedType picks a dtype when every non-nil value agrees on one
func inferScannedType(values []interface{}) model.DType {
	sampled := 0
	isNumeric := true
	isBool := true
	isTime := true

	for _, v := range values {
		if v == nil {
			continue
		}
		sampled++

		switch v.(type) {
		case int64, float64:
			isBool, isTime = false, false
		case bool:
			isNumeric, isTime = false, false
		case time.Time:
			isNumeric, isBool = false, false
		default:
			return model.DTypeText
		}
	}

	if sampled == 0 {
		return model.DTypeText
	}

	switch {
	case isNumeric:
		return model.DTypeNumeric
	case isBool:
		return model.DTypeBool
	case isTime:
		return model.DTypeTime
	default:
		return model.DTypeText
	}
}

func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case int64:
		return float64(val)
	case float64:
		return val
	default:
		return 0
	}
}

func toText(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// PingWithTimeout attempts to ping a database with a timeout
func PingWithTimeout(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping failed after %v: %w", timeout, err)
	}
	return nil
}

// ApplyConnectionSettings configures database connection pool settings
func ApplyConnectionSettings(db *sql.DB, maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
	if maxIdleTime > 0 {
		db.SetConnMaxIdleTime(maxIdleTime)
	}
}

// LogConnectionStats logs connection pool statistics
func LogConnectionStats(logger *zap.Logger, name string, db *sql.DB) {
	stats := db.Stats()
	logger.Debug("Connection pool stats",
		zap.String("database", name),
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int("max_open", stats.MaxOpenConnections),
	)
}
