// pkg/converter/converter.go
package converter

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/model"
)

// TypeConverter infers column dtypes from raw text cells and converts
// cells to their typed Go values
type TypeConverter struct {
	logger *zap.Logger
	config TypeConverterConfig
}

// TypeConverterConfig provides configuration options for type inference
type TypeConverterConfig struct {
	// Time layouts tried, in order, when probing for temporal columns
	TimeLayouts []string
	// Whether a column of only missing cells is typed as text
	MissingOnlyAsText bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() TypeConverterConfig {
	return TypeConverterConfig{
		TimeLayouts: []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02",
		},
		MissingOnlyAsText: true,
	}
}

// NewTypeConverter creates a new TypeConverter with default configuration
func NewTypeConverter(logger *zap.Logger) *TypeConverter {
	return NewTypeConverterWithConfig(logger, DefaultConfig())
}

// NewTypeConverterWithConfig creates a TypeConverter with custom configuration
func NewTypeConverterWithConfig(logger *zap.Logger, config TypeConverterConfig) *TypeConverter {
	return &TypeConverter{
		logger: logger,
		config: config,
	}
}

// ConvertColumn infers the dtype of a raw text column and converts its
// cells. raw holds the parsed strings; missing marks cells already
// identified as missing by the loader.
func (c *TypeConverter) ConvertColumn(name string, raw []string, missing []bool) model.Column {
	dtype := c.inferType(raw, missing)

	values := make([]interface{}, len(raw))
	for i, cell := range raw {
		if missing[i] {
			continue // stays nil
		}
		values[i] = c.convertCell(cell, dtype)
	}

	col := model.Column{Name: name, Type: dtype, Values: values}
	c.logger.Debug("Inferred column type",
		zap.String("column", name),
		zap.String("dtype", dtype.String()))
	return col
}

// inferType picks the narrowest dtype that every non-missing cell fits
func (c *TypeConverter) inferType(raw []string, missing []bool) model.DType {
	sampled := 0
	isNumeric := true
	isBool := true
	isTime := true

	for i, cell := range raw {
		if missing[i] {
			continue
		}
		sampled++

		if isNumeric && !parsesAsFloat(cell) {
			isNumeric = false
		}
		if isBool && !parsesAsBool(cell) {
			isBool = false
		}
		if isTime && !c.parsesAsTime(cell) {
			isTime = false
		}
		if !isNumeric && !isBool && !isTime {
			return model.DTypeText
		}
	}

	if sampled == 0 {
		// No evidence either way
		return model.DTypeText
	}

	switch {
	case isBool:
		return model.DTypeBool
	case isNumeric:
		return model.DTypeNumeric
	case isTime:
		return model.DTypeTime
	default:
		return model.DTypeText
	}
}

// convertCell converts a single non-missing cell to the column dtype
func (c *TypeConverter) convertCell(cell string, dtype model.DType) interface{} {
	trimmed := strings.TrimSpace(cell)

	switch dtype {
	case model.DTypeNumeric:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			// Unparseable cells keep their raw text
			c.logger.Warn("Numeric cell failed to parse after inference",
				zap.String("value", cell))
			return cell
		}
		return f
	case model.DTypeBool:
		b, _ := strconv.ParseBool(strings.ToLower(trimmed))
		return b
	case model.DTypeTime:
		for _, layout := range c.config.TimeLayouts {
			if ts, err := time.Parse(layout, trimmed); err == nil {
				return ts
			}
		}
		return cell
	default:
		return cell
	}
}

func parsesAsFloat(cell string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	return err == nil
}

func parsesAsBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "false":
		return true
	default:
		return false
	}
}

func (c *TypeConverter) parsesAsTime(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	for _, layout := range c.config.TimeLayouts {
		if _, err := time.Parse(layout, trimmed); err == nil {
			return true
		}
	}
	return false
}
