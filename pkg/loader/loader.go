// pkg/loader/loader.go
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/dataset-tools/insights/pkg/converter"
	"github.com/dataset-tools/insights/pkg/model"
)

// Sentinel errors for the loader failure taxonomy
var (
	// ErrFileNotFound indicates the input path does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrParse indicates the file could not be parsed as CSV
	ErrParse = errors.New("could not parse CSV")
	// ErrEmptyDataset indicates the file has no data rows or no columns
	ErrEmptyDataset = errors.New("CSV is empty or has no data rows")
)

// CSVLoader reads a CSV file into an in-memory columnar table,
// applying the parse-time missing-token vocabulary and falling back to
// Latin-1 decoding when the bytes are not valid UTF-8
type CSVLoader struct {
	logger    *zap.Logger
	converter *converter.TypeConverter
	naValues  map[string]struct{}
}

// NewCSVLoader creates a new CSVLoader instance
func NewCSVLoader(logger *zap.Logger) (*CSVLoader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &CSVLoader{
		logger:    logger,
		converter: converter.NewTypeConverter(logger),
		naValues:  naValueSet(),
	}, nil
}

// Load reads and validates the CSV file at path and returns a typed
// table. The returned table always satisfies model.Table.Validate.
func (l *CSVLoader) Load(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		// Exported spreadsheets are frequently Latin-1; retry with it
		// when UTF-8 decoding fails
		l.logger.Warn("Input is not valid UTF-8, falling back to Latin-1",
			zap.String("path", path))
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, decErr)
		}
		data = decoded
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	table, err := l.buildTable(records)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loaded CSV",
		zap.String("path", path),
		zap.Int("rows", table.NumRows()),
		zap.Int("columns", table.NumCols()))
	return table, nil
}

// buildTable converts raw CSV records (header first) into a typed table
func (l *CSVLoader) buildTable(records [][]string) (*model.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(records) == 1 {
		return nil, ErrEmptyDataset
	}

	header := uniqueHeader(records[0])
	rows := records[1:]

	table := &model.Table{Columns: make([]model.Column, 0, len(header))}
	for colIdx, name := range header {
		raw := make([]string, len(rows))
		missing := make([]bool, len(rows))
		for rowIdx, record := range rows {
			cell := record[colIdx]
			raw[rowIdx] = cell
			missing[rowIdx] = l.isNA(cell)
		}
		table.Columns = append(table.Columns, l.converter.ConvertColumn(name, raw, missing))
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return table, nil
}

// isNA reports whether a raw cell is missing at parse time
func (l *CSVLoader) isNA(cell string) bool {
	if strings.TrimSpace(cell) == "" {
		return true
	}
	_, found := l.naValues[cell]
	return found
}

// uniqueHeader disambiguates duplicate column names by appending a
// numeric suffix (a, a.1, a.2), mirroring common CSV tooling
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	counts := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if n := counts[name]; n > 0 {
			out[i] = fmt.Sprintf("%s.%d", name, n)
		} else {
			out[i] = name
		}
		counts[name]++
	}
	return out
}
