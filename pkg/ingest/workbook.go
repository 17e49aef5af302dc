// Package ingest parses client and property workbooks into domain rows.
// The feed is append-only input: rows load once and the core never consults
// the source again.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidWorkbook marks failures caused by the uploaded feed itself, a
// missing column, an unreadable file, a bad row. Storage failures after a
// clean parse never wrap it.
var ErrInvalidWorkbook = errors.New("invalid workbook")

// rowError annotates a parse failure with its 1-based workbook row.
func rowError(row int, err error) error {
	return fmt.Errorf("row %d: %w", row, err)
}

// invalid tags err as a feed-content failure.
func invalid(err error) error {
	return fmt.Errorf("%v: %w", err, ErrInvalidWorkbook)
}

// sheetRows opens the first sheet of an .xlsx workbook and returns a header
// index plus the data rows. The header row must name every required column.
func sheetRows(r io.Reader, required []string) (map[string]int, [][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("workbook has no header row")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[normalizeHeader(name)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	return header, rows[1:], nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func cell(row []string, header map[string]int, col string) string {
	idx, ok := header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNonNegativeInt rejects non-numeric and negative values. Ingestion is
// the validation boundary: the matching engine assumes clean numerics.
func parseNonNegativeInt(value, col string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", col, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("column %s: negative value %d", col, n)
	}
	return n, nil
}

func parseNonNegativeFloat(value, col string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("column %s: empty value", col)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", col, value)
	}
	if f < 0 {
		return 0, fmt.Errorf("column %s: negative value %g", col, f)
	}
	return f, nil
}

func parseBool(value, col string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "yes", "y", "1":
		return true, nil
	case "false", "no", "n", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("column %s: %q is not a boolean", col, value)
	}
}

// splitCities parses the comma-separated preferred-city list, preserving
// the stated order for display while dropping empty segments.
func splitCities(value string) []string {
	parts := strings.Split(value, ",")
	cities := make([]string, 0, len(parts))
	for _, part := range parts {
		if city := strings.TrimSpace(part); city != "" {
			cities = append(cities, city)
		}
	}
	return cities
}
