package refdata

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// mapColumns builds a case-insensitive column name to index map.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// getCol gets a column value by name, returning empty string if not found.
func getCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[strings.ToLower(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// requireColumns fails when any of names is absent from the header.
func requireColumns(source string, colIdx map[string]int, names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := colIdx[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("refdata: %s is missing required columns: %s", source, strings.Join(missing, ", "))
	}
	return nil
}

// cleanNumber strips thousands separators and currency marks that appear in
// published spreadsheets.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	return s
}

// parseFloatPtr parses a nullable number. Blank cells are nil.
func parseFloatPtr(s string) (*float64, error) {
	s = cleanNumber(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "parse number %q", s)
	}
	return &v, nil
}

// parseIntOr parses an integer code, returning def for blank cells.
func parseIntOr(s string, def int) (int, error) {
	s = cleanNumber(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err == nil {
		return v, nil
	}
	// Spreadsheet cells can render integers as "3.0".
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != float64(int(f)) {
		return 0, eris.Wrapf(err, "parse integer %q", s)
	}
	return int(f), nil
}

// rowError attaches source and row position to a parse failure.
func rowError(err error, source string, index int, column string) error {
	return eris.Wrapf(err, "refdata: %s row %d column %s", source, index, column)
}

// isNumeric reports whether s is a non-empty run of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
