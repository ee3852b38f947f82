package sheets

import (
	"errors"
	"fmt"
	"strings"
)

// quoteSheet renders a worksheet title for A1 notation.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// rowRange addresses a whole row (1-based) starting at column A.
func rowRange(title string, row int) string {
	return fmt.Sprintf("%s!A%d", quoteSheet(title), row)
}

// bodyRange addresses every row after the header.
func bodyRange(title string) string {
	return quoteSheet(title) + "!A2:ZZ"
}

// SpreadsheetIDFromURL accepts either a bare spreadsheet id or a
// docs.google.com/spreadsheets/d/<id>/... URL.
func SpreadsheetIDFromURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("sheets: empty spreadsheet id")
	}
	const marker = "/spreadsheets/d/"
	i := strings.Index(s, marker)
	if i < 0 {
		if strings.ContainsAny(s, "/?#") {
			return "", fmt.Errorf("sheets: not a spreadsheet url: %s", s)
		}
		return s, nil
	}
	id := s[i+len(marker):]
	if j := strings.IndexAny(id, "/?#"); j >= 0 {
		id = id[:j]
	}
	if id == "" {
		return "", fmt.Errorf("sheets: no id in url: %s", s)
	}
	return id, nil
}

func cellStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

func cellValues(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// mergeHeader returns header with any missing columns appended, and whether
// it changed.
func mergeHeader(header, want []string) ([]string, bool) {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	out := append([]string(nil), header...)
	changed := false
	for _, w := range want {
		if !have[w] {
			out = append(out, w)
			changed = true
		}
	}
	return out, changed
}

// rowForHeader lays values (keyed by column) out in header order. Columns we
// do not own keep whatever the existing row held.
func rowForHeader(header []string, values map[string]string, existing []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if v, ok := values[strings.TrimSpace(h)]; ok {
			out[i] = v
		} else if i < len(existing) {
			out[i] = existing[i]
		}
	}
	return out
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
