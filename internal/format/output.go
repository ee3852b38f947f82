package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is implemented by results that have a human table rendering.
type Table interface {
	TableHeaders() []string
	TableRows() [][]string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default for scripts)
// - text (tables for humans; values without a table form fall back to JSON)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders v for a terminal. Envelopes ({"data": ...}) are unwrapped.
func WriteText(w io.Writer, v any) error {
	if m, ok := v.(map[string]any); ok {
		if d, ok := m["data"]; ok {
			v = d
		}
	}
	switch t := v.(type) {
	case Table:
		_, err := fmt.Fprintln(w, RenderTable(t.TableHeaders(), t.TableRows()))
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, strings.TrimRight(t.String(), "\n"))
		return err
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	default:
		return WriteJSON(w, v, true)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderTable draws a bordered table. An empty row set renders "(none)".
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return "(none)"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
