package store

import (
	"strconv"
	"strings"

	"eisen/internal/model"
)

// TaskColumns is the fixed tabular schema shared by every backend.
var TaskColumns = []string{"id", "title", "description", "importance", "urgency", "due_date", "tags", "quadrant", "status"}

// TagColumn is the single header of the tag table.
const TagColumn = "tag_name"

// TaskToRow encodes a task in TaskColumns order.
func TaskToRow(t model.Task) []string {
	return []string{
		t.ID,
		t.Title,
		t.Description,
		strconv.Itoa(t.Importance),
		strconv.Itoa(t.Urgency),
		t.DueDate,
		model.JoinTags(t.Tags),
		string(t.Quadrant),
		string(t.Status),
	}
}

// TaskFromRecord decodes a row keyed by column name. Missing columns read as
// empty and unparsable scores read as 0. Quadrant is recomputed from the
// scores so hand-edited rows cannot break the classification invariant.
func TaskFromRecord(rec map[string]string) model.Task {
	t := model.Task{
		ID:          strings.TrimSpace(rec["id"]),
		Title:       rec["title"],
		Description: rec["description"],
		Importance:  parseScore(rec["importance"]),
		Urgency:     parseScore(rec["urgency"]),
		DueDate:     strings.TrimSpace(rec["due_date"]),
		Tags:        model.SplitTags(rec["tags"]),
		Status:      model.Status(strings.TrimSpace(rec["status"])),
	}
	if t.Status != model.StatusDone {
		t.Status = model.StatusPending
	}
	// Scores win over the stored quadrant column.
	t.Quadrant = model.Classify(t.Importance, t.Urgency)
	return t
}

// RecordFromRow pairs a header row with a data row. Short rows are padded
// with empty values.
func RecordFromRow(header, row []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if i < len(row) {
			rec[col] = row[i]
		} else {
			rec[col] = ""
		}
	}
	return rec
}

func parseScore(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Spreadsheets sometimes hand back "3.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
