package cli

import (
	"encoding/json"
	"strconv"

	"eisen/internal/model"
	"eisen/internal/tasks"
)

// Text-mode renderings. JSON output marshals the underlying values.

type taskList []model.Task

func (l taskList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]model.Task(l))
}

func (l taskList) TableHeaders() []string {
	return []string{"ID", "TITLE", "IMP", "URG", "DUE", "TAGS", "QUADRANT", "STATUS"}
}

func (l taskList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, t := range l {
		rows = append(rows, []string{
			shortID(t.ID),
			t.Title,
			strconv.Itoa(t.Importance),
			strconv.Itoa(t.Urgency),
			t.DueDate,
			model.JoinTags(t.Tags),
			string(t.Quadrant),
			string(t.Status),
		})
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type taskDetail model.Task

func (d taskDetail) MarshalJSON() ([]byte, error) { return json.Marshal(model.Task(d)) }

func (d taskDetail) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (d taskDetail) TableRows() [][]string {
	return [][]string{
		{"id", d.ID},
		{"title", d.Title},
		{"description", d.Description},
		{"importance", strconv.Itoa(d.Importance)},
		{"urgency", strconv.Itoa(d.Urgency)},
		{"due_date", d.DueDate},
		{"tags", model.JoinTags(d.Tags)},
		{"quadrant", string(d.Quadrant)},
		{"status", string(d.Status)},
	}
}

type tagList []string

func (l tagList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l tagList) TableHeaders() []string { return []string{"TAG"} }

func (l tagList) TableRows() [][]string {
	rows := make([][]string, len(l))
	for i, t := range l {
		rows[i] = []string{t}
	}
	return rows
}

type tagGroups []tasks.TagGroup

func (g tagGroups) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]tasks.TagGroup(g))
}

func (g tagGroups) TableHeaders() []string { return []string{"TAG", "ID", "TITLE", "QUADRANT"} }

func (g tagGroups) TableRows() [][]string {
	var rows [][]string
	for _, grp := range g {
		for _, t := range grp.Tasks {
			rows = append(rows, []string{grp.Tag, shortID(t.ID), t.Title, string(t.Quadrant)})
		}
	}
	return rows
}

type matrix []tasks.QuadrantBucket

func (m matrix) MarshalJSON() ([]byte, error) { return json.Marshal([]tasks.QuadrantBucket(m)) }

func (m matrix) TableHeaders() []string { return []string{"QUADRANT", "ID", "TITLE", "IMP", "URG"} }

func (m matrix) TableRows() [][]string {
	var rows [][]string
	for _, b := range m {
		if len(b.Tasks) == 0 {
			rows = append(rows, []string{string(b.Quadrant), "", "-", "", ""})
			continue
		}
		for _, t := range b.Tasks {
			rows = append(rows, []string{string(b.Quadrant), shortID(t.ID), t.Title, strconv.Itoa(t.Importance), strconv.Itoa(t.Urgency)})
		}
	}
	return rows
}

// similarityGroups is the result of `eisen group`.
type similarityGroups [][]model.Task

func (g similarityGroups) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([][]model.Task(g))
}

func (g similarityGroups) TableHeaders() []string { return []string{"GROUP", "ID", "TITLE"} }

func (g similarityGroups) TableRows() [][]string {
	var rows [][]string
	for i, grp := range g {
		for _, t := range grp {
			rows = append(rows, []string{strconv.Itoa(i + 1), shortID(t.ID), t.Title})
		}
	}
	return rows
}
