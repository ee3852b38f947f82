package publish

import (
	"bytes"
	"fmt"
	"strings"

	"eisen/internal/model"
)

type RenderOptions struct {
	IncludeDone bool
}

// RenderTaskMarkdown renders a single task page.
func RenderTaskMarkdown(t model.Task) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(t.Title))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + t.ID)
	writeLn("- Quadrant: " + string(model.Classify(t.Importance, t.Urgency)))
	writeLn(fmt.Sprintf("- Importance: %d", t.Importance))
	writeLn(fmt.Sprintf("- Urgency: %d", t.Urgency))
	writeLn("- Status: " + string(t.Status))
	if strings.TrimSpace(t.DueDate) != "" {
		writeLn("- Due: " + t.DueDate)
	}
	if len(t.Tags) > 0 {
		writeLn("- Tags: " + model.JoinTags(t.Tags))
	}

	if desc := strings.TrimSpace(t.Description); desc != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(desc)
	}
	return buf.String()
}

// RenderMatrixIndexMarkdown renders the matrix page: one section per
// quadrant in reading order, linking each task page. Done tasks only appear
// (in their own section) with IncludeDone.
func RenderMatrixIndexMarkdown(ts []model.Task, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	buckets := map[model.Quadrant][]model.Task{}
	var done []model.Task
	for _, t := range ts {
		if t.IsDone() {
			done = append(done, t)
			continue
		}
		q := model.Classify(t.Importance, t.Urgency)
		buckets[q] = append(buckets[q], t)
	}

	writeLn("# Eisenhower matrix")
	for _, q := range model.Quadrants() {
		writeLn("")
		writeLn(fmt.Sprintf("## %s (%d)", q, len(buckets[q])))
		writeLn("")
		if len(buckets[q]) == 0 {
			writeLn("_Nothing here._")
			continue
		}
		for _, t := range buckets[q] {
			writeLn(taskLink(t))
		}
	}

	if opt.IncludeDone && len(done) > 0 {
		writeLn("")
		writeLn(fmt.Sprintf("## Done (%d)", len(done)))
		writeLn("")
		for _, t := range done {
			writeLn(taskLink(t))
		}
	}
	return buf.String()
}

func taskLink(t model.Task) string {
	line := fmt.Sprintf("- [%s](tasks/%s.md)", strings.TrimSpace(t.Title), t.ID)
	if strings.TrimSpace(t.DueDate) != "" {
		line += " · due " + t.DueDate
	}
	return line
}
