package model

import "strings"

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Task is a single tracked task. Quadrant is derived from Importance and
// Urgency: the tasks package sets it on every write, and the store loaders
// derive it again on read so a hand-edited quadrant column cannot drift.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Importance  int      `json:"importance"`
	Urgency     int      `json:"urgency"`
	DueDate     string   `json:"dueDate,omitempty"` // YYYY-MM-DD or empty
	Tags        []string `json:"tags,omitempty"`
	Quadrant    Quadrant `json:"quadrant"`
	Status      Status   `json:"status"`
}

func (t Task) IsDone() bool { return t.Status == StatusDone }

func (t Task) HasTag(tag string) bool {
	for _, x := range t.Tags {
		if x == tag {
			return true
		}
	}
	return false
}

const (
	MinScore = -5
	MaxScore = 5
)

func ScoreInRange(v int) bool { return v >= MinScore && v <= MaxScore }

// TagSeparator joins tags in the persisted column.
const TagSeparator = ", "

// JoinTags serializes tags into the single persisted column.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}

// SplitTags parses the persisted tags column. Names are trimmed and empty
// names dropped; order is preserved.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// NormalizeTags trims names, drops empties and removes repeats while keeping
// first-seen order.
func NormalizeTags(tags []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
