package tasks

import (
	"context"
	"sort"
	"strings"

	"eisen/internal/model"
)

// DefaultTopN is the Ivy Lee list length.
const DefaultTopN = 6

// TagGroup is one entry of GroupByTag.
type TagGroup struct {
	Tag   string       `json:"tag"`
	Tasks []model.Task `json:"tasks"`
}

// QuadrantBucket is one cell of the matrix view.
type QuadrantBucket struct {
	Quadrant model.Quadrant `json:"quadrant"`
	Tasks    []model.Task   `json:"tasks"`
}

func pending(ts []model.Task) []model.Task {
	out := make([]model.Task, 0, len(ts))
	for _, t := range ts {
		if !t.IsDone() {
			out = append(out, t)
		}
	}
	return out
}

// UrgentTasks returns pending tasks with positive urgency, in storage order.
func (r *Repository) UrgentTasks(ctx context.Context) ([]model.Task, error) {
	ts, err := r.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Task{}
	for _, t := range pending(ts) {
		if t.Urgency > 0 {
			out = append(out, t)
		}
	}
	return out, nil
}

// TopNPending returns at most n pending tasks ordered by importance, then
// urgency, both descending. Ties keep storage order.
func (r *Repository) TopNPending(ctx context.Context, n int) ([]model.Task, error) {
	if n <= 0 {
		return []model.Task{}, nil
	}
	ts, err := r.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	out := pending(ts)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Importance != out[j].Importance {
			return out[i].Importance > out[j].Importance
		}
		return out[i].Urgency > out[j].Urgency
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// GroupByTag partitions pending tasks by registered tag. A task appears once
// per registered tag it carries; tags with no tasks are omitted.
func (r *Repository) GroupByTag(ctx context.Context) ([]TagGroup, error) {
	registry, err := r.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	ts, err := r.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	open := pending(ts)

	out := []TagGroup{}
	for _, tag := range registry {
		var members []model.Task
		for _, t := range open {
			if carriesTag(t, tag) {
				members = append(members, t)
			}
		}
		if len(members) > 0 {
			out = append(out, TagGroup{Tag: tag, Tasks: members})
		}
	}
	return out, nil
}

func carriesTag(t model.Task, tag string) bool {
	for _, x := range t.Tags {
		if strings.TrimSpace(x) == tag {
			return true
		}
	}
	return false
}

// ByQuadrant buckets pending tasks by quadrant in matrix order. All four
// buckets are always present.
func (r *Repository) ByQuadrant(ctx context.Context) ([]QuadrantBucket, error) {
	ts, err := r.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	qs := model.Quadrants()
	out := make([]QuadrantBucket, len(qs))
	index := make(map[model.Quadrant]int, len(qs))
	for i, q := range qs {
		out[i] = QuadrantBucket{Quadrant: q, Tasks: []model.Task{}}
		index[q] = i
	}
	for _, t := range pending(ts) {
		i := index[model.Classify(t.Importance, t.Urgency)]
		out[i].Tasks = append(out[i].Tasks, t)
	}
	return out, nil
}
