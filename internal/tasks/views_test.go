package tasks

import (
	"context"
	"reflect"
	"testing"

	"eisen/internal/model"
)

func titles(ts []model.Task) []string {
	out := []string{}
	for _, t := range ts {
		out = append(out, t.Title)
	}
	return out
}

func TestUrgentTasks(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	mustAdd(t, r, NewTask{Title: "a", Urgency: 1})
	mustAdd(t, r, NewTask{Title: "b", Urgency: 0})
	done := mustAdd(t, r, NewTask{Title: "c", Urgency: 5})
	mustAdd(t, r, NewTask{Title: "d", Urgency: 3, Importance: -4})
	_, _ = r.MarkDone(ctx, done.ID)

	got, err := r.UrgentTasks(ctx)
	if err != nil {
		t.Fatalf("urgent: %v", err)
	}
	if want := []string{"a", "d"}; !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("expected %v, got %v", want, titles(got))
	}
	for _, tk := range got {
		if tk.Urgency <= 0 || tk.IsDone() {
			t.Fatalf("unexpected task in urgent view: %+v", tk)
		}
	}
}

func TestTopNPending(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	mustAdd(t, r, NewTask{Title: "low", Importance: -2, Urgency: 5})
	mustAdd(t, r, NewTask{Title: "tie-1", Importance: 3, Urgency: 1})
	mustAdd(t, r, NewTask{Title: "top", Importance: 5, Urgency: 0})
	mustAdd(t, r, NewTask{Title: "tie-2", Importance: 3, Urgency: 1})
	mustAdd(t, r, NewTask{Title: "urgent-3", Importance: 3, Urgency: 4})
	done := mustAdd(t, r, NewTask{Title: "done", Importance: 5, Urgency: 5})
	_, _ = r.MarkDone(ctx, done.ID)

	cases := []struct {
		n    int
		want []string
	}{
		{0, []string{}},
		{-1, []string{}},
		{1, []string{"top"}},
		{3, []string{"top", "urgent-3", "tie-1"}},
		{DefaultTopN, []string{"top", "urgent-3", "tie-1", "tie-2", "low"}},
	}
	for _, tc := range cases {
		got, err := r.TopNPending(ctx, tc.n)
		if err != nil {
			t.Fatalf("top %d: %v", tc.n, err)
		}
		if !reflect.DeepEqual(titles(got), tc.want) {
			t.Fatalf("top %d: expected %v, got %v", tc.n, tc.want, titles(got))
		}
		if tc.n > 0 && len(got) > tc.n {
			t.Fatalf("top %d returned %d items", tc.n, len(got))
		}
		for i := 1; i < len(got); i++ {
			a, b := got[i-1], got[i]
			if a.Importance < b.Importance || (a.Importance == b.Importance && a.Urgency < b.Urgency) {
				t.Fatalf("not sorted at %d: %+v before %+v", i, a, b)
			}
		}
	}
}

func TestGroupByTag(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	for _, tag := range []string{"B", "A", "empty"} {
		if err := r.AddTag(ctx, tag); err != nil {
			t.Fatalf("add tag: %v", err)
		}
	}
	mustAdd(t, r, NewTask{Title: "both", Tags: []string{"A", "B"}})
	mustAdd(t, r, NewTask{Title: "only-a", Tags: []string{"A"}})
	mustAdd(t, r, NewTask{Title: "unregistered", Tags: []string{"Z"}})
	done := mustAdd(t, r, NewTask{Title: "done", Tags: []string{"empty"}})
	_, _ = r.MarkDone(ctx, done.ID)

	got, err := r.GroupByTag(ctx)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	var tags []string
	members := map[string][]string{}
	for _, g := range got {
		tags = append(tags, g.Tag)
		members[g.Tag] = titles(g.Tasks)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected groups %v, got %v", want, tags)
	}
	if want := []string{"both", "only-a"}; !reflect.DeepEqual(members["A"], want) {
		t.Fatalf("group A: expected %v, got %v", want, members["A"])
	}
	if want := []string{"both"}; !reflect.DeepEqual(members["B"], want) {
		t.Fatalf("group B: expected %v, got %v", want, members["B"])
	}
}

func TestByQuadrant(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	mustAdd(t, r, NewTask{Title: "do", Importance: 1, Urgency: 1})
	mustAdd(t, r, NewTask{Title: "drop", Importance: 0, Urgency: 0})
	done := mustAdd(t, r, NewTask{Title: "done", Importance: 1, Urgency: 1})
	_, _ = r.MarkDone(ctx, done.ID)

	got, err := r.ByQuadrant(ctx)
	if err != nil {
		t.Fatalf("by quadrant: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(got))
	}
	want := map[model.Quadrant][]string{
		model.QuadrantDoFirst:   {"do"},
		model.QuadrantSchedule:  {},
		model.QuadrantDelegate:  {},
		model.QuadrantEliminate: {"drop"},
	}
	for i, b := range got {
		if b.Quadrant != model.Quadrants()[i] {
			t.Fatalf("bucket %d: expected %q, got %q", i, model.Quadrants()[i], b.Quadrant)
		}
		if !reflect.DeepEqual(titles(b.Tasks), want[b.Quadrant]) {
			t.Fatalf("%s: expected %v, got %v", b.Quadrant, want[b.Quadrant], titles(b.Tasks))
		}
	}
}
