package tasks

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestAddTag(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	if err := r.AddTag(ctx, "  "); !errors.Is(err, ErrBlankTag) {
		t.Fatalf("expected ErrBlankTag, got %v", err)
	}
	for _, name := range []string{"work", "home", " errands "} {
		if err := r.AddTag(ctx, name); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
	if err := r.AddTag(ctx, "work"); !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}
	// Exact match only: case differs.
	if err := r.AddTag(ctx, "Work"); err != nil {
		t.Fatalf("add Work: %v", err)
	}

	got, err := r.ListTags(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"Work", "errands", "home", "work"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDeleteTag(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	_ = r.AddTag(ctx, "work")
	tk := mustAdd(t, r, NewTask{Title: "x", Tags: []string{"work"}})

	if err := r.DeleteTag(ctx, "work"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var nf NotFoundError
	if err := r.DeleteTag(ctx, "work"); !errors.As(err, &nf) || nf.Kind != "tag" {
		t.Fatalf("expected tag not found, got %v", err)
	}
	tags, _ := r.ListTags(ctx)
	if len(tags) != 0 {
		t.Fatalf("expected empty registry, got %v", tags)
	}

	// Tasks keep the deleted tag.
	got, _, _ := r.GetTask(ctx, tk.ID)
	if !got.HasTag("work") {
		t.Fatalf("expected task to keep tag, got %v", got.Tags)
	}
	groups, _ := r.GroupByTag(ctx)
	if len(groups) != 0 {
		t.Fatalf("expected no groups for unregistered tag, got %+v", groups)
	}
}
