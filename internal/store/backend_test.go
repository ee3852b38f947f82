package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"eisen/internal/model"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "eisen.sqlite"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Backend{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func sampleTask(id, title string, importance, urgency int) model.Task {
	return model.Task{
		ID:         id,
		Title:      title,
		Importance: importance,
		Urgency:    urgency,
		Tags:       []string{"work", "home"},
		Quadrant:   model.Classify(importance, urgency),
		Status:     model.StatusPending,
	}
}

func TestBackend_TasksKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, tk := range []model.Task{
				sampleTask("t-1", "first", 1, 1),
				sampleTask("t-2", "second", -1, 2),
				sampleTask("t-3", "third", 0, 0),
			} {
				if err := b.InsertTask(ctx, tk); err != nil {
					t.Fatalf("insert %s: %v", tk.ID, err)
				}
			}
			got, err := b.LoadTasks(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			var ids []string
			for _, tk := range got {
				ids = append(ids, tk.ID)
			}
			if want := []string{"t-1", "t-2", "t-3"}; !reflect.DeepEqual(ids, want) {
				t.Fatalf("expected %v, got %v", want, ids)
			}
			if !reflect.DeepEqual(got[0].Tags, []string{"work", "home"}) {
				t.Fatalf("expected tags to survive storage, got %#v", got[0].Tags)
			}
		})
	}
}

func TestBackend_UpdateTaskByID(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			tk := sampleTask("t-1", "first", 1, 1)
			if err := b.InsertTask(ctx, tk); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if err := b.InsertTask(ctx, sampleTask("t-2", "second", 1, 1)); err != nil {
				t.Fatalf("insert: %v", err)
			}
			tk.Title = "renamed"
			tk.Status = model.StatusDone
			if err := b.UpdateTask(ctx, tk); err != nil {
				t.Fatalf("update: %v", err)
			}
			got, err := b.LoadTasks(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got[0].Title != "renamed" || got[0].Status != model.StatusDone {
				t.Fatalf("unexpected first task after update: %+v", got[0])
			}
			if got[1].Title != "second" {
				t.Fatalf("update leaked into another row: %+v", got[1])
			}

			missing := sampleTask("t-404", "nope", 0, 0)
			if err := b.UpdateTask(ctx, missing); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestBackend_ClearTasksKeepsTags(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_ = b.InsertTask(ctx, sampleTask("t-1", "first", 1, 1))
			_ = b.AppendTag(ctx, "work")
			if err := b.ClearTasks(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			got, err := b.LoadTasks(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected no tasks, got %d", len(got))
			}
			tags, _ := b.LoadTags(ctx)
			if len(tags) != 1 {
				t.Fatalf("expected tags to survive clear, got %v", tags)
			}
			// Schema is intact: inserting again works.
			if err := b.InsertTask(ctx, sampleTask("t-2", "again", 0, 0)); err != nil {
				t.Fatalf("insert after clear: %v", err)
			}
		})
	}
}

func TestBackend_DeleteTagRemovesFirstMatch(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, tag := range []string{"a", "b", "a"} {
				if err := b.AppendTag(ctx, tag); err != nil {
					t.Fatalf("append: %v", err)
				}
			}
			ok, err := b.DeleteTag(ctx, "a")
			if err != nil || !ok {
				t.Fatalf("delete a: ok=%v err=%v", ok, err)
			}
			tags, _ := b.LoadTags(ctx)
			if want := []string{"b", "a"}; !reflect.DeepEqual(tags, want) {
				t.Fatalf("expected %v, got %v", want, tags)
			}
			ok, err = b.DeleteTag(ctx, "zzz")
			if err != nil || ok {
				t.Fatalf("delete missing: ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestOpenSQLite_ReopenSeesData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "eisen.sqlite")
	a, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := a.InsertTask(ctx, sampleTask("t-1", "persisted", 2, 2)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = a.Close()

	b, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	got, err := b.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Title != "persisted" || got[0].Quadrant != model.QuadrantDoFirst {
		t.Fatalf("unexpected tasks after reopen: %+v", got)
	}
}
