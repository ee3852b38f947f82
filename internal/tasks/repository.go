// Package tasks implements the task repository, its read-only views and the
// tag registry on top of a store.Backend.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"eisen/internal/model"
	"eisen/internal/store"

	"github.com/google/uuid"
)

// NewTask holds the fields accepted by AddTask.
type NewTask struct {
	Title       string
	Description string
	Importance  int
	Urgency     int
	DueDate     string
	Tags        []string
}

// Update is a partial task update. Nil fields are left untouched.
type Update struct {
	Title       *string
	Description *string
	Importance  *int
	Urgency     *int
	DueDate     *string
	Tags        *[]string
}

// Repository owns the task collection and tag registry for one session.
// Calls are serialized; nothing is cached between calls.
type Repository struct {
	mu      sync.Mutex
	backend store.Backend
	newID   func() string
}

func NewRepository(b store.Backend) *Repository {
	return &Repository{backend: b, newID: uuid.NewString}
}

// Backend exposes the underlying store (used for Close by owners).
func (r *Repository) Backend() store.Backend { return r.backend }

func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(ctx)
}

func (r *Repository) snapshot(ctx context.Context) ([]model.Task, error) {
	ts, err := r.backend.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return ts, nil
}

func (r *Repository) GetTask(ctx context.Context, id string) (model.Task, bool, error) {
	id = strings.TrimSpace(id)
	ts, err := r.ListTasks(ctx)
	if err != nil {
		return model.Task{}, false, err
	}
	for _, t := range ts {
		if t.ID == id {
			return t, true, nil
		}
	}
	return model.Task{}, false, nil
}

func (r *Repository) AddTask(ctx context.Context, in NewTask) (model.Task, error) {
	t := model.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Importance:  in.Importance,
		Urgency:     in.Urgency,
		DueDate:     strings.TrimSpace(in.DueDate),
		Tags:        model.NormalizeTags(in.Tags),
		Status:      model.StatusPending,
	}
	if err := validate(t); err != nil {
		return model.Task{}, err
	}
	t.Quadrant = model.Classify(t.Importance, t.Urgency)

	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.newID()
	if err := r.backend.InsertTask(ctx, t); err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// UpdateTask applies the non-nil fields of u. It returns false when id is unknown.
func (r *Repository) UpdateTask(ctx context.Context, id string, u Update) (bool, error) {
	id = strings.TrimSpace(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok, err := r.find(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Importance != nil {
		t.Importance = *u.Importance
	}
	if u.Urgency != nil {
		t.Urgency = *u.Urgency
	}
	if u.DueDate != nil {
		t.DueDate = strings.TrimSpace(*u.DueDate)
	}
	if u.Tags != nil {
		t.Tags = model.NormalizeTags(*u.Tags)
	}
	if err := validate(t); err != nil {
		return false, err
	}
	// Every write re-derives the quadrant, whichever fields changed.
	t.Quadrant = model.Classify(t.Importance, t.Urgency)
	if err := r.write(ctx, t); err != nil {
		return false, err
	}
	return true, nil
}

// MarkDone moves a pending task to done. It reports whether anything changed;
// unknown ids and finished tasks are a no-op.
func (r *Repository) MarkDone(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok, err := r.find(ctx, id)
	if err != nil || !ok || t.IsDone() {
		return false, err
	}
	t.Status = model.StatusDone
	if err := r.write(ctx, t); err != nil {
		return false, err
	}
	return true, nil
}

// Reset removes every task. The tag registry is left alone.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.ClearTasks(ctx); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	return nil
}

func (r *Repository) find(ctx context.Context, id string) (model.Task, bool, error) {
	if id == "" {
		return model.Task{}, false, nil
	}
	ts, err := r.snapshot(ctx)
	if err != nil {
		return model.Task{}, false, err
	}
	for _, t := range ts {
		if t.ID == id {
			return t, true, nil
		}
	}
	return model.Task{}, false, nil
}

func (r *Repository) write(ctx context.Context, t model.Task) error {
	if err := r.backend.UpdateTask(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Removed underneath us (e.g. reset from another session).
			return NotFoundError{Kind: "task", ID: t.ID}
		}
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return nil
}

func validate(t model.Task) error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if !model.ScoreInRange(t.Importance) {
		return ValidationError{Field: "importance", Reason: fmt.Sprintf("%d is outside [%d, %d]", t.Importance, model.MinScore, model.MaxScore)}
	}
	if !model.ScoreInRange(t.Urgency) {
		return ValidationError{Field: "urgency", Reason: fmt.Sprintf("%d is outside [%d, %d]", t.Urgency, model.MinScore, model.MaxScore)}
	}
	if t.DueDate != "" {
		if _, err := time.Parse(time.DateOnly, t.DueDate); err != nil {
			return ValidationError{Field: "due date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", t.DueDate)}
		}
	}
	return nil
}
