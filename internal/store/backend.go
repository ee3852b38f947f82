package store

import (
	"context"
	"errors"

	"eisen/internal/model"
)

// ErrNotFound is returned by UpdateTask when no row carries the task id.
var ErrNotFound = errors.New("not found")

// Backend is a row-addressable store for tasks and the tag registry.
//
// Writes touch a single record; callers never rewrite the whole table to
// change one task.
type Backend interface {
	// LoadTasks returns every task in storage order.
	LoadTasks(ctx context.Context) ([]model.Task, error)
	InsertTask(ctx context.Context, t model.Task) error
	// UpdateTask overwrites the stored record with the same id.
	UpdateTask(ctx context.Context, t model.Task) error
	// ClearTasks drops all task rows but keeps the schema.
	ClearTasks(ctx context.Context) error

	// LoadTags returns tag names in storage order (duplicates included).
	LoadTags(ctx context.Context) ([]string, error)
	AppendTag(ctx context.Context, name string) error
	// DeleteTag removes the first exact match and reports whether one existed.
	DeleteTag(ctx context.Context, name string) (bool, error)

	Close() error
}
