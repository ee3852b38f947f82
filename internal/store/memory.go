package store

import (
	"context"
	"sync"

	"eisen/internal/model"
)

// Memory is a process-local Backend.
type Memory struct {
	mu    sync.Mutex
	tasks []model.Task
	tags  []string
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) LoadTasks(ctx context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Task, len(m.tasks))
	for i, t := range m.tasks {
		out[i] = cloneTask(t)
	}
	return out, nil
}

func (m *Memory) InsertTask(ctx context.Context, t model.Task) error {
	m.mu.Lock()
	m.tasks = append(m.tasks, cloneTask(t))
	m.mu.Unlock()
	return nil
}

func (m *Memory) UpdateTask(ctx context.Context, t model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == t.ID {
			m.tasks[i] = cloneTask(t)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ClearTasks(ctx context.Context) error {
	m.mu.Lock()
	m.tasks = nil
	m.mu.Unlock()
	return nil
}

func (m *Memory) LoadTags(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tags...), nil
}

func (m *Memory) AppendTag(ctx context.Context, name string) error {
	m.mu.Lock()
	m.tags = append(m.tags, name)
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeleteTag(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tags {
		if t == name {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Close() error { return nil }

func cloneTask(t model.Task) model.Task {
	t.Tags = append([]string(nil), t.Tags...)
	return t
}
