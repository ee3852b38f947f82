package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ListTags returns the registered tag names, sorted and without repeats.
func (r *Repository) ListTags(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tagSnapshot(ctx)
}

func (r *Repository) tagSnapshot(ctx context.Context) ([]string, error) {
	raw, err := r.backend.LoadTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	seen := make(map[string]bool, len(raw))
	out := []string{}
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// AddTag registers name. Blank names return ErrBlankTag and exact repeats
// return ErrDuplicateTag; neither touches storage.
func (r *Repository) AddTag(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankTag
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.tagSnapshot(ctx)
	if err != nil {
		return err
	}
	for _, t := range existing {
		if t == name {
			return ErrDuplicateTag
		}
	}
	if err := r.backend.AppendTag(ctx, name); err != nil {
		return fmt.Errorf("add tag %q: %w", name, err)
	}
	return nil
}

// DeleteTag removes the first registry entry equal to name. Tasks keep the
// tag in their own tag lists.
func (r *Repository) DeleteTag(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	ok, err := r.backend.DeleteTag(ctx, name)
	if err != nil {
		return fmt.Errorf("delete tag %q: %w", name, err)
	}
	if !ok {
		return NotFoundError{Kind: "tag", ID: name}
	}
	return nil
}
