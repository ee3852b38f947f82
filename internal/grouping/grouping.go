// Package grouping clusters pending tasks whose titles mean similar things,
// using text embeddings from an external provider.
package grouping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eisen/internal/model"
)

// ErrUnavailable means no embedding provider is configured.
var ErrUnavailable = errors.New("similarity grouping unavailable: no API key configured")

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Grouper struct {
	embedder  Embedder
	threshold float64
	log       *slog.Logger
}

// NewGrouper returns a Grouper. A nil embedder yields ErrUnavailable on use.
func NewGrouper(e Embedder, threshold float64, log *slog.Logger) *Grouper {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = slog.Default()
	}
	return &Grouper{embedder: e, threshold: threshold, log: log}
}

// Available reports whether Group can do anything.
func (g *Grouper) Available() bool {
	if g == nil || g.embedder == nil {
		return false
	}
	if c, ok := g.embedder.(*GeminiClient); ok && c.apiKey == "" {
		return false
	}
	return true
}

// Group embeds the titles of the pending tasks and returns the similarity
// groups, each with at least two tasks.
func (g *Grouper) Group(ctx context.Context, tasks []model.Task) ([][]model.Task, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}
	var open []model.Task
	for _, t := range tasks {
		if !t.IsDone() {
			open = append(open, t)
		}
	}
	if len(open) < 2 {
		return [][]model.Task{}, nil
	}
	titles := make([]string, len(open))
	for i, t := range open {
		titles[i] = t.Title
	}
	vecs, err := g.embedder.Embed(ctx, titles)
	if err != nil {
		g.log.Warn("embedding request failed", "tasks", len(titles), "err", err)
		return nil, fmt.Errorf("embed titles: %w", err)
	}
	if len(vecs) != len(open) {
		return nil, fmt.Errorf("embed titles: expected %d vectors, got %d", len(open), len(vecs))
	}

	out := [][]model.Task{}
	for _, idx := range Cluster(vecs, g.threshold) {
		group := make([]model.Task, len(idx))
		for i, j := range idx {
			group[i] = open[j]
		}
		out = append(out, group)
	}
	g.log.Debug("grouped tasks", "tasks", len(open), "groups", len(out))
	return out, nil
}
