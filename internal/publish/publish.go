// Package publish writes the task list as a small tree of Markdown files:
// an index.md with the matrix and one page per task.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"eisen/internal/model"
)

type WriteOptions struct {
	IncludeDone bool
	Overwrite   bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

func WriteMatrix(ts []model.Task, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	tasksDir := filepath.Join(toDir, "tasks")
	if err := os.MkdirAll(tasksDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	index := RenderMatrixIndexMarkdown(ts, RenderOptions{IncludeDone: opt.IncludeDone})
	if err := writeFile(indexPath, []byte(index), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Stop on the first failed page.
	written := []string{indexPath}
	for _, t := range ts {
		if t.IsDone() && !opt.IncludeDone {
			continue
		}
		p := filepath.Join(tasksDir, t.ID+".md")
		if err := writeFile(p, []byte(RenderTaskMarkdown(t)), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

// ErrExists is returned when a target file exists and Overwrite is off.
var ErrExists = errors.New("file exists (use --overwrite)")

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Join(ErrExists, errors.New(path))
		}
	}
	return os.WriteFile(path, b, 0o644)
}
