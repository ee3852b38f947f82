// Package tui is the interactive terminal front end: tabs for the matrix,
// today's urgent tasks, the Ivy Lee list and the tag registry.
package tui

import (
	"context"

	"eisen/internal/tasks"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(ctx context.Context, repo *tasks.Repository) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(ctx, repo)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
