package tui

import (
	"fmt"
	"strings"

	"eisen/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	var b strings.Builder

	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		tabs = append(tabs, styleTab(tab(i) == m.tab).Render(name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	if m.tab == tabMatrix {
		parts := make([]string, 0, 4)
		for _, q := range model.Quadrants() {
			parts = append(parts, styleQuadrant(q).Render(fmt.Sprintf("%s %d", q, m.counts[q])))
		}
		b.WriteString(strings.Join(parts, styleMuted().Render(" · ")))
	}
	b.WriteString("\n")

	switch m.mode {
	case modeAddTask:
		step := addTaskSteps[m.step]
		b.WriteString(fmt.Sprintf("New task (%d/%d) %s: ", m.step+1, len(addTaskSteps), step.label))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeAddTag:
		b.WriteString("New tag: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	body := m.lists[m.tab].View()
	if len(m.lists[m.tab].Items()) == 0 {
		body = styleMuted().Render(emptyMessage(m.tab))
	}
	if m.detail {
		if t, ok := m.selectedTask(); ok {
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.detailView(t))
		}
	}
	b.WriteString(body)
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render("error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(styleMuted().Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func emptyMessage(t tab) string {
	switch t {
	case tabUrgent:
		return "No urgent tasks for today."
	case tabGroups:
		return "No pending tasks carry a registered tag."
	case tabTags:
		return "No tags yet. Press a to add one."
	default:
		return "No pending tasks. Press a to add one."
	}
}

func (m appModel) detailView(t model.Task) string {
	var b strings.Builder
	b.WriteString(styleQuadrant(t.Quadrant).Render(t.Title))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf("%s · %s · id %s", t.Quadrant, t.Status, t.ID)))
	if desc := renderMarkdown(t.Description, m.width-4); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
	}
	return b.String()
}

func (m appModel) helpLine() string {
	if m.mode != modeBrowse {
		return styleMuted().Render("enter next · esc cancel")
	}
	parts := []string{}
	for _, k := range keys.help(m.tab) {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleMuted().Render(strings.Join(parts, " · "))
}
