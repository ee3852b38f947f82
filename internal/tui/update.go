package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		cmd := m.applyLoaded(msg)
		return m, cmd

	case mutatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updatePrompt(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
	return m, cmd
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endPrompt()
		m.status = "cancelled"
		m.err = nil
		return m, nil
	case tea.KeyEnter:
		cmd := m.submitStep()
		return m, cmd
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.detail = false
		return m, nil
	case key.Matches(msg, keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.detail = false
		return m, nil
	case key.Matches(msg, keys.Reload):
		m.status = "reloaded"
		return m, m.loadCmd()
	case key.Matches(msg, keys.Add):
		md := modeAddTask
		if m.tab == tabTags {
			md = modeAddTag
		}
		cmd := m.startPrompt(md)
		return m, cmd
	case key.Matches(msg, keys.Done):
		if t, ok := m.selectedTask(); ok {
			return m, m.markDoneCmd(t)
		}
		return m, nil
	case key.Matches(msg, keys.Remove):
		if name, ok := m.selectedTag(); ok {
			return m, m.deleteTagCmd(name)
		}
		return m, nil
	case key.Matches(msg, keys.Detail):
		if _, ok := m.selectedTask(); ok {
			m.detail = !m.detail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
	return m, cmd
}
