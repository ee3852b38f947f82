package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"eisen/internal/model"
	"eisen/internal/tasks"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tab int

const (
	tabMatrix tab = iota
	tabUrgent
	tabIvyLee
	tabGroups
	tabTags
	tabCount
)

var tabNames = [tabCount]string{"Matrix", "Urgent", "Ivy Lee", "Groups", "Tags"}

type mode int

const (
	modeBrowse mode = iota
	modeAddTask
	modeAddTag
)

type addStep struct {
	label       string
	placeholder string
	numeric     bool
}

var addTaskSteps = []addStep{
	{label: "Title", placeholder: "What needs doing?"},
	{label: "Importance", placeholder: "-5..5 (default 0)", numeric: true},
	{label: "Urgency", placeholder: "-5..5 (default 0)", numeric: true},
	{label: "Due date", placeholder: "YYYY-MM-DD (optional)"},
	{label: "Tags", placeholder: "comma separated (optional)"},
}

type loadedMsg struct {
	matrix []tasks.QuadrantBucket
	urgent []model.Task
	top    []model.Task
	groups []tasks.TagGroup
	tags   []string
	err    error
}

type mutatedMsg struct {
	status string
	err    error
}

type appModel struct {
	ctx  context.Context
	repo *tasks.Repository

	width  int
	height int

	tab    tab
	lists  [tabCount]list.Model
	counts map[model.Quadrant]int

	mode  mode
	step  int
	draft []string
	input textinput.Model

	detail bool
	status string
	err    error
}

func newList() list.Model {
	l := list.New([]list.Item{}, newRowDelegate(), 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	return l
}

func newAppModel(ctx context.Context, repo *tasks.Repository) appModel {
	m := appModel{
		ctx:    ctx,
		repo:   repo,
		width:  80,
		height: 24,
		counts: map[model.Quadrant]int{},
	}
	for i := range m.lists {
		m.lists[i] = newList()
	}
	m.input = textinput.New()
	m.input.CharLimit = 200
	m.input.Width = 50
	return m
}

func (m appModel) Init() tea.Cmd { return m.loadCmd() }

func (m appModel) loadCmd() tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		var msg loadedMsg
		if msg.matrix, msg.err = repo.ByQuadrant(ctx); msg.err != nil {
			return msg
		}
		if msg.urgent, msg.err = repo.UrgentTasks(ctx); msg.err != nil {
			return msg
		}
		if msg.top, msg.err = repo.TopNPending(ctx, tasks.DefaultTopN); msg.err != nil {
			return msg
		}
		if msg.groups, msg.err = repo.GroupByTag(ctx); msg.err != nil {
			return msg
		}
		msg.tags, msg.err = repo.ListTags(ctx)
		return msg
	}
}

func (m appModel) markDoneCmd(t model.Task) tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		changed, err := repo.MarkDone(ctx, t.ID)
		if err != nil {
			return mutatedMsg{err: err}
		}
		if !changed {
			return mutatedMsg{status: "already done: " + t.Title}
		}
		return mutatedMsg{status: "done: " + t.Title}
	}
}

func (m appModel) addTaskCmd(in tasks.NewTask) tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		t, err := repo.AddTask(ctx, in)
		if err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: fmt.Sprintf("added %q to %s", t.Title, t.Quadrant)}
	}
}

func (m appModel) addTagCmd(name string) tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		if err := repo.AddTag(ctx, name); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: "tag added: " + strings.TrimSpace(name)}
	}
}

func (m appModel) deleteTagCmd(name string) tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		if err := repo.DeleteTag(ctx, name); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: "tag removed: " + name}
	}
}

func (m *appModel) applyLoaded(msg loadedMsg) tea.Cmd {
	var cmds []tea.Cmd

	var matrix []list.Item
	for q := range m.counts {
		delete(m.counts, q)
	}
	for _, b := range msg.matrix {
		m.counts[b.Quadrant] = len(b.Tasks)
		for _, t := range b.Tasks {
			matrix = append(matrix, taskItem{task: t})
		}
	}
	cmds = append(cmds, m.lists[tabMatrix].SetItems(matrix))

	urgent := make([]list.Item, 0, len(msg.urgent))
	for _, t := range msg.urgent {
		urgent = append(urgent, taskItem{task: t})
	}
	cmds = append(cmds, m.lists[tabUrgent].SetItems(urgent))

	top := make([]list.Item, 0, len(msg.top))
	for i, t := range msg.top {
		top = append(top, taskItem{task: t, rank: i + 1})
	}
	cmds = append(cmds, m.lists[tabIvyLee].SetItems(top))

	var groups []list.Item
	for _, g := range msg.groups {
		groups = append(groups, groupHeader{tag: g.Tag, count: len(g.Tasks)})
		for _, t := range g.Tasks {
			groups = append(groups, taskItem{task: t})
		}
	}
	cmds = append(cmds, m.lists[tabGroups].SetItems(groups))

	tags := make([]list.Item, 0, len(msg.tags))
	for _, name := range msg.tags {
		tags = append(tags, tagItem(name))
	}
	cmds = append(cmds, m.lists[tabTags].SetItems(tags))

	return tea.Batch(cmds...)
}

func (m appModel) selectedTask() (model.Task, bool) {
	it, ok := m.lists[m.tab].SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m appModel) selectedTag() (string, bool) {
	it, ok := m.lists[m.tab].SelectedItem().(tagItem)
	return string(it), ok
}

func (m *appModel) startPrompt(md mode) tea.Cmd {
	m.mode = md
	m.step = 0
	m.draft = nil
	m.err = nil
	m.input.Reset()
	if md == modeAddTag {
		m.input.Placeholder = "tag name"
	} else {
		m.input.Placeholder = addTaskSteps[0].placeholder
	}
	return m.input.Focus()
}

func (m *appModel) endPrompt() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
}

// submitStep stores the current answer and either moves to the next
// question or returns the command that creates the task.
func (m *appModel) submitStep() tea.Cmd {
	val := strings.TrimSpace(m.input.Value())

	if m.mode == modeAddTag {
		m.endPrompt()
		return m.addTagCmd(val)
	}

	step := addTaskSteps[m.step]
	if step.numeric && val != "" {
		if _, err := strconv.Atoi(val); err != nil {
			m.err = tasks.ValidationError{Field: strings.ToLower(step.label), Reason: "must be a whole number"}
			return nil
		}
	}
	if m.step == 0 && val == "" {
		m.err = tasks.ErrEmptyTitle
		return nil
	}
	m.err = nil
	m.draft = append(m.draft, val)
	m.step++
	if m.step < len(addTaskSteps) {
		m.input.Reset()
		m.input.Placeholder = addTaskSteps[m.step].placeholder
		return nil
	}

	imp, _ := strconv.Atoi(m.draft[1])
	urg, _ := strconv.Atoi(m.draft[2])
	in := tasks.NewTask{
		Title:      m.draft[0],
		Importance: imp,
		Urgency:    urg,
		DueDate:    m.draft[3],
		Tags:       model.SplitTags(m.draft[4]),
	}
	m.endPrompt()
	return m.addTaskCmd(in)
}

func (m *appModel) resizeLists() {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	for i := range m.lists {
		m.lists[i].SetSize(m.width, h)
	}
}
