package tui

import (
	"context"
	"strings"
	"testing"

	"eisen/internal/model"
	"eisen/internal/store"
	"eisen/internal/tasks"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) (appModel, *tasks.Repository) {
	t.Helper()
	repo := tasks.NewRepository(store.NewMemory())
	return newAppModel(context.Background(), repo), repo
}

// load runs the initial load command and feeds the result back in.
func load(t *testing.T, m appModel) appModel {
	t.Helper()
	msg := m.loadCmd()()
	next, _ := m.Update(msg)
	return next.(appModel)
}

func press(m appModel, k string) (appModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(appModel), cmd
}

// runMutation executes a mutation command and the reload it triggers.
func runMutation(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	next, reload := m.Update(cmd())
	m = next.(appModel)
	if reload != nil {
		next, _ = m.Update(reload())
		m = next.(appModel)
	}
	return m
}

func mustAdd(t *testing.T, repo *tasks.Repository, title string, imp, urg int) model.Task {
	t.Helper()
	task, err := repo.AddTask(context.Background(), tasks.NewTask{Title: title, Importance: imp, Urgency: urg})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	return task
}

func TestLoad_FillsEveryTab(t *testing.T) {
	m, repo := newTestModel(t)
	mustAdd(t, repo, "File taxes", 5, 4)
	mustAdd(t, repo, "Tidy desk", -1, -2)
	if err := repo.AddTag(context.Background(), "home"); err != nil {
		t.Fatal(err)
	}

	m = load(t, m)
	if got := len(m.lists[tabMatrix].Items()); got != 2 {
		t.Fatalf("matrix items: got %d", got)
	}
	if got := len(m.lists[tabUrgent].Items()); got != 1 {
		t.Fatalf("urgent items: got %d", got)
	}
	if got := len(m.lists[tabIvyLee].Items()); got != 2 {
		t.Fatalf("ivy lee items: got %d", got)
	}
	if got := len(m.lists[tabTags].Items()); got != 1 {
		t.Fatalf("tag items: got %d", got)
	}
	if got := len(m.lists[tabGroups].Items()); got != 0 {
		t.Fatalf("group items: got %d", got)
	}
	if m.counts[model.QuadrantDoFirst] != 1 || m.counts[model.QuadrantEliminate] != 1 {
		t.Fatalf("counts: %v", m.counts)
	}
	first := m.lists[tabIvyLee].Items()[0].(taskItem)
	if first.task.Title != "File taxes" || first.rank != 1 {
		t.Fatalf("ivy lee first: %+v", first)
	}
}

func TestTabs_Cycle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, "tab")
	if m.tab != tabUrgent {
		t.Fatalf("tab: got %v", m.tab)
	}
	m, _ = press(m, "shift+tab")
	m, _ = press(m, "shift+tab")
	if m.tab != tabTags {
		t.Fatalf("wrap around: got %v", m.tab)
	}
}

func TestDone_MarksSelectedTask(t *testing.T) {
	m, repo := newTestModel(t)
	task := mustAdd(t, repo, "Call plumber", 2, 3)
	m = load(t, m)

	m, cmd := press(m, "d")
	m = runMutation(t, m, cmd)

	got, _, err := repo.GetTask(context.Background(), task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusDone {
		t.Fatalf("status: got %q", got.Status)
	}
	if !strings.Contains(m.status, "Call plumber") {
		t.Fatalf("status line: %q", m.status)
	}
	if len(m.lists[tabMatrix].Items()) != 0 {
		t.Fatalf("done task should leave the matrix")
	}
}

func TestAddTask_Prompts(t *testing.T) {
	m, repo := newTestModel(t)
	m = load(t, m)

	m, _ = press(m, "a")
	if m.mode != modeAddTask {
		t.Fatalf("mode: got %v", m.mode)
	}
	answers := []string{"Book dentist", "3", "4", "2026-12-01", "health, admin"}
	var cmd tea.Cmd
	for _, a := range answers {
		m, _ = press(m, a)
		m, cmd = press(m, "enter")
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected prompt to close, mode %v", m.mode)
	}
	m = runMutation(t, m, cmd)

	all, err := repo.ListTasks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one task, got %d", len(all))
	}
	got := all[0]
	if got.Title != "Book dentist" || got.Quadrant != model.QuadrantDoFirst || got.DueDate != "2026-12-01" {
		t.Fatalf("unexpected task: %+v", got)
	}
	if strings.Join(got.Tags, "|") != "health|admin" {
		t.Fatalf("tags: %v", got.Tags)
	}
	if len(m.lists[tabMatrix].Items()) != 1 {
		t.Fatalf("expected reload after add")
	}
}

func TestAddTask_RejectsBadScoreAndEmptyTitle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, "a")

	m, cmd := press(m, "enter")
	if cmd != nil || m.err == nil || m.step != 0 {
		t.Fatalf("empty title should stay on step 0 with an error")
	}

	m, _ = press(m, "Walk dog")
	m, _ = press(m, "enter")
	m, _ = press(m, "lots")
	m, _ = press(m, "enter")
	if m.step != 1 || m.err == nil {
		t.Fatalf("non-numeric importance should be rejected (step %d, err %v)", m.step, m.err)
	}

	m, _ = press(m, "esc")
	if m.mode != modeBrowse || m.status != "cancelled" {
		t.Fatalf("esc should cancel: mode %v status %q", m.mode, m.status)
	}
}

func TestAddTask_ValidationErrorFromRepository(t *testing.T) {
	m, repo := newTestModel(t)
	m, _ = press(m, "a")
	for _, a := range []string{"Too much", "9", "", "", ""} {
		if a != "" {
			m, _ = press(m, a)
		}
		var cmd tea.Cmd
		m, cmd = press(m, "enter")
		if cmd != nil {
			next, _ := m.Update(cmd())
			m = next.(appModel)
		}
	}
	if m.err == nil {
		t.Fatalf("expected out-of-range importance to surface an error")
	}
	all, _ := repo.ListTasks(context.Background())
	if len(all) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestTags_AddAndRemove(t *testing.T) {
	m, repo := newTestModel(t)
	m = load(t, m)
	m.tab = tabTags

	m, _ = press(m, "a")
	if m.mode != modeAddTag {
		t.Fatalf("mode: got %v", m.mode)
	}
	m, _ = press(m, "errands")
	m, cmd := press(m, "enter")
	m = runMutation(t, m, cmd)
	if tags, _ := repo.ListTags(context.Background()); len(tags) != 1 || tags[0] != "errands" {
		t.Fatalf("tags after add: %v", tags)
	}

	m, cmd = press(m, "x")
	m = runMutation(t, m, cmd)
	if tags, _ := repo.ListTags(context.Background()); len(tags) != 0 {
		t.Fatalf("tags after remove: %v", tags)
	}
	if len(m.lists[tabTags].Items()) != 0 {
		t.Fatalf("tag list not reloaded")
	}
}

func TestGroupsTab_ListsTasksUnderEachTag(t *testing.T) {
	m, repo := newTestModel(t)
	ctx := context.Background()
	for _, name := range []string{"home", "money", "unused"} {
		if err := repo.AddTag(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := repo.AddTask(ctx, tasks.NewTask{Title: "Pay rent", Importance: 4, Urgency: 5, Tags: []string{"home", "money"}}); err != nil {
		t.Fatal(err)
	}
	chore := mustAdd(t, repo, "Sweep floor", 1, 1)
	if _, err := repo.UpdateTask(ctx, chore.ID, tasks.Update{Tags: &[]string{"home"}}); err != nil {
		t.Fatal(err)
	}

	m = load(t, m)
	m.tab = tabGroups
	var rows []string
	for _, it := range m.lists[tabGroups].Items() {
		switch v := it.(type) {
		case groupHeader:
			rows = append(rows, "#"+v.tag)
		case taskItem:
			rows = append(rows, v.task.Title)
		}
	}
	want := "#home|Pay rent|Sweep floor|#money|Pay rent"
	if got := strings.Join(rows, "|"); got != want {
		t.Fatalf("groups tab rows:\n got %s\nwant %s", got, want)
	}

	// The cursor starts on a header, which is not a task.
	if _, cmd := press(m, "d"); cmd != nil {
		t.Fatalf("done on a group header should do nothing")
	}
	m.lists[tabGroups].Select(2)
	m, cmd := press(m, "d")
	m = runMutation(t, m, cmd)
	got, _, err := repo.GetTask(ctx, chore.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusDone {
		t.Fatalf("selected task under a group should be marked done, status %q", got.Status)
	}
	if n := len(m.lists[tabGroups].Items()); n != 4 {
		t.Fatalf("done task should leave its group, %d rows left", n)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestView_ShowsTabsAndEmptyState(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m)
	out := m.View()
	for _, want := range []string{"Matrix", "Urgent", "Ivy Lee", "Groups", "Tags", "No pending tasks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestFitRow(t *testing.T) {
	if got := fitRow("abc", "xy", 10); got != "abc     xy" {
		t.Fatalf("got %q", got)
	}
	if got := fitRow("abcdef", "xyz", 8); got != "abcdef  " {
		t.Fatalf("right part should drop: %q", got)
	}
	if got := fitRow("abcdefghij", "", 5); got != "abcd…" {
		t.Fatalf("truncate: %q", got)
	}
}
