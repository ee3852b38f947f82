package tui

import (
	"fmt"
	"io"
	"strings"

	"eisen/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type taskItem struct {
	task model.Task
	// rank is the 1-based Ivy Lee position; zero elsewhere.
	rank int
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) FilterValue() string { return i.task.Title }

func (i taskItem) Description() string {
	parts := []string{fmt.Sprintf("imp %+d", i.task.Importance), fmt.Sprintf("urg %+d", i.task.Urgency)}
	if i.task.DueDate != "" {
		parts = append(parts, "due "+i.task.DueDate)
	}
	if len(i.task.Tags) > 0 {
		parts = append(parts, model.JoinTags(i.task.Tags))
	}
	return strings.Join(parts, " · ")
}

type tagItem string

func (i tagItem) Title() string       { return string(i) }
func (i tagItem) FilterValue() string { return string(i) }

// groupHeader starts a tag's section on the Groups tab. A task tagged
// with several names is listed under each.
type groupHeader struct {
	tag   string
	count int
}

func (h groupHeader) FilterValue() string { return h.tag }

// rowDelegate draws one line per item: an optional badge on the left, the
// title, and metadata right-aligned when there is room.
type rowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal:   lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true),
	}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	width := m.Width()
	if width < 4 {
		return
	}
	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	var left, right string
	switch it := item.(type) {
	case taskItem:
		badge := styleQuadrant(it.task.Quadrant).Render(quadrantBadge(it.task.Quadrant))
		if it.rank > 0 {
			badge = fmt.Sprintf("%d.", it.rank) + " " + badge
		}
		title := it.task.Title
		if it.task.IsDone() {
			title = "✓ " + title
		}
		left = badge + " " + title
		right = it.Description()
	case tagItem:
		left = "# " + string(it)
	case groupHeader:
		left = styleTab(true).Render(it.tag)
		right = fmt.Sprintf("%d pending", it.count)
	default:
		left = fmt.Sprint(item)
	}

	fmt.Fprint(w, style.Render(fitRow(left, right, width)))
}

func quadrantBadge(q model.Quadrant) string {
	switch q {
	case model.QuadrantDoFirst:
		return "[DO]"
	case model.QuadrantSchedule:
		return "[SC]"
	case model.QuadrantDelegate:
		return "[DL]"
	default:
		return "[EL]"
	}
}

// fitRow pads or cuts left+right to exactly width cells. The right part is
// dropped first when space runs out.
func fitRow(left, right string, width int) string {
	leftW := xansi.StringWidth(left)
	rightW := xansi.StringWidth(right)
	if right != "" && leftW+2+rightW <= width {
		return left + strings.Repeat(" ", width-leftW-rightW) + right
	}
	if leftW > width {
		return xansi.Truncate(left, width, "…")
	}
	return left + strings.Repeat(" ", width-leftW)
}
