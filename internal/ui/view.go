package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklane/internal/todo"
)

// Row layout: "> [x] text  ×"
const (
	checkboxCol   = 2
	checkboxWidth = 3
	textCol       = checkboxCol + checkboxWidth + 1
	removeMark    = "×"
	removeGap     = 2
)

// removeCol is the column of the remove mark on t's row.
func removeCol(t todo.Task) int {
	return textCol + lipgloss.Width(rowText(t)) + removeGap
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	m.writeList(&b)
	b.WriteString("\n")
	m.writeFooter(&b)

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString("\n")
		writeHelp(&b)
	}
	return b.String()
}

func (m *tuiModel) header() string {
	title := m.styles.Title.Render(fmt.Sprintf("T O D O  %s", m.app.Theme().Icon()))
	return title + "\n" + m.input.View() + "\n"
}

// listTop is the terminal row of the first task.
func (m *tuiModel) listTop() int {
	return strings.Count(m.header()+"\n", "\n")
}

func (m *tuiModel) writeList(b *strings.Builder) {
	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(m.styles.Footer.Render("  No tasks."))
		b.WriteString("\n")
		return
	}
	dragged, dragging := m.drag.DraggedID()
	for i, t := range rows {
		b.WriteString(m.renderRow(t, i == m.cursor && m.focus == focusList, dragging && t.ID == dragged))
		b.WriteString("\n")
	}
}

func (m *tuiModel) renderRow(t todo.Task, selected, dragged bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	line := cursor + check + " " + rowText(t) + strings.Repeat(" ", removeGap) + removeMark

	switch {
	case dragged:
		return m.styles.Dragged.Render(line)
	case selected:
		return m.styles.Selected.Render(line)
	case t.Completed:
		return m.styles.Completed.Render(line)
	default:
		return m.styles.Item.Render(line)
	}
}

func rowText(t todo.Task) string {
	text := strings.ReplaceAll(t.Text, "\n", " ")
	return strings.ReplaceAll(text, "\r", " ")
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	current := m.app.Selector().Current()
	tabs := make([]string, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		if f == current {
			tabs = append(tabs, m.styles.ActiveTab.Render(f.Label()))
			continue
		}
		tabs = append(tabs, m.styles.Tab.Render(f.Label()))
	}
	b.WriteString(m.styles.Footer.Render(todo.ItemsLabel(m.left)))
	b.WriteString("   ")
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("   ")
	b.WriteString(m.styles.Footer.Render("Clear Completed (c)"))
	b.WriteString("\n")
	if !m.showHelp {
		b.WriteString(m.styles.Footer.Render("Press ? for help | tab to switch focus | q to quit"))
		b.WriteString("\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  enter        Add the typed task\n")
	b.WriteString("  tab, esc     Switch between input and list\n")
	b.WriteString("  up/k down/j  Move the cursor\n")
	b.WriteString("  space, x     Toggle completed\n")
	b.WriteString("  d, delete    Remove task\n")
	b.WriteString("  K, J         Move task up or down\n")
	b.WriteString("  c            Clear completed\n")
	b.WriteString("  1, 2, 3      Show all, active, completed\n")
	b.WriteString("  f            Cycle filters\n")
	b.WriteString("  t            Toggle theme\n")
	b.WriteString("  ?            Toggle this help\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
	b.WriteString("Mouse\n\n")
	b.WriteString("  click [ ]    Toggle completed\n")
	b.WriteString("  click " + removeMark + "      Remove task\n")
	b.WriteString("  drag row     Reorder\n")
}
