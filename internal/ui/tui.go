// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklane/internal/app"
	"github.com/nibzard/tasklane/internal/reorder"
	"github.com/nibzard/tasklane/internal/theme"
	"github.com/nibzard/tasklane/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	mouse bool
}

// WithMouse enables click and drag handling.
func WithMouse(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.mouse = enabled
	}
}

// RunTUI runs the task list UI until the user quits or ctx is done.
func RunTUI(ctx context.Context, a *app.App, opts ...TUIOption) error {
	c := &tuiConfig{mouse: true}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(newTUIModel(a), programOpts...)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type tuiModel struct {
	app      *app.App
	input    textinput.Model
	drag     *reorder.Controller
	styles   theme.Styles
	tasks    []todo.Task
	left     int
	focus    focusArea
	cursor   int
	width    int
	showHelp bool
	err      error
}

func newTUIModel(a *app.App) *tuiModel {
	ti := textinput.New()
	ti.Placeholder = "Create a new todo..."
	ti.Prompt = "( ) "
	ti.CharLimit = 0
	ti.Width = 40
	ti.Focus()

	m := &tuiModel{
		app:    a,
		input:  ti,
		drag:   reorder.New(a.Store()),
		styles: theme.StylesFor(a.Theme()),
		tasks:  a.Store().Tasks(),
		left:   a.Store().ItemsLeft(),
	}
	a.Store().Subscribe(func(tasks []todo.Task, itemsLeft int) {
		m.tasks = tasks
		m.left = itemsLeft
		m.clampCursor()
	})
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "esc":
		if m.drag.Dragging() {
			m.drag.Cancel()
			return m, nil
		}
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusInput {
		if msg.Type == tea.KeyEnter {
			m.addFromInput()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case " ", "space", "x":
		if t, ok := m.selected(); ok {
			_, err := m.app.Store().Toggle(t.ID)
			m.setErr(err)
		}
	case "d", "delete":
		if t, ok := m.selected(); ok {
			_, err := m.app.Store().Remove(t.ID)
			m.setErr(err)
		}
	case "c":
		_, err := m.app.Store().ClearCompleted()
		m.setErr(err)
	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterActive)
	case "3":
		m.setFilter(todo.FilterCompleted)
	case "f":
		m.app.Selector().Next()
		m.clampCursor()
	case "t":
		_, err := m.app.ToggleTheme()
		m.styles = theme.StylesFor(m.app.Theme())
		m.setErr(err)
	case "K":
		m.moveSelected(-1)
	case "J":
		m.moveSelected(1)
	case "?":
		m.showHelp = !m.showHelp
	case "i", "a":
		m.toggleFocus()
	}
	return m, nil
}

func (m *tuiModel) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		m.clampCursor()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *tuiModel) addFromInput() {
	task, err := m.app.Store().Add(m.input.Value())
	m.setErr(err)
	if task != nil || err != nil {
		m.input.Reset()
	}
}

func (m *tuiModel) setFilter(f todo.Filter) {
	m.app.Selector().Set(f)
	m.clampCursor()
}

// moveSelected shifts the selected task by delta within the visible rows.
func (m *tuiModel) moveSelected(delta int) {
	t, ok := m.selected()
	if !ok {
		return
	}
	ids := todo.IDs(m.visible())
	target := m.cursor + delta
	if target < 0 || target >= len(ids) {
		return
	}
	changed, err := m.app.Store().SetOrder(todo.MoveTo(ids, t.ID, target))
	m.setErr(err)
	if changed {
		m.cursor = target
	}
}

func (m *tuiModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.drag.Dragging() {
			m.drag.Move(m.pointerY(msg.Y))
		}
		return m, nil
	case tea.MouseActionRelease:
		if m.drag.Dragging() {
			m.drag.Move(m.pointerY(msg.Y))
			m.drop()
		}
		return m, nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
	default:
		return m, nil
	}

	rows := m.visible()
	row := msg.Y - m.listTop()
	if row < 0 || row >= len(rows) {
		return m, nil
	}
	t := rows[row]

	switch {
	case msg.X >= checkboxCol && msg.X < checkboxCol+checkboxWidth:
		_, err := m.app.Store().Toggle(t.ID)
		m.setErr(err)
		return m, nil
	case msg.X == removeCol(t):
		_, err := m.app.Store().Remove(t.ID)
		m.setErr(err)
		return m, nil
	}

	m.cursor = row
	if m.focus == focusInput {
		m.toggleFocus()
	}
	m.drag.Begin(t.ID, layout(rows), float64(m.listTop()))
	return m, nil
}

func (m *tuiModel) drop() {
	id, _ := m.drag.DraggedID()
	_, err := m.drag.Drop()
	m.setErr(err)
	for i, t := range m.visible() {
		if t.ID == id {
			m.cursor = i
			break
		}
	}
}

// pointerY maps a terminal row to a position for the drag controller.
// Rows above the dragged task map to the cell center so the row under the
// pointer is displaced. Rows below it map to the cell bottom so the dragged
// task passes the row under the pointer.
func (m *tuiModel) pointerY(y int) float64 {
	id, _ := m.drag.DraggedID()
	current := -1
	for i, other := range m.drag.Order() {
		if other == id {
			current = i
			break
		}
	}
	if y-m.listTop() > current {
		return float64(y) + 1
	}
	return float64(y) + 0.5
}

// layout describes the visible rows to the drag controller. Every row is
// one terminal line.
func layout(rows []todo.Task) []reorder.Item {
	items := make([]reorder.Item, len(rows))
	for i, t := range rows {
		items[i] = reorder.Item{ID: t.ID, Height: 1}
	}
	return items
}

func (m *tuiModel) visible() []todo.Task {
	return m.app.Selector().Apply(m.tasks)
}

// rows returns the visible tasks in display order, following the drag
// gesture while one is active.
func (m *tuiModel) rows() []todo.Task {
	visible := m.visible()
	if !m.drag.Dragging() {
		return visible
	}
	byID := make(map[int]todo.Task, len(visible))
	for _, t := range visible {
		byID[t.ID] = t
	}
	out := make([]todo.Task, 0, len(visible))
	for _, id := range m.drag.Order() {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (m *tuiModel) selected() (todo.Task, bool) {
	rows := m.visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return todo.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *tuiModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) setErr(err error) {
	m.err = err
	if err != nil {
		m.app.Logger().Error("tui action failed", "err", err)
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
