package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

// Fixed messages for transport failures, per operation.
const (
	loadErrMsg   = "Failed to load tasks"
	saveErrMsg   = "Could not save task"
	deleteErrMsg = "Could not delete task"
	statusErrMsg = "Could not update status"
)

// tasksLoadedMsg carries the result of a full list fetch.
type tasksLoadedMsg struct {
	tasks []service.Task
	err   error
}

// taskSavedMsg carries the result of a create or update call. generic is
// the fallback message shown when err is not a domain error.
type taskSavedMsg struct {
	err     error
	generic string
}

// taskDeletedMsg carries the result of a delete call.
type taskDeletedMsg struct {
	err error
}

// boardModel renders the three status columns and drives task mutations.
// Every mutation is followed by a full refetch; overlapping refetches are
// tolerated and the last response wins.
type boardModel struct {
	ctx context.Context
	cfg *config.Config
	svc service.Service

	buckets service.Buckets
	loaded  bool

	col int // selected column, indexes service.Statuses()
	row int // selected card within the column

	errText string
	busy    bool // a mutation is in flight; further mutations are ignored
	loading bool

	form *taskForm

	width  int
	height int
}

func newBoardModel(ctx context.Context, cfg *config.Config, svc service.Service) boardModel {
	return boardModel{ctx: ctx, cfg: cfg, svc: svc}
}

func (m *boardModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m boardModel) Init() tea.Cmd {
	return m.loadTasks()
}

// loadTasks issues the full list fetch.
func (m boardModel) loadTasks() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		tasks, err := svc.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (boardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Keep the previous list on failure.
			m.errText = service.UserMessage(msg.err, loadErrMsg)
			return m, nil
		}
		m.loaded = true
		m.buckets = service.GroupByStatus(msg.tasks)
		m.clampCursor()
		return m, nil

	case taskSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = service.UserMessage(msg.err, msg.generic)
			if m.form != nil {
				// Re-arm the form with its values retained so the
				// user can retry.
				m.form.buildForm()
				return m, m.form.form.Init()
			}
			return m, nil
		}
		m.form = nil
		m.errText = ""
		m.loading = true
		return m, m.loadTasks()

	case taskDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = service.UserMessage(msg.err, deleteErrMsg)
			return m, nil
		}
		m.errText = ""
		m.loading = true
		return m, m.loadTasks()

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// updateForm forwards a message to the open modal and reacts to its state.
func (m boardModel) updateForm(msg tea.Msg) (boardModel, tea.Cmd) {
	if m.busy {
		// Submission in flight; swallow input until it resolves.
		return m, nil
	}

	updated, cmd := m.form.form.Update(msg)
	if hf, ok := updated.(*huh.Form); ok {
		m.form.form = hf
	}

	switch m.form.form.State {
	case huh.StateAborted:
		m.form = nil
		return m, nil
	case huh.StateCompleted:
		return m.submitForm()
	}
	return m, cmd
}

// submitForm issues the create or update call for the completed modal.
func (m boardModel) submitForm() (boardModel, tea.Cmd) {
	m.busy = true
	f := m.form
	svc := m.svc
	ctx := m.ctx

	if f.mode == formModeCreate {
		title := strings.TrimSpace(f.title)
		description := f.description
		status := f.status
		return m, func() tea.Msg {
			_, err := svc.CreateTask(ctx, title, description, status)
			return taskSavedMsg{err: err, generic: saveErrMsg}
		}
	}

	id := f.taskID
	patch := f.patch()
	return m, func() tea.Msg {
		_, err := svc.UpdateTask(ctx, id, patch)
		return taskSavedMsg{err: err, generic: saveErrMsg}
	}
}

func (m boardModel) handleKey(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "h", "left":
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
		return m, nil
	case "l", "right":
		if m.col < len(service.Statuses())-1 {
			m.col++
			m.clampCursor()
		}
		return m, nil
	case "j", "down":
		if m.row < len(m.selectedColumn())-1 {
			m.row++
		}
		return m, nil
	case "k", "up":
		if m.row > 0 {
			m.row--
		}
		return m, nil

	case "r":
		m.loading = true
		return m, m.loadTasks()

	case "n":
		// Opening a form while a mutation is in flight would let its
		// taskSavedMsg close the new form underneath the user.
		if m.busy {
			return m, nil
		}
		m.errText = ""
		m.form = newTaskForm()
		return m, m.form.form.Init()

	case "e":
		if m.busy {
			return m, nil
		}
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.errText = ""
		m.form = newTaskFormForEdit(task)
		return m, m.form.form.Init()

	case "d":
		if m.busy {
			return m, nil
		}
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.busy = true
		svc := m.svc
		ctx := m.ctx
		return m, func() tea.Msg {
			return taskDeletedMsg{err: svc.DeleteTask(ctx, task.ID)}
		}

	case "s":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m.setStatus(task, service.NextStatus(task.Status))

	case "1", "2", "3":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		idx := int(msg.String()[0] - '1')
		return m.setStatus(task, service.Statuses()[idx])

	case "L":
		// Clear the session store, then hand control back to the root.
		if err := session.Clear(m.cfg); err != nil {
			m.errText = "Could not log out: " + err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return loggedOutMsg{} }
	}

	return m, nil
}

// setStatus issues a status-only partial update.
func (m boardModel) setStatus(task service.Task, status string) (boardModel, tea.Cmd) {
	if m.busy || task.Status == status {
		return m, nil
	}
	m.busy = true
	svc := m.svc
	ctx := m.ctx
	return m, func() tea.Msg {
		_, err := svc.UpdateTask(ctx, task.ID, service.TaskPatch{Status: &status})
		return taskSavedMsg{err: err, generic: statusErrMsg}
	}
}

func (m boardModel) selectedColumn() []service.Task {
	return m.buckets.ByStatus(service.Statuses()[m.col])
}

func (m boardModel) selectedTask() (service.Task, bool) {
	col := m.selectedColumn()
	if m.row < 0 || m.row >= len(col) {
		return service.Task{}, false
	}
	return col[m.row], true
}

func (m *boardModel) clampCursor() {
	col := m.buckets.ByStatus(service.Statuses()[m.col])
	if len(col) == 0 {
		m.row = 0
	} else if m.row >= len(col) {
		m.row = len(col) - 1
	}
}

// minColumnWidth is the narrowest a board column is allowed to render.
const minColumnWidth = 18

func (m boardModel) View() string {
	if m.form != nil {
		return m.form.form.View()
	}

	var b strings.Builder

	header := titleStyle.Render(" Task Board ")
	if m.loading {
		header += " " + busyStyle.Render("loading...")
	} else if m.busy {
		header += " " + busyStyle.Render("saving...")
	}
	b.WriteString(header)
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	if !m.loaded && m.errText == "" {
		b.WriteString(helpStyle.Render("Loading tasks..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderColumns())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("h/l: columns  j/k: cards  n: new  e: edit  d: delete  s: cycle status  1/2/3: move  r: refresh  L: logout  q: quit"))
	return b.String()
}

// renderColumns lays out the three status columns side by side.
func (m boardModel) renderColumns() string {
	statuses := service.Statuses()

	colWidth := minColumnWidth
	if m.width > 0 {
		// Border and padding cost 4 cells per column.
		w := m.width/len(statuses) - 4
		if w > colWidth {
			colWidth = w
		}
	}

	cols := make([]string, 0, len(statuses))
	for i, status := range statuses {
		cols = append(cols, m.renderColumn(i, status, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m boardModel) renderColumn(idx int, status string, width int) string {
	tasks := m.buckets.ByStatus(status)

	var b strings.Builder
	headerStyle := statusHeaderStyle(status)
	if idx == m.col {
		headerStyle = headerStyle.Underline(true)
	}
	b.WriteString(headerStyle.Render(service.StatusLabel(status)))
	b.WriteString(helpStyle.Render(fmt.Sprintf(" (%d)", len(tasks))))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(cardDescStyle.Render("(empty)"))
	}
	for i, t := range tasks {
		b.WriteString("\n")
		b.WriteString(m.renderCard(t, width, idx == m.col && i == m.row))
	}

	style := columnStyle
	if idx == m.col {
		style = selectedColumnStyle
	}
	return style.Width(width).Render(b.String())
}

func (m boardModel) renderCard(t service.Task, width int, selected bool) string {
	title := truncate(t.Title, width)
	line := cardTitleStyle.Render(title)
	if selected {
		line = selectedCardStyle.Render("> " + title)
	}
	if desc := strings.TrimSpace(t.Description); desc != "" {
		line += "\n" + cardDescStyle.Render(truncate(desc, width))
	}
	return line + "\n"
}

// truncate shortens s to the given display width, never splitting a rune.
func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
