package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"taskdeck/internal/service"
)

var errTitleRequired = errors.New("Title is required")

// formMode represents the mode of the task form modal.
type formMode int

const (
	formModeCreate formMode = iota
	formModeEdit
)

// taskForm holds the state for the create/edit modal.
type taskForm struct {
	mode   formMode
	taskID string
	form   *huh.Form

	// Bound form values
	title       string
	description string
	status      string
}

// newTaskForm creates an empty form for a new task.
func newTaskForm() *taskForm {
	f := &taskForm{
		mode:   formModeCreate,
		status: service.StatusNotStarted,
	}
	f.buildForm()
	return f
}

// newTaskFormForEdit creates a form populated with an existing task.
func newTaskFormForEdit(task service.Task) *taskForm {
	f := &taskForm{
		mode:        formModeEdit,
		taskID:      task.ID,
		title:       task.Title,
		description: task.Description,
		status:      task.Status,
	}
	if !service.ValidStatus(f.status) {
		f.status = service.StatusNotStarted
	}
	f.buildForm()
	return f
}

// buildForm constructs the huh.Form based on current state.
// The title validator keeps an empty title from ever reaching the network.
func (f *taskForm) buildForm() {
	statusOptions := make([]huh.Option[string], 0, len(service.Statuses()))
	for _, s := range service.Statuses() {
		statusOptions = append(statusOptions, huh.NewOption(service.StatusLabel(s), s))
	}

	heading := "New Task"
	if f.mode == formModeEdit {
		heading = "Edit Task"
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.title).
				Placeholder("Enter task title...").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errTitleRequired
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&f.description).
				Placeholder("Add a description...").
				Lines(3),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions...).
				Value(&f.status),
		).Title(heading),
	)
}

// patch returns the edit-mode partial update for the bound values.
func (f *taskForm) patch() service.TaskPatch {
	title := strings.TrimSpace(f.title)
	return service.TaskPatch{
		Title:       &title,
		Description: &f.description,
		Status:      &f.status,
	}
}
