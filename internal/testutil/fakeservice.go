// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskdeck/internal/service"
)

// FakeService is an in-memory implementation of service.Service and
// service.Authenticator for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Accounts known to the fake, username -> password.
	accounts map[string]string

	// Error injection for testing.
	SignupErr     error
	LoginErr      error
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// Call counters, for asserting refetch behavior.
	ListCalls int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:   1,
		accounts: make(map[string]string),
	}
}

// AddTask seeds a task with a fixed ID.
func (f *FakeService) AddTask(id, title, description, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
	})
}

// AddAccount seeds an account for Login.
func (f *FakeService) AddAccount(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[username] = password
}

// Tasks returns a copy of the current task list.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Signup implements service.Authenticator.
func (f *FakeService) Signup(ctx context.Context, req service.SignupRequest) (string, error) {
	if f.SignupErr != nil {
		return "", f.SignupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[req.Username]; exists {
		return "", &service.DomainError{Message: "Username already taken"}
	}
	f.accounts[req.Username] = req.Password
	return "token-" + req.Username, nil
}

// Login implements service.Authenticator.
func (f *FakeService) Login(ctx context.Context, username, password string) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if pw, ok := f.accounts[username]; !ok || pw != password {
		return "", &service.DomainError{Message: "Invalid credentials"}
	}
	return "token-" + username, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title, description, status string) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       title,
		Description: description,
		Status:      status,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.Status != nil {
			f.tasks[i].Status = *patch.Status
		}
		return f.tasks[i], nil
	}
	return service.Task{}, &service.DomainError{Message: "Task not found"}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.DomainError{Message: "Task not found"}
}

// TitlesByStatus returns the titles of tasks with the given status, in order.
func (f *FakeService) TitlesByStatus(status string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var titles []string
	for _, t := range f.tasks {
		if t.Status == status {
			titles = append(titles, t.Title)
		}
	}
	return titles
}

// FindByTitle returns the first task whose title matches, case-insensitively.
func (f *FakeService) FindByTitle(title string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if strings.EqualFold(t.Title, title) {
			return t, true
		}
	}
	return service.Task{}, false
}
