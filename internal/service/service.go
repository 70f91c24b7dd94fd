// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// Authenticator exchanges credentials for a session token.
// It performs the network call only; persisting the token is the caller's
// responsibility.
type Authenticator interface {
	// Signup creates an account and returns a session token.
	Signup(ctx context.Context, req SignupRequest) (string, error)

	// Login authenticates an existing account and returns a session token.
	Login(ctx context.Context, username, password string) (string, error)
}

// Service defines the interface for task backend operations.
// All task API calls go through this interface; commands and the TUI never
// speak HTTP directly.
type Service interface {
	// ListTasks returns all tasks for the current session, in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task. The backend assigns the ID.
	CreateTask(ctx context.Context, title, description, status string) (Task, error)

	// UpdateTask applies a partial update to the task with the given ID.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// DeleteTask deletes the task with the given ID.
	DeleteTask(ctx context.Context, id string) error
}

// DomainError is an application-level failure reported by the API in the
// "error" field of an otherwise well-formed response body. Its message is
// meant to be shown to the user verbatim. Everything else (network failure,
// non-JSON body) is a transport failure and gets a generic message.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// AsDomain returns the DomainError wrapped in err, if any.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// UserMessage returns the verbatim domain error message if err carries one,
// otherwise the given generic fallback.
func UserMessage(err error, generic string) string {
	if de, ok := AsDomain(err); ok {
		return de.Message
	}
	return generic
}
