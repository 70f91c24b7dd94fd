// Package service defines the backend-agnostic interface for task operations.
package service

// Task statuses as stored by the backend. Matching is by exact string.
const (
	StatusNotStarted = "not started"
	StatusPending    = "pending"
	StatusCompleted  = "completed"
)

// Statuses returns the known statuses in display order.
func Statuses() []string {
	return []string{StatusNotStarted, StatusPending, StatusCompleted}
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// StatusLabel returns the display label for a status
// ("pending" is shown as "In Progress").
func StatusLabel(status string) string {
	switch status {
	case StatusNotStarted:
		return "Not Started"
	case StatusPending:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return status
	}
}

// NextStatus returns the status after s in cycle order
// (not started -> pending -> completed -> not started).
func NextStatus(s string) string {
	switch s {
	case StatusNotStarted:
		return StatusPending
	case StatusPending:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// Task represents a single task item.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
}

// TaskPatch describes a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// SignupRequest carries the fields for account creation.
type SignupRequest struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
}

// Buckets holds tasks partitioned by status for board display.
// A task with an unrecognized status appears in no bucket.
type Buckets struct {
	NotStarted []Task
	Pending    []Task
	Completed  []Task
}

// ByStatus returns the bucket for a known status, or nil.
func (b Buckets) ByStatus(status string) []Task {
	switch status {
	case StatusNotStarted:
		return b.NotStarted
	case StatusPending:
		return b.Pending
	case StatusCompleted:
		return b.Completed
	}
	return nil
}

// Len returns the total number of bucketed tasks.
func (b Buckets) Len() int {
	return len(b.NotStarted) + len(b.Pending) + len(b.Completed)
}

// GroupByStatus partitions tasks into the three status buckets,
// preserving API order within each bucket.
func GroupByStatus(tasks []Task) Buckets {
	var b Buckets
	for _, t := range tasks {
		switch t.Status {
		case StatusNotStarted:
			b.NotStarted = append(b.NotStarted, t)
		case StatusPending:
			b.Pending = append(b.Pending, t)
		case StatusCompleted:
			b.Completed = append(b.Completed, t)
		}
	}
	return b
}
