package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"taskdeck/internal/service"
)

// ErrTaskRefRequired is returned when no task reference was given.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrTaskRefOutOfRange is returned when the reference points past the list.
var ErrTaskRefOutOfRange = errors.New("task number out of range")

// ParseTaskRef parses a 1-based task number from the first positional arg.
// Task numbers are the ones printed by `list`: buckets in display order,
// numbering continuous across buckets.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return n, nil
}

// ResolveTaskRef fetches the current task list and returns the task at the
// given display number. The fetch is fresh on every call, so numbers always
// refer to the most recent `list` ordering of a stable backend.
func ResolveTaskRef(ctx context.Context, svc service.Service, num int) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}

	buckets := service.GroupByStatus(tasks)
	idx := num - 1
	for _, status := range service.Statuses() {
		bucket := buckets.ByStatus(status)
		if idx < len(bucket) {
			return bucket[idx], nil
		}
		idx -= len(bucket)
	}
	return service.Task{}, fmt.Errorf("%w: %d", ErrTaskRefOutOfRange, num)
}
