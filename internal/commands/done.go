package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskdeck done [common flags] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, svc, args, service.StatusCompleted, out, errOut)
}

// runSetStatus resolves a task reference and applies a status-only update.
// Shared by done and status.
func runSetStatus(ctx context.Context, cfg *config.Config, svc service.Service, args []string, status string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := ResolveTaskRef(ctx, svc, num)
	if err != nil {
		if errors.Is(err, ErrTaskRefOutOfRange) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return reportBackendError(errOut, err, "failed to load tasks")
	}

	patch := service.TaskPatch{Status: &status}
	if _, err := svc.UpdateTask(ctx, task.ID, patch); err != nil {
		return reportBackendError(errOut, err, "could not update status")
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
