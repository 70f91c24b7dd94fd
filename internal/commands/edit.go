package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: a partial update of any subset of
// title, description and status.
type EditCmd struct {
	fs          *flag.FlagSet
	title       string
	description string
	status      string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [--title <t>] [--desc <text>] [--status <status>] <n>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fs = fs
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

// patch builds the partial update from the flags that were actually set,
// so clearing a description (--desc "") stays distinguishable from not
// touching it.
func (c *EditCmd) patch() (service.TaskPatch, error) {
	var p service.TaskPatch
	if c.fs == nil {
		return p, nil
	}
	var err error
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			title := strings.TrimSpace(c.title)
			if title == "" {
				err = errors.New("title is required")
				return
			}
			p.Title = &title
		case "desc":
			p.Description = &c.description
		case "status":
			if !service.ValidStatus(c.status) {
				err = fmt.Errorf("invalid status: %s", c.status)
				return
			}
			p.Status = &c.status
		}
	})
	return p, err
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	patch, err := c.patch()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if patch.Title == nil && patch.Description == nil && patch.Status == nil {
		fmt.Fprintln(errOut, "error: nothing to change")
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

	if _, err := svc.UpdateTask(ctx, task.ID, patch); err != nil {
		return reportBackendError(errOut, err, "could not save task")
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
