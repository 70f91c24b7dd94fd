package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	status      string
}

// SetFields sets the flag-bound fields (for testing).
func (c *AddCmd) SetFields(description, status string) {
	c.description = description
	c.status = status
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskdeck add [--desc <text>] [--status <status>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.status, "status", service.StatusNotStarted, "")
	fs.StringVar(&c.status, "s", service.StatusNotStarted, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Title is validated before any network call.
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title is required")
		return exitcode.UserError
	}

	status := c.status
	if status == "" {
		status = service.StatusNotStarted
	}
	if !service.ValidStatus(status) {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", status)
		return exitcode.UserError
	}

	if _, err := svc.CreateTask(ctx, title, c.description, status); err != nil {
		return reportBackendError(errOut, err, "could not save task")
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
