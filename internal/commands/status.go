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
	Register(&StatusCmd{})
}

// StatusCmd implements the status command: a status-only partial update.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"mv"} }
func (c *StatusCmd) Synopsis() string  { return "Set a task's status" }
func (c *StatusCmd) Usage() string     { return "taskdeck status [common flags] <n> <status>" }
func (c *StatusCmd) NeedsAuth() bool   { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task reference and status required")
		return exitcode.UserError
	}

	// The status value may be given with spaces ("not started") or
	// hyphenated ("not-started").
	status := strings.ReplaceAll(strings.Join(args[1:], " "), "-", " ")
	if !service.ValidStatus(status) {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", status)
		return exitcode.UserError
	}

	return runSetStatus(ctx, cfg, svc, args[:1], status, out, errOut)
}
