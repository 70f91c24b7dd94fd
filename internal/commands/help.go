package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdeck help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                List tasks grouped by status
  taskdeck list [common flags]
  taskdeck add [common flags] [--desc <text>] [--status <status>] <title...>
  taskdeck edit [common flags] [--title <t>] [--desc <text>] [--status <status>] <n>
  taskdeck done [common flags] <n>
  taskdeck status [common flags] <n> <status>
  taskdeck rm [common flags] <n>
  taskdeck board [common flags]           Interactive three-column board
  taskdeck signup [common flags] --first <name> --last <name> <username>
  taskdeck login [common flags] <username>
  taskdeck logout [common flags]
  taskdeck help
  taskdeck version

Statuses: "not started", "pending", "completed" (hyphens accepted).
Task numbers <n> are the ones printed by list.

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override API base URL (also TASKDECK_API_URL)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
