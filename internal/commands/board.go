package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/backend/taskapi"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/ui"
)

func init() {
	Register(&BoardCmd{})
}

// BoardCmd launches the interactive board.
// It never requires a stored token up front: with no session the TUI starts
// on the auth form and switches to the board after login or signup.
type BoardCmd struct{}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return []string{"ui"} }
func (c *BoardCmd) Synopsis() string  { return "Open the interactive task board" }
func (c *BoardCmd) Usage() string     { return "taskdeck board [common flags]" }
func (c *BoardCmd) NeedsAuth() bool   { return false }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	app := ui.New(cfg, taskapi.NewAuthClient(cfg), func(ctx context.Context, token string) service.Service {
		return taskapi.New(ctx, cfg, token)
	})

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
