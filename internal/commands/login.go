package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"taskdeck/internal/backend/taskapi"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string

	auth  service.Authenticator
	stdin io.Reader
}

// SetAuth overrides the authenticator (for testing).
func (c *LoginCmd) SetAuth(a service.Authenticator) { c.auth = a }

// SetStdin overrides the password input source (for testing).
func (c *LoginCmd) SetStdin(r io.Reader) { c.stdin = r }

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store a session token" }
func (c *LoginCmd) Usage() string     { return "taskdeck login [--password <pw>] <username>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	username := strings.TrimSpace(strings.Join(args, " "))
	if username == "" {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}

	// The named user is always authenticated, even when a token is already
	// stored: the store holds no identity, so an existing token may belong
	// to a different account. Save below replaces it.
	password := c.password
	if password == "" {
		var err error
		password, err = promptPassword(c.inputReader(), errOut, "Password: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	auth := c.auth
	if auth == nil {
		auth = taskapi.NewAuthClient(cfg)
	}

	token, err := auth.Login(ctx, username, password)
	if err != nil {
		if de, ok := service.AsDomain(err); ok {
			fmt.Fprintf(errOut, "error: %s\n", de.Message)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: server error: %v\n", err)
		return exitcode.BackendError
	}

	if err := session.Save(cfg, token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func (c *LoginCmd) inputReader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// promptPassword reads a password without echo when the input is a
// terminal, falling back to a plain line read otherwise.
func promptPassword(in io.Reader, errOut io.Writer, prompt string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(errOut, prompt)
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
