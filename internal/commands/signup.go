package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskdeck/internal/backend/taskapi"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	firstName string
	lastName  string
	password  string

	auth  service.Authenticator
	stdin io.Reader
}

// SetAuth overrides the authenticator (for testing).
func (c *SignupCmd) SetAuth(a service.Authenticator) { c.auth = a }

// SetStdin overrides the password input source (for testing).
func (c *SignupCmd) SetStdin(r io.Reader) { c.stdin = r }

// SetFields sets the flag-bound fields (for testing).
func (c *SignupCmd) SetFields(firstName, lastName, password string) {
	c.firstName = firstName
	c.lastName = lastName
	c.password = password
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return nil }
func (c *SignupCmd) Synopsis() string  { return "Create an account and store a session token" }
func (c *SignupCmd) Usage() string {
	return "taskdeck signup --first <name> --last <name> [--password <pw>] <username>"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.firstName, "first", "", "")
	fs.StringVar(&c.lastName, "last", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	username := strings.TrimSpace(strings.Join(args, " "))
	if username == "" {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.firstName) == "" || strings.TrimSpace(c.lastName) == "" {
		fmt.Fprintln(errOut, "error: --first and --last are required")
		return exitcode.UserError
	}

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

	token, err := auth.Signup(ctx, service.SignupRequest{
		FirstName: c.firstName,
		LastName:  c.lastName,
		Username:  username,
		Password:  password,
	})
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

func (c *SignupCmd) inputReader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}
