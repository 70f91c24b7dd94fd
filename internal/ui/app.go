// Package ui implements the interactive board as a bubbletea program.
//
// The program has two top-level views: the auth form and the task board.
// Which one is shown is decided by session-token presence at startup and
// after every auth transition.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

// ServiceFunc builds a task service bound to a session token.
type ServiceFunc func(ctx context.Context, token string) service.Service

// App wires the TUI to its collaborators.
type App struct {
	cfg        *config.Config
	auth       service.Authenticator
	newService ServiceFunc
}

// New creates the TUI application.
func New(cfg *config.Config, auth service.Authenticator, newService ServiceFunc) *App {
	return &App{cfg: cfg, auth: auth, newService: newService}
}

// Run starts the program and blocks until it exits.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(newRootModel(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// view identifies the active top-level view.
type view int

const (
	viewAuth view = iota
	viewBoard
)

// authenticatedMsg is emitted by the auth model after the token has been
// persisted; the root switches to the board.
type authenticatedMsg struct {
	token string
}

// loggedOutMsg is emitted by the board after the token has been cleared;
// the root switches back to a fresh auth form.
type loggedOutMsg struct{}

// rootModel routes between the auth form and the board.
type rootModel struct {
	ctx  context.Context
	app  *App
	view view

	auth  authModel
	board boardModel

	width  int
	height int
}

func newRootModel(ctx context.Context, app *App) rootModel {
	m := rootModel{
		ctx:  ctx,
		app:  app,
		view: viewAuth,
		auth: newAuthModel(ctx, app.cfg, app.auth),
	}

	// Token present at startup means the board is shown directly.
	if sess, err := session.Load(app.cfg); err == nil {
		m.view = viewBoard
		m.board = newBoardModel(ctx, app.cfg, app.newService(ctx, sess.Token))
	}
	return m
}

func (m rootModel) Init() tea.Cmd {
	if m.view == viewBoard {
		return m.board.Init()
	}
	return m.auth.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.auth.setSize(msg.Width, msg.Height)
		m.board.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case authenticatedMsg:
		m.view = viewBoard
		m.board = newBoardModel(m.ctx, m.app.cfg, m.app.newService(m.ctx, msg.token))
		m.board.setSize(m.width, m.height)
		return m, m.board.Init()

	case loggedOutMsg:
		m.view = viewAuth
		m.auth = newAuthModel(m.ctx, m.app.cfg, m.app.auth)
		m.auth.setSize(m.width, m.height)
		return m, m.auth.Init()
	}

	var cmd tea.Cmd
	switch m.view {
	case viewAuth:
		m.auth, cmd = m.auth.Update(msg)
	case viewBoard:
		m.board, cmd = m.board.Update(msg)
	}
	return m, cmd
}

func (m rootModel) View() string {
	if m.view == viewBoard {
		return m.board.View()
	}
	return m.auth.View()
}
