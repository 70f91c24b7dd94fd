package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

// authMode selects between the two form variants.
type authMode int

const (
	modeSignup authMode = iota
	modeLogin
)

// Input indices. Login mode only shows username and password.
const (
	fieldFirstName = iota
	fieldLastName
	fieldUsername
	fieldPassword
	fieldCount
)

// transportErrMsg is the fixed message for non-domain auth failures.
const transportErrMsg = "Server error. Try again later."

// authResultMsg carries the outcome of a signup or login call.
type authResultMsg struct {
	token string
	err   error
}

// tokenSavedMsg reports the session store write that follows a successful
// submit.
type tokenSavedMsg struct {
	token string
	err   error
}

// authModel is the signup/login form.
type authModel struct {
	ctx  context.Context
	cfg  *config.Config
	auth service.Authenticator

	mode       authMode
	inputs     []textinput.Model
	focus      int
	errText    string
	submitting bool

	width  int
	height int
}

func newAuthModel(ctx context.Context, cfg *config.Config, auth service.Authenticator) authModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 64
		inputs[i].Width = 28
	}
	inputs[fieldFirstName].Placeholder = "First Name"
	inputs[fieldLastName].Placeholder = "Last Name"
	inputs[fieldUsername].Placeholder = "Username"
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	m := authModel{
		ctx:    ctx,
		cfg:    cfg,
		auth:   auth,
		mode:   modeSignup,
		inputs: inputs,
	}
	m.setFocus(m.visibleFields()[0])
	return m
}

func (m *authModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// visibleFields returns the input indices shown in the current mode.
func (m authModel) visibleFields() []int {
	if m.mode == modeSignup {
		return []int{fieldFirstName, fieldLastName, fieldUsername, fieldPassword}
	}
	return []int{fieldUsername, fieldPassword}
}

func (m *authModel) setFocus(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// moveFocus advances focus by delta within the visible fields, wrapping.
func (m *authModel) moveFocus(delta int) {
	fields := m.visibleFields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	m.setFocus(fields[pos])
}

// switchMode toggles signup/login, clearing all fields and any error.
func (m *authModel) switchMode() {
	if m.mode == modeSignup {
		m.mode = modeLogin
	} else {
		m.mode = modeSignup
	}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.errText = ""
	m.setFocus(m.visibleFields()[0])
}

func (m authModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// One submission at a time; field edits stay possible only
		// between attempts.
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "ctrl+t":
			m.switchMode()
			return m, nil
		case "enter":
			fields := m.visibleFields()
			if m.focus != fields[len(fields)-1] {
				m.moveFocus(1)
				return m, nil
			}
			return m.submit()
		}

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = service.UserMessage(msg.err, transportErrMsg)
			return m, nil
		}
		// Persist the token, then notify the root.
		return m, func() tea.Msg {
			return tokenSavedMsg{token: msg.token, err: session.Save(m.cfg, msg.token)}
		}

	case tokenSavedMsg:
		if msg.err != nil {
			m.errText = "Could not save session: " + msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return authenticatedMsg{token: msg.token}
		}
	}

	return m.updateInputs(msg)
}

func (m authModel) updateInputs(msg tea.Msg) (authModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

// submit validates required fields and issues the auth call.
func (m authModel) submit() (authModel, tea.Cmd) {
	for _, f := range m.visibleFields() {
		if strings.TrimSpace(m.inputs[f].Value()) == "" {
			m.errText = "All fields are required"
			return m, nil
		}
	}

	m.errText = ""
	m.submitting = true

	mode := m.mode
	auth := m.auth
	ctx := m.ctx
	req := service.SignupRequest{
		FirstName: m.inputs[fieldFirstName].Value(),
		LastName:  m.inputs[fieldLastName].Value(),
		Username:  m.inputs[fieldUsername].Value(),
		Password:  m.inputs[fieldPassword].Value(),
	}

	return m, func() tea.Msg {
		var token string
		var err error
		if mode == modeSignup {
			token, err = auth.Signup(ctx, req)
		} else {
			token, err = auth.Login(ctx, req.Username, req.Password)
		}
		return authResultMsg{token: token, err: err}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	heading := "Create Account"
	switchHint := "ctrl+t: sign in instead"
	if m.mode == modeLogin {
		heading = "Welcome Back"
		switchHint = "ctrl+t: create new account"
	}

	b.WriteString(authLabelStyle.Render(heading))
	b.WriteString("\n\n")

	for _, f := range m.visibleFields() {
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(busyStyle.Render("Processing..."))
	} else {
		b.WriteString(helpStyle.Render("enter: submit • " + switchHint + " • ctrl+c: quit"))
	}

	card := authCardStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
