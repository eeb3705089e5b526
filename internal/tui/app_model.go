// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studynexus/studynexus/internal/identity"
	"github.com/studynexus/studynexus/internal/service"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenGoogle
	screenSession
)

type appModel struct {
	ctx     context.Context
	session service.ClientSessionService

	currentScreen screen

	welcome    welcomeModel
	login      loginModel
	register   registerModel
	google     googleModel
	sessionScr sessionModel

	// authURLCh hands the consent URL from the bridge's notify callback to
	// the update loop. Recreated on every interactive launch.
	authURLCh chan string

	err          error
	showError    bool
	errorMessage string
}

func newAppModel(ctx context.Context, session service.ClientSessionService) appModel {
	return appModel{
		ctx:           ctx,
		session:       session,
		currentScreen: screenWelcome,
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
		google:        newGoogleModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.cmdRestore()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorMessage = ""
			}
			return m, nil
		}
	case sessionChangedMsg:
		return m.applySnapshot(msg)
	case authURLMsg:
		m.google.authURL = msg.url
		return m, nil
	case copiedMsg:
		m.sessionScr.status = "Token copied to clipboard"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.sessionScr.status = ""
		return m, nil
	case spinner.TickMsg:
		if m.currentScreen == screenGoogle && !m.google.pending {
			var cmd tea.Cmd
			m.google.spinner, cmd = m.google.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenGoogle:
		return m.updateGoogle(msg)
	case screenSession:
		return m.updateSession(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenGoogle:
		body = m.google.View()
	case screenSession:
		body = m.sessionScr.View()
	}

	if m.showError {
		overlay := overlayBoxStyle.Render("Error\n\n" + m.errorMessage + "\n\nenter / esc to close")
		body += "\n\n" + overlay
	}

	return appStyle.Render(body)
}

// applySnapshot routes the UI to whichever screen the session state demands.
func (m appModel) applySnapshot(msg sessionChangedMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	m.register.submitting = false
	m.google.submitting = false

	if msg.err != nil {
		if identity.IsCanceled(msg.err) {
			// the user closed the consent flow; back to the menu, no overlay
			m.welcome = newWelcomeModel()
			m.welcome.notice = "sign-in canceled"
			m.google.reset()
			m.currentScreen = screenWelcome
			return m, nil
		}

		message := humanizeServerUnavailableError(msg.err)
		switch m.currentScreen {
		case screenLogin:
			m.login.errMsg = message
		case screenRegister:
			m.register.errMsg = message
		case screenGoogle:
			m.google.errMsg = message
			// a pending flow survives a bad code; keep the prompt open
			if msg.snap.State == service.StatePendingExternalRedirect {
				m.google.enterPendingMode(msg.snap.RedirectURL)
				m.google.errMsg = message
			}
		default:
			m.showError = true
			m.errorMessage = message
		}
		return m, nil
	}

	switch msg.snap.State {
	case service.StateAuthenticated, service.StateDegraded:
		m.sessionScr = sessionModel{snap: msg.snap}
		m.currentScreen = screenSession
		m.google.reset()
		return m, nil
	case service.StatePendingExternalRedirect:
		m.google.enterPendingMode(msg.snap.RedirectURL)
		m.currentScreen = screenGoogle
		return m, nil
	default:
		m.welcome = newWelcomeModel()
		m.welcome.notice = msg.snap.Notice
		m.login.reset()
		m.register.reset()
		m.google.reset()
		m.currentScreen = screenWelcome
		return m, nil
	}
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		switch m.welcome.idx {
		case 0:
			m.login.reset()
			m.currentScreen = screenLogin
		case 1:
			m.register.reset()
			m.currentScreen = screenRegister
		case 2:
			return m.launchGoogle()
		}
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[0].Value())
			pass := m.login.inputs[1].Value()
			if email == "" || pass == "" {
				m.login.errMsg = "email and password are required"
				return m, nil
			}
			m.login.errMsg = ""
			m.login.submitting = true
			return m, m.cmdLogin(email, pass)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			fullName := strings.TrimSpace(m.register.inputs[0].Value())
			email := strings.TrimSpace(m.register.inputs[1].Value())
			pass := m.register.inputs[2].Value()
			repeat := m.register.inputs[3].Value()
			if fullName == "" || email == "" || pass == "" {
				m.register.errMsg = "full name, email and password are required"
				return m, nil
			}
			if pass != repeat {
				m.register.errMsg = "passwords do not match"
				return m, nil
			}
			m.register.errMsg = ""
			m.register.submitting = true
			return m, m.cmdRegister(fullName, email, pass)
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateGoogle(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.google.pending {
			var cmd tea.Cmd
			m.google.codeInput, cmd = m.google.codeInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		snap := m.session.CancelRedirect()
		return m.applySnapshot(sessionChangedMsg{snap: snap})
	case key.Matches(keyMsg, keys.enter):
		if !m.google.pending || m.google.submitting {
			return m, nil
		}
		code := strings.TrimSpace(m.google.codeInput.Value())
		if code == "" {
			m.google.errMsg = "paste the authorization code first"
			return m, nil
		}
		m.google.errMsg = ""
		m.google.submitting = true
		return m, m.cmdCompleteRedirect(code)
	}

	if m.google.pending {
		var cmd tea.Cmd
		m.google.codeInput, cmd = m.google.codeInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateSession(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.logout):
		snap := m.session.Logout(m.ctx)
		return m.applySnapshot(sessionChangedMsg{snap: snap})
	case key.Matches(keyMsg, keys.copy):
		if m.sessionScr.snap.State == service.StateAuthenticated && m.sessionScr.snap.Token != "" {
			return m, cmdCopyToClipboard(m.sessionScr.snap.Token)
		}
	case key.Matches(keyMsg, keys.retry):
		if m.sessionScr.snap.State == service.StateDegraded {
			return m, m.cmdRestore()
		}
	}

	return m, nil
}

func (m appModel) launchGoogle() (tea.Model, tea.Cmd) {
	m.google.reset()
	m.currentScreen = screenGoogle
	m.authURLCh = make(chan string, 1)
	return m, tea.Batch(
		m.google.spinner.Tick,
		m.cmdFederatedLogin(m.authURLCh),
		m.cmdWaitAuthURL(m.authURLCh),
	)
}

func (m appModel) cmdRestore() tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		return sessionChangedMsg{snap: session.Restore(ctx)}
	}
}

func (m appModel) cmdLogin(email, password string) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		snap, err := session.SubmitLocalLogin(ctx, email, password)
		return sessionChangedMsg{snap: snap, err: err}
	}
}

func (m appModel) cmdRegister(fullName, email, password string) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		snap, err := session.SubmitRegistration(ctx, fullName, email, password)
		return sessionChangedMsg{snap: snap, err: err}
	}
}

func (m appModel) cmdFederatedLogin(urlCh chan string) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		snap, err := session.LaunchFederatedLogin(ctx, func(authURL string) {
			select {
			case urlCh <- authURL:
			default:
			}
		})
		return sessionChangedMsg{snap: snap, err: err}
	}
}

func (m appModel) cmdWaitAuthURL(urlCh chan string) tea.Cmd {
	return func() tea.Msg {
		url, ok := <-urlCh
		if !ok {
			return nil
		}
		return authURLMsg{url: url}
	}
}

func (m appModel) cmdCompleteRedirect(code string) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		snap, err := session.CompleteRedirect(ctx, code)
		return sessionChangedMsg{snap: snap, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return sessionChangedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
