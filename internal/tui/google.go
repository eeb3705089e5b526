// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// googleModel covers both federated sign-in flows. While the interactive
// flow is running it shows a spinner plus the consent URL; once the manager
// falls back to the out-of-band redirect flow it switches to a code prompt.
type googleModel struct {
	spinner spinner.Model

	// authURL is the consent URL of the in-flight interactive flow.
	authURL string

	// pending switches the screen into out-of-band mode: redirectURL is
	// shown and codeInput collects the pasted authorization code.
	pending     bool
	redirectURL string
	codeInput   textinput.Model

	submitting bool
	errMsg     string
}

func newGoogleModel() googleModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	codeInput := textinput.New()
	codeInput.Placeholder = "authorization code"
	codeInput.Width = 50

	return googleModel{spinner: s, codeInput: codeInput}
}

func (m googleModel) View() string {
	var b strings.Builder

	if m.pending {
		b.WriteString("The browser pop-up flow is unavailable.\n")
		b.WriteString("Open this link in any browser, approve access, then paste\n")
		b.WriteString("the authorization code below:\n\n")
		b.WriteString(valueOrDash(m.redirectURL))
		b.WriteString("\n\nCode │ [")
		b.WriteString(m.codeInput.View())
		b.WriteString("]\n")

		if m.submitting {
			b.WriteString("\n[Verifying code...]\n")
		}
		if m.errMsg != "" {
			b.WriteString("\nError: ")
			b.WriteString(m.errMsg)
			b.WriteString("\n")
		}

		return renderPage("SIGN IN WITH GOOGLE", strings.TrimRight(b.String(), "\n"), "esc: cancel │ enter: submit code")
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" Waiting for Google sign-in to finish in your browser...\n")
	if m.authURL != "" {
		b.WriteString("\nIf no browser window opened, visit:\n")
		b.WriteString(m.authURL)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nError: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("SIGN IN WITH GOOGLE", strings.TrimRight(b.String(), "\n"), "esc: cancel")
}

func (m *googleModel) enterPendingMode(redirectURL string) {
	m.pending = true
	m.redirectURL = redirectURL
	m.errMsg = ""
	m.submitting = false
	m.codeInput.SetValue("")
	m.codeInput.Focus()
}

func (m *googleModel) reset() {
	m.pending = false
	m.redirectURL = ""
	m.authURL = ""
	m.errMsg = ""
	m.submitting = false
	m.codeInput.SetValue("")
	m.codeInput.Blur()
}
