package tui

import (
	"strings"

	"github.com/studynexus/studynexus/internal/service"
)

// sessionModel shows the signed-in profile. In degraded mode it renders the
// cached profile behind an offline banner and hides every token action.
type sessionModel struct {
	snap   service.SessionSnapshot
	status string
}

func (m sessionModel) View() string {
	var b strings.Builder

	switch m.snap.State {
	case service.StateAuthenticated:
		user := m.snap.User
		b.WriteString("Name      │ ")
		b.WriteString(valueOrDash(user.FullName))
		b.WriteString("\n")
		b.WriteString("Email     │ ")
		b.WriteString(valueOrDash(user.Email))
		b.WriteString("\n")
		b.WriteString("Account   │ ")
		b.WriteString(valueOrDash(user.Source))
		b.WriteString("\n")
		b.WriteString("Token     │ ")
		b.WriteString(fitText(m.snap.Token, 44))
		b.WriteString("\n")

		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(m.status)
			b.WriteString("\n")
		}

		return renderPage("MY PROFILE", strings.TrimRight(b.String(), "\n"), "c: copy token │ l: sign out │ q: quit")

	case service.StateDegraded:
		b.WriteString(bannerStyle.Render("OFFLINE — showing cached profile, no active session"))
		b.WriteString("\n\n")
		profile := m.snap.Profile
		b.WriteString("Name      │ ")
		b.WriteString(valueOrDash(profile.DisplayName))
		b.WriteString("\n")
		b.WriteString("Email     │ ")
		b.WriteString(valueOrDash(profile.Email))
		b.WriteString("\n")
		b.WriteString("Provider  │ ")
		b.WriteString(valueOrDash(profile.Provider))
		b.WriteString("\n")

		if m.snap.Notice != "" {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(m.snap.Notice))
			b.WriteString("\n")
		}

		return renderPage("MY PROFILE", strings.TrimRight(b.String(), "\n"), "r: retry connection │ l: sign out │ q: quit")
	}

	return renderPage("MY PROFILE", "-", "q: quit")
}
