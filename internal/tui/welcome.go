package tui

import "strings"

type welcomeModel struct {
	items  []string
	idx    int
	notice string
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []string{"Sign in", "Create account", "Sign in with Google"}}
}

func (m welcomeModel) View() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n\n")
	}

	b.WriteString("Choose an action:\n\n")
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(item)
		b.WriteString("\n")
	}

	return renderPage("STUDYNEXUS", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate")
}
