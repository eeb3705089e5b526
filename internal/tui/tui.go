package tui

import (
	"context"

	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/service"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI is the terminal front end. It owns a single Bubble Tea program whose
// screens are driven entirely by [service.ClientSessionService] snapshots.
type TUI struct {
	session service.ClientSessionService
	logger  *logger.Logger
}

func New(session service.ClientSessionService, logger *logger.Logger) *TUI {
	return &TUI{session: session, logger: logger}
}

// Run blocks until the user quits. Returns [ErrUserQuit] when the user left
// from the welcome screen, nil on a normal exit.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.session)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	return result.err
}
