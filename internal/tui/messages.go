package tui

import "github.com/studynexus/studynexus/internal/service"

// sessionChangedMsg carries the outcome of any session operation. snap is
// always the manager's current snapshot; err is set only when the operation
// failed without advancing the state.
type sessionChangedMsg struct {
	snap service.SessionSnapshot
	err  error
}

// authURLMsg delivers the provider consent URL once the interactive flow has
// started its local listener.
type authURLMsg struct {
	url string
}

type copiedMsg struct{}

type clearStatusMsg struct{}
