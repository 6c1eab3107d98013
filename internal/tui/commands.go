package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/state"
)

// Command factories for async operations

// WaitForStateCmd waits for the next store snapshot
func WaitForStateCmd(updates <-chan state.State) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return StateChangedMsg{State: s}
	}
}

// OpenDetailsCmd loads the full record for id. Selecting it is left to
// the DetailsLoadedMsg handler, which knows whether id is still wanted.
func OpenDetailsCmd(svc *service.DetailService, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		details, err := svc.Fetch(ctx, id)
		return DetailsLoadedMsg{ID: id, Details: details, Err: err}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
