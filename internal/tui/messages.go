package tui

import (
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
)

// Message types for the TUI

// StateChangedMsg carries a new application state snapshot
type StateChangedMsg struct {
	State state.State
}

// DetailsLoadedMsg signals that a detail fetch finished
type DetailsLoadedMsg struct {
	ID      string
	Details *domain.MovieDetails
	Err     error
}

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}
