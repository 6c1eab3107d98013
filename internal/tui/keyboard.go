package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	switch {
	case m.Mode == ViewDetail:
		return m.handleDetailKeys(msg)
	case m.SearchBox.Focused():
		return m.handleSearchBoxKeys(msg)
	default:
		return m.handleResultKeys(msg)
	}
}

// handleSearchBoxKeys routes typing into the search pipeline
func (m Model) handleSearchBoxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		if m.SearchBox.Value() != "" {
			m.SearchBox.SetValue("")
			m.pipeline.Clear()
		}
		return m, nil

	case key.Matches(msg, Keys.Clear):
		m.SearchBox.SetValue("")
		m.pipeline.Clear()
		return m, nil

	case key.Matches(msg, Keys.Focus), key.Matches(msg, Keys.Enter), msg.Type == tea.KeyDown:
		m.focusResults()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBox, cmd, changed = m.SearchBox.Update(msg)
	if changed {
		m.pipeline.OnInput(m.SearchBox.Value())
	}
	return m, cmd
}

// handleResultKeys handles navigation in the result list
func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The filter input owns the keyboard while typing
	if m.Results.IsFilterTyping() {
		return m, m.Results.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Results.IsFiltering() {
			m.Results.ClearFilter()
			return m, nil
		}
		return m, m.focusSearch()

	case key.Matches(msg, Keys.Focus):
		return m, m.focusSearch()

	case key.Matches(msg, Keys.Clear):
		m.Results.ClearFilter()
		m.SearchBox.SetValue("")
		m.pipeline.Clear()
		return m, m.focusSearch()

	case key.Matches(msg, Keys.Filter):
		m.Results.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		movie, ok := m.Results.SelectedMovie()
		if !ok {
			return m, nil
		}
		return m, m.openDetails(movie.ID)

	case key.Matches(msg, Keys.Rate):
		movie, ok := m.Results.SelectedMovie()
		if !ok {
			return m, nil
		}
		return m, m.rate(movie, ratingKey(msg))

	case key.Matches(msg, Keys.OpenIMDb):
		movie, ok := m.Results.SelectedMovie()
		if !ok {
			return m, nil
		}
		return m, m.openIMDb(movie)
	}

	return m, m.Results.Update(msg)
}

// handleDetailKeys handles the detail screen
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Back):
		m.Mode = ViewSearch
		m.pendingID = ""
		m.DetailLoading = false
		m.details.Close()
		return m, nil

	case key.Matches(msg, Keys.Rate):
		if shown := m.shownDetails(); shown != nil {
			return m, m.rate(shown.Movie, ratingKey(msg))
		}
		return m, nil

	case key.Matches(msg, Keys.OpenIMDb):
		if shown := m.shownDetails(); shown != nil {
			return m, m.openIMDb(shown.Movie)
		}
		return m, nil

	case key.Matches(msg, Keys.Poster):
		if shown := m.shownDetails(); shown != nil {
			return m, m.openPoster(shown.Movie)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

// shownDetails returns the record on screen, nil while loading or after a failure
func (m Model) shownDetails() *domain.MovieDetails {
	if m.DetailLoading {
		return nil
	}
	return m.Detail.Details()
}

// openDetails switches to the detail screen and starts the fetch
func (m *Model) openDetails(id string) tea.Cmd {
	m.Mode = ViewDetail
	m.DetailLoading = true
	m.pendingID = id
	return tea.Batch(OpenDetailsCmd(m.details, id, m.detailTimeout), m.Spinner.Tick)
}

func (m *Model) rate(movie domain.Movie, rating int) tea.Cmd {
	if err := m.ratings.Rate(movie.ID, rating); err != nil {
		return m.setStatus(err.Error(), true)
	}
	return m.setStatus(fmt.Sprintf("Rated %s %d/%d", movie.Title, rating, domain.MaxRating), false)
}

func (m *Model) openIMDb(movie domain.Movie) tea.Cmd {
	if m.browse == nil {
		return nil
	}
	if err := m.browse.OpenIMDb(movie.ID); err != nil {
		m.logger.Warn("failed to open imdb page", "id", movie.ID, "error", err)
		return m.setStatus("Could not open browser: "+err.Error(), true)
	}
	return m.setStatus("Opened "+movie.Title+" on IMDb", false)
}

func (m *Model) openPoster(movie domain.Movie) tea.Cmd {
	if m.browse == nil {
		return nil
	}
	if err := m.browse.OpenPoster(movie); err != nil {
		m.logger.Warn("failed to open poster", "id", movie.ID, "error", err)
		return m.setStatus("Could not open poster: "+err.Error(), true)
	}
	return m.setStatus("Opened poster for "+movie.Title, false)
}

// ratingKey converts a 1-5 key press to its rating
func ratingKey(msg tea.KeyMsg) int {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '5' {
		return 0
	}
	return int(s[0] - '0')
}
