package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Vertical chrome: header line, search box (3 lines) and footer line
const (
	headerHeight    = 1
	searchBoxHeight = 3
	footerHeight    = 1
	summaryHeight   = 2
)

// updateLayout sizes the components for the current window
func (m *Model) updateLayout() {
	m.SearchBox.SetWidth(m.Width)
	listHeight := max(m.Height-headerHeight-searchBoxHeight-summaryHeight-footerHeight, 5)
	m.Results.SetSize(m.Width, listHeight)
	m.Detail.SetSize(m.Width, max(m.Height-headerHeight-footerHeight, 5))
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var body string
	if m.Mode == ViewDetail {
		body = m.renderDetailScreen()
	} else {
		body = m.renderSearchScreen()
	}

	header := styles.AccentStyle.Bold(true).Render("Reel") + styles.DimStyle.Render("  movie search")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) renderSearchScreen() string {
	parts := []string{m.SearchBox.View()}

	s := m.State
	switch {
	case s.Loading:
		parts = append(parts, "", m.Spinner.View()+" Searching...")

	case s.Error != nil:
		parts = append(parts, "", styles.ErrorBannerStyle.Render("! "+s.ErrorText()))

	case len(s.Movies) == 0 && m.queryLongEnough():
		parts = append(parts, "", renderEmptyState(
			"No movies found",
			"Try searching for a different movie title",
		))

	case len(s.Movies) == 0:
		parts = append(parts, "", renderEmptyState(
			"Start Your Movie Journey",
			"Search for any movie to get started",
		))

	default:
		summary := styles.TitleStyle.Render(fmt.Sprintf("Search Results (%d movies)", len(s.Movies))) + "\n" +
			styles.SubtitleStyle.Render(fmt.Sprintf("Found movies for %q", s.SearchQuery))
		parts = append(parts, summary, m.Results.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderEmptyState(title, hint string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.EmptyTitleStyle.Render(title),
		styles.DimStyle.Render(hint),
	)
}

func (m Model) renderDetailScreen() string {
	if m.DetailLoading {
		return "\n" + m.Spinner.View() + " Loading movie details..."
	}
	return m.Detail.View()
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	var bindings []key.Binding
	switch {
	case m.Mode == ViewDetail:
		bindings = []key.Binding{Keys.Back, Keys.Rate, Keys.OpenIMDb, Keys.Poster, Keys.Quit}
	case m.SearchBox.Focused():
		bindings = []key.Binding{Keys.Focus, Keys.Escape, Keys.ForceQuit}
	default:
		bindings = []key.Binding{Keys.Enter, Keys.Rate, Keys.Filter, Keys.Focus, Keys.Help, Keys.Quit}
	}
	return renderBindings(bindings, "  ")
}

func renderBindings(bindings []key.Binding, sep string) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, sep)
}

func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Search", []key.Binding{Keys.Focus, Keys.Escape, Keys.Clear}},
		{"Results", []key.Binding{Keys.Up, Keys.Down, Keys.HalfUp, Keys.HalfDown, Keys.Enter, Keys.Filter, Keys.Rate, Keys.OpenIMDb}},
		{"Details", []key.Binding{Keys.Back, Keys.Up, Keys.Down, Keys.Rate, Keys.OpenIMDb, Keys.Poster}},
		{"General", []key.Binding{Keys.Help, Keys.Quit}},
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render("Keyboard shortcuts"), "")
	for _, s := range sections {
		lines = append(lines, styles.AccentStyle.Render(s.title))
		for _, b := range s.bindings {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %s  %s",
				styles.HelpKeyStyle.Render(fmt.Sprintf("%-6s", h.Key)),
				styles.HelpDescStyle.Render(h.Desc)))
		}
		lines = append(lines, "")
	}
	lines = append(lines, styles.DimStyle.Render("esc or ? to close"))

	return styles.InactiveBorder.Padding(1, 2).Render(strings.Join(lines, "\n"))
}
