package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/tui/styles"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Layout constants for the result list
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

var typeCaser = cases.Title(language.English)

// ResultList is a scrollable list of search results with a local filter
type ResultList struct {
	movies  []domain.Movie
	ratings domain.RatingMap

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Filter state; filtered is nil when no filter applies
	filterActive bool
	filterInput  textinput.Model
	filtered     []search.FilterResult
}

// NewResultList creates an empty result list
func NewResultList() *ResultList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ResultList{filterInput: ti}
}

// SetMovies replaces the list. The cursor stays on the same movie when it
// is still present.
func (l *ResultList) SetMovies(movies []domain.Movie) {
	var selectedID string
	if m, ok := l.SelectedMovie(); ok {
		selectedID = m.ID
	}

	l.movies = movies
	l.applyFilter()

	l.cursor = 0
	l.offset = 0
	for i := 0; i < l.Count(); i++ {
		if l.movieAt(i).ID == selectedID {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

// SetRatings sets the rating map used for the star column
func (l *ResultList) SetRatings(ratings domain.RatingMap) {
	l.ratings = ratings
}

// SetSize updates the component dimensions
func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SetFocused sets keyboard focus
func (l *ResultList) SetFocused(focused bool) {
	l.focused = focused
	if !focused {
		l.filterInput.Blur()
	}
}

// IsFocused reports keyboard focus
func (l *ResultList) IsFocused() bool {
	return l.focused
}

// Count returns the number of visible (filtered) rows
func (l *ResultList) Count() int {
	if l.filtered != nil {
		return len(l.filtered)
	}
	return len(l.movies)
}

// Total returns the number of rows before filtering
func (l *ResultList) Total() int {
	return len(l.movies)
}

// SelectedMovie returns the movie under the cursor
func (l *ResultList) SelectedMovie() (domain.Movie, bool) {
	if l.cursor < 0 || l.cursor >= l.Count() {
		return domain.Movie{}, false
	}
	return l.movieAt(l.cursor), true
}

// SelectedIndex returns the cursor position
func (l *ResultList) SelectedIndex() int {
	return l.cursor
}

// ToggleFilter activates the filter input
func (l *ResultList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (l *ResultList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if filter is active and the input has focus
func (l *ResultList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all results
func (l *ResultList) ClearFilter() {
	l.filterActive = false
	l.filtered = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.cursor = 0
	l.offset = 0
	l.recalcMaxVisible()
}

// Update handles navigation and filter keys
func (l *ResultList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}

	// Typing into the filter
	if l.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				l.ClearFilter()
				return nil
			case "enter":
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.ClearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		l.cursor = 0
		l.offset = 0
		return cmd
	}

	count := l.Count()
	if count == 0 {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "j", "down":
		if l.cursor < count-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "g", "home":
		l.cursor = 0
	case "G", "end":
		l.cursor = count - 1
	case "ctrl+d", "pgdown":
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case "ctrl+u", "pgup":
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	}
	l.ensureVisible()
	return nil
}

// View renders the list inside a border
func (l *ResultList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 1)).
		Height(max(l.height-frameH, 1)).
		Render(l.renderContent())
}

func (l *ResultList) movieAt(i int) domain.Movie {
	if l.filtered != nil {
		return l.filtered[i].Movie
	}
	return l.movies[i]
}

func (l *ResultList) applyFilter() {
	if !l.filterActive || strings.TrimSpace(l.filterInput.Value()) == "" {
		l.filtered = nil
		return
	}
	l.filtered = search.Filter(l.filterInput.Value(), l.movies)
}

func (l *ResultList) recalcMaxVisible() {
	// Interior minus title line and scroll indicators
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ResultList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *ResultList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Results", itemWidth))

	count := l.Count()
	if count == 0 {
		msg := "No results"
		if l.filtered != nil {
			msg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(msg) + "\n "
		if l.filterActive {
			content += "\n" + l.renderFilterBar()
		}
		return content
	}

	end := min(l.offset+l.maxVisible, count)

	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		var matched []int
		if l.filtered != nil {
			matched = l.filtered[i].MatchedIndexes
		}
		lines = append(lines, l.renderRow(l.movieAt(i), matched, i == l.cursor, itemWidth))
	}

	// Always reserve the indicator lines so the layout does not jump
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar()
	}
	return content
}

// renderRow renders "Title (Year)  Type  ★★★☆☆ (3/5)"
func (l *ResultList) renderRow(m domain.Movie, matched []int, selected bool, width int) string {
	year := ""
	if domain.Available(m.Year) {
		year = fmt.Sprintf(" (%s)", m.Year)
	}
	kind := ""
	if domain.Available(m.Type) {
		kind = "  " + typeCaser.String(m.Type)
	}
	rating := ""
	if r := l.ratings.Get(m.ID); r > 0 {
		rating = fmt.Sprintf("  %s%s (%d/%d)",
			strings.Repeat(styles.StarFull, r), strings.Repeat(styles.StarEmpty, domain.MaxRating-r),
			r, domain.MaxRating)
	}

	// Available space: width minus margins and the suffixes
	titleWidth := max(width-2-lipgloss.Width(year+kind+rating), 5)
	title := styles.Truncate(m.Title, titleWidth)

	gold := styles.Gold
	dim := styles.DimGray
	parts := titleParts(title, matched)
	parts = append(parts,
		styles.RowPart{Text: year},
		styles.RowPart{Text: kind, Foreground: &dim},
		styles.RowPart{Text: rating, Foreground: &gold},
	)
	return styles.RenderListRow(parts, selected, width)
}

// titleParts splits title into runs, highlighting the fuzzy-matched positions
func titleParts(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var parts []styles.RowPart
	var run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		parts = append(parts, styles.RowPart{Text: run.String(), Highlight: runHit})
		run.Reset()
	}

	for i, r := range title {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

func (l *ResultList) renderFilterBar() string {
	countStr := ""
	if l.filtered != nil {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(l.filtered), len(l.movies)))
	}
	return l.filterInput.View() + countStr
}
