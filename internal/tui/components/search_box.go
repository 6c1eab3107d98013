package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// SearchBox is the search-as-you-type text field
type SearchBox struct {
	input textinput.Model
	width int
}

// NewSearchBox creates a focused search box
func NewSearchBox() SearchBox {
	ti := textinput.New()
	ti.Placeholder = "Search for movies..."
	ti.CharLimit = 100
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return SearchBox{input: ti}
}

// Focus gives the box keyboard focus
func (s *SearchBox) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBox) Blur() {
	s.input.Blur()
}

// Focused reports whether the box has keyboard focus
func (s SearchBox) Focused() bool {
	return s.input.Focused()
}

// Value returns the current text
func (s SearchBox) Value() string {
	return s.input.Value()
}

// SetValue replaces the text without reporting a change
func (s *SearchBox) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// SetWidth sets the rendered width including the border
func (s *SearchBox) SetWidth(width int) {
	s.width = width
	frameW, _ := styles.SearchBoxStyle.GetFrameSize()
	s.input.Width = max(width-frameW-lipgloss.Width(s.input.Prompt)-1, 10)
}

// Update handles input events, returns (box, cmd, changed)
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the box
func (s SearchBox) View() string {
	style := styles.SearchBoxStyle
	if s.input.Focused() {
		style = styles.SearchBoxFocusedStyle
	}
	if s.width > 0 {
		frameW, _ := style.GetFrameSize()
		style = style.Width(s.width - frameW)
	}
	return style.Render(s.input.View())
}
