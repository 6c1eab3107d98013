package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// DetailView shows the full record of the selected movie in a scrollable pane
type DetailView struct {
	details *domain.MovieDetails
	rating  int
	err     string

	viewport viewport.Model
	width    int
	height   int
}

// NewDetailView creates an empty detail view
func NewDetailView() DetailView {
	return DetailView{viewport: viewport.New(0, 0)}
}

// SetDetails replaces the displayed record and scrolls to the top
func (d *DetailView) SetDetails(details *domain.MovieDetails) {
	if d.details != details {
		d.viewport.GotoTop()
	}
	d.details = details
	d.err = ""
	d.refresh()
}

// SetRating sets the user's rating shown in the widget
func (d *DetailView) SetRating(rating int) {
	if d.rating == rating {
		return
	}
	d.rating = rating
	d.refresh()
}

// SetError shows an inline failure instead of a record
func (d *DetailView) SetError(msg string) {
	d.details = nil
	d.err = msg
	d.refresh()
}

// Details returns the displayed record, nil when empty or showing an error
func (d DetailView) Details() *domain.MovieDetails {
	return d.details
}

// HasDetails returns true if a record is loaded
func (d DetailView) HasDetails() bool {
	return d.details != nil
}

// SetSize updates the component dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	frameW, frameH := styles.ActiveBorder.GetFrameSize()
	d.viewport.Width = max(width-frameW, 1)
	d.viewport.Height = max(height-frameH, 1)
	d.refresh()
}

// Update scrolls the viewport
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the component
func (d DetailView) View() string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(d.width-frameW, 1)).
		Height(max(d.height-frameH, 1)).
		Render(d.viewport.View())
}

func (d *DetailView) refresh() {
	width := max(d.viewport.Width-1, 20)
	switch {
	case d.err != "":
		d.viewport.SetContent(renderNotFound(d.err, width))
	case d.details != nil:
		d.viewport.SetContent(RenderDetails(d.details, d.rating, width))
	default:
		d.viewport.SetContent(styles.DimStyle.Render("No movie selected"))
	}
}

func renderNotFound(msg string, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.EmptyTitleStyle.Render("Movie Not Found"),
		lipgloss.NewStyle().Width(width).Render(styles.ErrorStyle.Render(msg)),
		"",
		styles.DimStyle.Render("esc to go back"),
	)
}

// RenderDetails lays out a full movie record at width columns.
// Fields the service reports as "N/A" are left out.
func RenderDetails(m *domain.MovieDetails, rating, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var sections []string

	sections = append(sections, styles.TitleStyle.Render(m.Title))

	var meta []string
	for _, v := range []string{m.Year, m.Runtime, m.Rated} {
		if domain.Available(v) {
			meta = append(meta, v)
		}
	}
	if len(meta) > 0 {
		sections = append(sections, styles.SubtitleStyle.Render(strings.Join(meta, " • ")))
	}

	if genres := m.Genres(); len(genres) > 0 {
		tags := make([]string, len(genres))
		for i, g := range genres {
			tags[i] = styles.DimBadgeStyle.Render(g)
		}
		sections = append(sections, wrap.Render(strings.Join(tags, " ")))
	}

	var scores []string
	if domain.Available(m.IMDbRating) {
		scores = append(scores, styles.StarFullStyle.Render(styles.StarFull)+" "+m.IMDbRating+"/10 IMDb")
	}
	if domain.Available(m.Metascore) {
		scores = append(scores, styles.BadgeStyle.Render(m.Metascore)+" Metascore")
	}
	if len(scores) > 0 {
		sections = append(sections, strings.Join(scores, "   "))
	}

	sections = append(sections, "", renderRatingWidget(rating))

	if domain.Available(m.Plot) {
		sections = append(sections, "", styles.LabelStyle.Render("Plot"), wrap.Render(m.Plot))
	}

	var credits []string
	for _, f := range []struct{ label, value string }{
		{"Director", m.Director},
		{"Writer", m.Writer},
		{"Actors", m.Actors},
		{"Released", m.Released},
		{"Country", m.Country},
		{"Language", m.Language},
		{"Box Office", m.BoxOffice},
		{"Awards", m.Awards},
	} {
		if domain.Available(f.value) {
			credits = append(credits, wrap.Render(styles.LabelStyle.Render(f.label+": ")+f.value))
		}
	}
	if len(credits) > 0 {
		sections = append(sections, "")
		sections = append(sections, credits...)
	}

	poster := styles.DimStyle.Render("No poster available")
	if m.HasPoster() {
		poster = styles.DimStyle.Render("Poster: " + m.Poster)
	}
	sections = append(sections, "", poster)

	return strings.Join(sections, "\n")
}

func renderRatingWidget(rating int) string {
	widget := styles.LabelStyle.Render("Your rating: ") + styles.RenderStars(rating, domain.MaxRating)
	if rating > 0 {
		widget += styles.SubtitleStyle.Render(fmt.Sprintf(" (%d/%d)", rating, domain.MaxRating))
	} else {
		widget += styles.DimStyle.Render("  press 1-5 to rate")
	}
	return widget
}
