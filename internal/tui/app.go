package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/state"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// ViewMode is the screen currently shown
type ViewMode int

const (
	ViewSearch ViewMode = iota
	ViewDetail
)

const (
	// defaultDetailTimeout bounds a detail fetch started from the TUI
	defaultDetailTimeout = 15 * time.Second

	statusDuration = 3 * time.Second
)

// Options wires the model to the application services
type Options struct {
	Store          *state.Store
	Pipeline       *search.Pipeline
	Details        *service.DetailService
	Ratings        *service.RatingsService
	Browse         *service.BrowseService // Optional; o/p keys are inert without it
	MinQueryLength int
	DetailTimeout  time.Duration
	Logger         *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	store    *state.Store
	pipeline *search.Pipeline
	details  *service.DetailService
	ratings  *service.RatingsService
	browse   *service.BrowseService
	logger   *slog.Logger

	observer *StoreObserver

	minQueryLength int
	detailTimeout  time.Duration

	// Latest store snapshot
	State state.State

	// UI components
	SearchBox components.SearchBox
	Results   *components.ResultList
	Detail    components.DetailView
	Spinner   spinner.Model

	// UI state
	Mode          ViewMode
	ShowHelp      bool
	Ready         bool
	Width         int
	Height        int
	StatusMsg     string
	StatusIsErr   bool
	DetailLoading bool
	pendingID     string
}

// NewModel creates the application model and subscribes it to the store
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = search.DefaultMinQueryLength
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = defaultDetailTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := Model{
		store:          opts.Store,
		pipeline:       opts.Pipeline,
		details:        opts.Details,
		ratings:        opts.Ratings,
		browse:         opts.Browse,
		logger:         logger,
		observer:       NewStoreObserver(opts.Store),
		minQueryLength: opts.MinQueryLength,
		detailTimeout:  opts.DetailTimeout,
		State:          opts.Store.State(),
		SearchBox:      components.NewSearchBox(),
		Results:        components.NewResultList(),
		Detail:         components.NewDetailView(),
		Spinner:        sp,
	}
	m.SearchBox.SetValue(m.State.SearchQuery)
	m.syncComponents()
	return m
}

// Close detaches the model from the store
func (m Model) Close() {
	m.observer.Close()
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.Spinner.Tick,
		WaitForStateCmd(m.observer.Updates()),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case StateChangedMsg:
		m.State = msg.State
		m.syncComponents()
		return m, WaitForStateCmd(m.observer.Updates())

	case DetailsLoadedMsg:
		if msg.ID != m.pendingID {
			return m, nil // superseded by a later selection or Back
		}
		m.pendingID = ""
		m.DetailLoading = false
		if msg.Err != nil {
			m.logger.Warn("detail view failed", "id", msg.ID, "error", msg.Err)
			m.Detail.SetError(msg.Err.Error())
			return m, nil
		}
		m.details.Select(msg.Details)
		m.Detail.SetDetails(msg.Details)
		m.Detail.SetRating(m.State.Rating(msg.Details.ID))
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Forward everything else (cursor blink etc.) to the focused widget
	var cmd tea.Cmd
	switch {
	case m.Mode == ViewDetail:
		m.Detail, cmd = m.Detail.Update(msg)
	case m.SearchBox.Focused():
		m.SearchBox, cmd, _ = m.SearchBox.Update(msg)
	default:
		cmd = m.Results.Update(msg)
	}
	return m, cmd
}

// syncComponents pushes the latest state snapshot into the widgets
func (m *Model) syncComponents() {
	m.Results.SetMovies(m.State.Movies)
	m.Results.SetRatings(m.State.UserRatings)

	// The record itself only changes through DetailsLoadedMsg
	if shown := m.Detail.Details(); shown != nil {
		m.Detail.SetRating(m.State.Rating(shown.ID))
	}

	// Keep the box in step when the query changed elsewhere (Clear)
	if !m.SearchBox.Focused() && m.SearchBox.Value() != m.State.SearchQuery {
		m.SearchBox.SetValue(m.State.SearchQuery)
	}

	// Results can vanish under the cursor; hand focus back to the box
	if m.Results.IsFocused() && m.Results.Total() == 0 {
		m.focusSearch()
	}
}

// queryLongEnough mirrors the pipeline's length gate for empty-state messages
func (m Model) queryLongEnough() bool {
	return len([]rune(strings.TrimSpace(m.State.SearchQuery))) >= m.minQueryLength
}

func (m *Model) focusSearch() tea.Cmd {
	m.Results.SetFocused(false)
	return m.SearchBox.Focus()
}

func (m *Model) focusResults() bool {
	if m.Results.Total() == 0 {
		return false
	}
	m.SearchBox.Blur()
	m.Results.SetFocused(true)
	return true
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}
