// Package search turns search-box keystrokes into store transitions:
// debounced, length-gated and fenced so only the latest query lands.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
)

const (
	// DefaultMinQueryLength is the shortest trimmed query sent to the service
	DefaultMinQueryLength = 2

	// noResultsMessage is shown when the service refuses without a message
	noResultsMessage = "No movies found"
)

// Searcher fetches one page of results
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*domain.SearchPage, error)
}

// Options configures a Pipeline
type Options struct {
	Debounce       time.Duration // Negative uses DefaultDebounce
	MinQueryLength int           // Zero or negative uses DefaultMinQueryLength
	Clock          Clock         // Nil uses RealClock
}

// pendingInput is typed text waiting out the debounce period
type pendingInput struct {
	text  string
	epoch uint64 // Pipeline.epoch when the text was typed
}

// Pipeline drives the store from search-box input
type Pipeline struct {
	searcher  Searcher
	store     *state.Store
	logger    *slog.Logger
	minLength int
	debouncer *Debouncer[pendingInput]

	mu     sync.Mutex
	gen    uint64 // bumped per request; fences responses
	epoch  uint64 // bumped by Clear and Close; fences debounced input
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewPipeline creates a pipeline dispatching into store
func NewPipeline(searcher Searcher, store *state.Store, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = DefaultMinQueryLength
	}
	p := &Pipeline{
		searcher:  searcher,
		store:     store,
		logger:    logger,
		minLength: opts.MinQueryLength,
	}
	p.debouncer = NewDebouncer(opts.Debounce, opts.Clock, p.fire)
	return p
}

// OnInput records text as the current query and schedules a search for it
func (p *Pipeline) OnInput(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.store.Dispatch(state.SetQuery{Query: text})
	p.debouncer.OnInput(pendingInput{text: text, epoch: p.epoch})
}

// Clear cancels pending and in-flight work and empties the query,
// results and error
func (p *Pipeline) Clear() {
	p.debouncer.Cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.epoch++
	p.supersede()

	p.store.Dispatch(state.SetQuery{Query: ""})
	p.store.Dispatch(state.SetResults{Movies: nil})
	p.store.Dispatch(state.ClearError())
}

// Close cancels everything and waits for in-flight searches to return.
// The pipeline ignores input afterwards.
func (p *Pipeline) Close() {
	p.debouncer.Cancel()

	p.mu.Lock()
	p.closed = true
	p.epoch++
	p.supersede()
	p.mu.Unlock()

	p.wg.Wait()
}

// Wait blocks until in-flight searches have returned
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// supersede invalidates the in-flight query. Callers hold p.mu.
func (p *Pipeline) supersede() uint64 {
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return p.gen
}

// fire runs when the debounce period ends. Input typed before the last
// Clear is dropped; the timer can already be running when Clear stops it.
func (p *Pipeline) fire(in pendingInput) {
	query := strings.TrimSpace(in.text)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if in.epoch != p.epoch {
		p.logger.Debug("dropped input from before clear", "query", query)
		return
	}
	gen := p.supersede()

	if len([]rune(query)) < p.minLength {
		p.logger.Debug("query too short", "query", query, "min", p.minLength)
		p.store.Dispatch(state.SetResults{Movies: nil})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.store.Dispatch(state.ClearError())
	p.store.Dispatch(state.SetLoading{Loading: true})

	p.wg.Add(1)
	go p.run(ctx, gen, query)
}

func (p *Pipeline) run(ctx context.Context, gen uint64, query string) {
	defer p.wg.Done()

	page, err := p.searcher.Search(ctx, query, 1)

	var actions []state.Action
	switch {
	case err != nil:
		actions = []state.Action{state.ErrorMessage(err.Error()), state.SetResults{Movies: nil}}
	case page.Response:
		actions = []state.Action{state.SetResults{Movies: page.Movies}}
	default:
		msg := strings.TrimSpace(page.Error)
		if msg == "" {
			msg = noResultsMessage
		}
		actions = []state.Action{state.ErrorMessage(msg), state.SetResults{Movies: nil}}
	}
	actions = append(actions, state.SetLoading{Loading: false})

	if !p.commit(gen, actions...) {
		p.logger.Debug("dropped stale search", "query", query, "canceled", errors.Is(err, context.Canceled))
		return
	}

	if err != nil {
		p.logger.Warn("search failed", "query", query, "error", err)
	} else {
		p.logger.Debug("search complete", "query", query, "ok", page.Response, "results", len(page.Movies))
	}
}

// commit dispatches actions if gen is still the current query
func (p *Pipeline) commit(gen uint64, actions ...state.Action) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen != p.gen {
		return false
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	for _, a := range actions {
		p.store.Dispatch(a)
	}
	return true
}
