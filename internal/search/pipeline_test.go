package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/omdb"
	"github.com/mmcdole/reel/internal/omdb/omdbtest"
	"github.com/mmcdole/reel/internal/state"
)

const delay = 500 * time.Millisecond

type fixture struct {
	pipeline *Pipeline
	store    *state.Store
	clock    *fakeClock
	server   *omdbtest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := omdbtest.NewServer(t)
	client := omdb.NewClient(srv.Options(), nil)
	return newFixtureWith(t, client, srv)
}

func newFixtureWith(t *testing.T, searcher Searcher, srv *omdbtest.Server) *fixture {
	t.Helper()
	st := state.New()
	clock := &fakeClock{}
	p := NewPipeline(searcher, st, Options{Debounce: delay, Clock: clock}, nil)
	t.Cleanup(p.Close)
	return &fixture{pipeline: p, store: st, clock: clock, server: srv}
}

// typeAndSettle enters text and lets the debounce period and search finish
func (f *fixture) typeAndSettle(text string) state.State {
	f.pipeline.OnInput(text)
	f.clock.Advance(delay)
	f.pipeline.Wait()
	return f.store.State()
}

func TestPipeline_DebouncedKeystrokesSendOneQuery(t *testing.T) {
	f := newFixture(t)

	f.pipeline.OnInput("b")
	f.clock.Advance(100 * time.Millisecond)
	f.pipeline.OnInput("ba")
	f.clock.Advance(100 * time.Millisecond)
	f.pipeline.OnInput("bat")
	f.clock.Advance(400 * time.Millisecond)
	f.pipeline.OnInput("batman")

	if got := f.store.State().SearchQuery; got != "batman" {
		t.Fatalf("query = %q, want it updated on every keystroke", got)
	}

	f.clock.Advance(499 * time.Millisecond)
	f.pipeline.Wait()
	if n := len(f.server.Requests()); n != 0 {
		t.Fatalf("%d requests before the quiet period ended", n)
	}

	f.clock.Advance(time.Millisecond)
	f.pipeline.Wait()

	reqs := f.server.Requests()
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1: %+v", len(reqs), reqs)
	}
	if reqs[0].Search != "batman" || reqs[0].Page != "1" {
		t.Fatalf("request = %+v, want s=batman page=1", reqs[0])
	}
	if f.clock.Now() != 1100*time.Millisecond {
		t.Fatalf("query fired at %v, want 1.1s", f.clock.Now())
	}
}

func TestPipeline_MinimumQueryLength(t *testing.T) {
	f := newFixture(t)

	s := f.typeAndSettle("b")
	if n := len(f.server.Requests()); n != 0 {
		t.Fatalf("1-character query sent %d requests", n)
	}
	if len(s.Movies) != 0 || s.Loading {
		t.Fatalf("state = %+v, want empty idle results", s)
	}

	f.typeAndSettle("  b  ")
	if n := len(f.server.Requests()); n != 0 {
		t.Fatalf("padded 1-character query sent %d requests", n)
	}

	s = f.typeAndSettle("ba")
	reqs := f.server.Requests()
	if len(reqs) != 1 || reqs[0].Search != "ba" {
		t.Fatalf("requests = %+v, want one for ba", reqs)
	}
	if len(s.Movies) != 3 {
		t.Fatalf("got %d movies, want 3", len(s.Movies))
	}
}

func TestPipeline_SuccessfulSearch(t *testing.T) {
	f := newFixture(t)

	s := f.typeAndSettle("batman")
	if s.Loading {
		t.Error("loading still set after completion")
	}
	if s.Error != nil {
		t.Errorf("error = %q, want none", *s.Error)
	}
	if len(s.Movies) != 3 || s.Movies[0].ID != "tt0372784" {
		t.Fatalf("movies = %+v, want the three batman fixtures", s.Movies)
	}
}

func TestPipeline_NoResults(t *testing.T) {
	f := newFixture(t)

	s := f.typeAndSettle("zzzqqqxxx123")
	if s.Loading {
		t.Error("loading still set after completion")
	}
	if len(s.Movies) != 0 {
		t.Errorf("movies = %+v, want none", s.Movies)
	}
	if got := s.ErrorText(); got != "Movie not found!" {
		t.Fatalf("error = %q, want %q", got, "Movie not found!")
	}
}

func TestPipeline_TransportFailure(t *testing.T) {
	f := newFixture(t)
	f.server.Close()

	s := f.typeAndSettle("batman")
	if s.Loading {
		t.Error("loading still set after failure")
	}
	if got := s.ErrorText(); got != "Failed to fetch movies" {
		t.Fatalf("error = %q, want %q", got, "Failed to fetch movies")
	}
	if len(s.Movies) != 0 {
		t.Fatalf("movies = %+v, want none", s.Movies)
	}
}

func TestPipeline_ActionOrder(t *testing.T) {
	f := newFixture(t)

	var changes []state.Change
	var mu sync.Mutex
	f.store.Subscribe(func(c state.Change) {
		mu.Lock()
		changes = append(changes, c)
		mu.Unlock()
	})

	f.typeAndSettle("batman")

	mu.Lock()
	defer mu.Unlock()
	want := []string{"SetQuery", "SetError", "SetLoading", "SetResults", "SetLoading"}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d", len(changes), len(want))
	}
	for i, c := range changes {
		if got := actionName(c.Action); got != want[i] {
			t.Fatalf("action %d = %s, want %s", i, got, want[i])
		}
	}
	if !changes[2].Next.Loading {
		t.Fatal("loading never became visible")
	}
}

func actionName(a state.Action) string {
	switch a.(type) {
	case state.SetQuery:
		return "SetQuery"
	case state.SetError:
		return "SetError"
	case state.SetLoading:
		return "SetLoading"
	case state.SetResults:
		return "SetResults"
	default:
		return "other"
	}
}

// gatedSearcher blocks each query until released and ignores cancellation,
// so stale completions still arrive
type gatedSearcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func newGatedSearcher(queries ...string) *gatedSearcher {
	g := &gatedSearcher{gates: make(map[string]chan struct{}), started: make(chan string, 16)}
	for _, q := range queries {
		g.gates[q] = make(chan struct{})
	}
	return g
}

func (g *gatedSearcher) Search(_ context.Context, query string, _ int) (*domain.SearchPage, error) {
	g.started <- query
	g.mu.Lock()
	gate := g.gates[query]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return &domain.SearchPage{
		Movies:       []domain.Movie{{ID: "tt-" + query, Title: query}},
		TotalResults: 1,
		Response:     true,
	}, nil
}

func (g *gatedSearcher) release(query string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.gates[query])
}

func (g *gatedSearcher) waitStarted(t *testing.T, query string) {
	t.Helper()
	select {
	case got := <-g.started:
		if got != query {
			t.Fatalf("started %q, want %q", got, query)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("search for %q never started", query)
	}
}

func TestPipeline_StaleResponseDropped(t *testing.T) {
	g := newGatedSearcher("first", "second")
	f := newFixtureWith(t, g, nil)

	var mu sync.Mutex
	var seen []string
	f.store.Subscribe(func(c state.Change) {
		if r, ok := c.Action.(state.SetResults); ok {
			mu.Lock()
			for _, m := range r.Movies {
				seen = append(seen, m.ID)
			}
			mu.Unlock()
		}
	})

	f.pipeline.OnInput("first")
	f.clock.Advance(delay)
	g.waitStarted(t, "first")

	f.pipeline.OnInput("second")
	f.clock.Advance(delay)
	g.waitStarted(t, "second")

	g.release("second")
	g.release("first")
	f.pipeline.Wait()

	s := f.store.State()
	if len(s.Movies) != 1 || s.Movies[0].ID != "tt-second" {
		t.Fatalf("movies = %+v, want only the second query's results", s.Movies)
	}
	if s.Loading {
		t.Fatal("loading still set")
	}
	mu.Lock()
	defer mu.Unlock()
	for _, id := range seen {
		if id == "tt-first" {
			t.Fatal("stale results were dispatched")
		}
	}
}

func TestPipeline_ShortQuerySupersedesInFlight(t *testing.T) {
	g := newGatedSearcher("batman")
	f := newFixtureWith(t, g, nil)

	f.pipeline.OnInput("batman")
	f.clock.Advance(delay)
	g.waitStarted(t, "batman")

	f.pipeline.OnInput("b")
	f.clock.Advance(delay)
	g.release("batman")
	f.pipeline.Wait()

	s := f.store.State()
	if len(s.Movies) != 0 || s.Loading {
		t.Fatalf("state = %+v, want empty idle results", s)
	}
	if s.SearchQuery != "b" {
		t.Fatalf("query = %q, want b", s.SearchQuery)
	}
}

func TestPipeline_Clear(t *testing.T) {
	f := newFixture(t)
	f.typeAndSettle("zzzqqqxxx123")

	f.pipeline.Clear()
	s := f.store.State()
	if s.SearchQuery != "" || len(s.Movies) != 0 || s.Error != nil || s.Loading {
		t.Fatalf("state after Clear = %+v, want empty", s)
	}
}

func TestPipeline_ClearCancelsPendingAndInFlight(t *testing.T) {
	g := newGatedSearcher("batman")
	f := newFixtureWith(t, g, nil)

	f.pipeline.OnInput("batman")
	f.clock.Advance(delay)
	g.waitStarted(t, "batman")

	f.pipeline.OnInput("batman begins")
	f.pipeline.Clear()
	f.clock.Advance(time.Second)
	g.release("batman")
	f.pipeline.Wait()

	s := f.store.State()
	if s.SearchQuery != "" || len(s.Movies) != 0 || s.Loading {
		t.Fatalf("state = %+v, want cleared", s)
	}
	select {
	case q := <-g.started:
		t.Fatalf("pending query %q fired after Clear", q)
	default:
	}
}

func TestPipeline_ClearBeatsTimerAlreadyFiring(t *testing.T) {
	f := newFixture(t)

	f.pipeline.OnInput("batman")
	// The debounce timer has passed its own check and is about to hand
	// this input to the pipeline when Clear runs
	typed := pendingInput{text: "batman", epoch: f.pipeline.epoch}
	f.pipeline.Clear()
	f.pipeline.fire(typed)
	f.pipeline.Wait()

	if n := len(f.server.Requests()); n != 0 {
		t.Fatalf("cleared input sent %d requests", n)
	}
	s := f.store.State()
	if s.SearchQuery != "" || len(s.Movies) != 0 || s.Loading {
		t.Fatalf("state = %+v, want cleared", s)
	}

	// Typing after Clear searches normally
	s = f.typeAndSettle("batman")
	if len(s.Movies) != len(omdbtest.BatmanResults) {
		t.Fatalf("got %d movies after Clear, want %d", len(s.Movies), len(omdbtest.BatmanResults))
	}
}

func TestPipeline_CloseIgnoresInput(t *testing.T) {
	f := newFixture(t)
	f.pipeline.Close()

	f.pipeline.OnInput("batman")
	f.clock.Advance(time.Second)
	f.pipeline.Wait()

	if n := len(f.server.Requests()); n != 0 {
		t.Fatalf("closed pipeline sent %d requests", n)
	}
	if f.store.State().SearchQuery != "" {
		t.Fatal("closed pipeline updated the query")
	}
}
