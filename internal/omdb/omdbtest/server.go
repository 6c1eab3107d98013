// Package omdbtest provides an in-process fake of the OMDb API for tests.
package omdbtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/mmcdole/reel/internal/omdb"
)

// APIKey is the key the fake accepts
const APIKey = "test-key"

// BatmanBegins is the detail fixture served for tt0372784
var BatmanBegins = omdb.TitleResponse{
	Title:      "Batman Begins",
	Year:       "2005",
	Rated:      "PG-13",
	Released:   "15 Jun 2005",
	Runtime:    "140 min",
	Genre:      "Action, Crime, Drama",
	Director:   "Christopher Nolan",
	Writer:     "Bob Kane, David S. Goyer, Christopher Nolan",
	Actors:     "Christian Bale, Michael Caine, Ken Watanabe",
	Plot:       "After witnessing his parents' death, Bruce learns the art of fighting to confront injustice.",
	Language:   "English, Mandarin",
	Country:    "United States, United Kingdom",
	Awards:     "Nominated for 1 Oscar. 14 wins & 79 nominations total",
	Poster:     "https://m.media-amazon.com/images/M/batman-begins.jpg",
	Ratings:    []omdb.Rating{{Source: "Internet Movie Database", Value: "8.2/10"}},
	Metascore:  "70",
	IMDbRating: "8.2",
	IMDbVotes:  "1,631,220",
	IMDbID:     "tt0372784",
	Type:       "movie",
	DVD:        "N/A",
	BoxOffice:  "$206,863,479",
	Production: "N/A",
	Website:    "N/A",
	Response:   "True",
}

// BatmanResults is the search fixture served for "batman"
var BatmanResults = []omdb.SearchItem{
	{Title: "Batman Begins", Year: "2005", IMDbID: "tt0372784", Type: "movie", Poster: "https://m.media-amazon.com/images/M/batman-begins.jpg"},
	{Title: "The Batman", Year: "2022", IMDbID: "tt1877830", Type: "movie", Poster: "https://m.media-amazon.com/images/M/the-batman.jpg"},
	{Title: "Batman", Year: "1989", IMDbID: "tt0096895", Type: "movie", Poster: "N/A"},
}

// Server is a fake OMDb endpoint. Handlers can be overridden per query.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	hook     func(r *http.Request)
}

// Request records a received query
type Request struct {
	Search string
	ID     string
	Page   string
	Plot   string
}

// NewServer starts a fake OMDb server that is closed when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Options returns client options pointing at the fake
func (s *Server) Options() omdb.Options {
	return omdb.Options{BaseURL: s.URL + "/", APIKey: APIKey}
}

// OnRequest installs a hook that runs before each response is written.
// Tests use it to block or delay specific queries.
func (s *Server) OnRequest(hook func(r *http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = hook
}

// Requests returns the queries received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Search: q.Get("s"),
		ID:     q.Get("i"),
		Page:   q.Get("page"),
		Plot:   q.Get("plot"),
	})
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		hook(r)
	}

	if q.Get("apikey") != APIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"Response": "False", "Error": "Invalid API key!"})
		return
	}

	if id := q.Get("i"); id != "" {
		if id == BatmanBegins.IMDbID {
			writeJSON(w, http.StatusOK, BatmanBegins)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
		return
	}

	query := strings.ToLower(strings.TrimSpace(q.Get("s")))
	var hits []omdb.SearchItem
	for _, item := range BatmanResults {
		if query != "" && strings.Contains(strings.ToLower(item.Title), query) {
			hits = append(hits, item)
		}
	}
	if len(hits) == 0 {
		writeJSON(w, http.StatusOK, omdb.SearchResponse{Response: "False", Error: "Movie not found!"})
		return
	}
	writeJSON(w, http.StatusOK, omdb.SearchResponse{
		Search:       hits,
		TotalResults: strconv.Itoa(len(hits)),
		Response:     "True",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
