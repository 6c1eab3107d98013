package domain

import "strings"

// NotAvailable is the sentinel OMDb uses for missing fields
const NotAvailable = "N/A"

// Movie is a search result summary
type Movie struct {
	ID     string `json:"imdbID"` // External identifier, e.g. "tt0372784"
	Title  string `json:"Title"`
	Year   string `json:"Year"`   // Year or range ("2005", "2008–2013")
	Type   string `json:"Type"`   // "movie", "series", "episode", "game"
	Poster string `json:"Poster"` // Poster URL or "N/A"
}

// HasPoster returns true if the poster points at an image
func (m Movie) HasPoster() bool {
	return Available(m.Poster)
}

// SourceRating is a rating from an external source (IMDb, Rotten Tomatoes, ...)
type SourceRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// MovieDetails is the full record for a single title.
// It is replaced wholesale on every fetch, never merged.
type MovieDetails struct {
	Movie

	Rated      string         `json:"Rated"`
	Released   string         `json:"Released"`
	Runtime    string         `json:"Runtime"`
	Genre      string         `json:"Genre"` // Comma-joined, e.g. "Action, Crime, Drama"
	Director   string         `json:"Director"`
	Writer     string         `json:"Writer"`
	Actors     string         `json:"Actors"`
	Plot       string         `json:"Plot"`
	Language   string         `json:"Language"`
	Country    string         `json:"Country"`
	Awards     string         `json:"Awards"`
	Ratings    []SourceRating `json:"Ratings"`
	Metascore  string         `json:"Metascore"`
	IMDbRating string         `json:"imdbRating"`
	IMDbVotes  string         `json:"imdbVotes"`
	DVD        string         `json:"DVD"`
	BoxOffice  string         `json:"BoxOffice"`
	Production string         `json:"Production"`
	Website    string         `json:"Website"`
	Response   string         `json:"Response"` // "True" or "False"
}

// Genres splits the comma-joined genre string
func (d MovieDetails) Genres() []string {
	if !Available(d.Genre) {
		return nil
	}
	parts := strings.Split(d.Genre, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// OK reports whether the service flagged the record as found
func (d MovieDetails) OK() bool {
	return d.Response == "True"
}

// SearchPage is one page of search results plus the service status flag
type SearchPage struct {
	Movies       []Movie
	TotalResults int
	Response     bool   // Service status flag
	Error        string // Service message when Response is false
}

// Available returns false for empty and "N/A" values
func Available(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != NotAvailable
}
