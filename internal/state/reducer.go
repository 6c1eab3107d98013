package state

import "github.com/mmcdole/reel/internal/domain"

// State is the application state visible to every view.
// Values are treated as immutable: transitions replace slices and maps
// instead of editing them, so identity comparison detects change.
type State struct {
	Movies        []domain.Movie
	SearchQuery   string
	Loading       bool
	Error         *string
	SelectedMovie *domain.MovieDetails
	UserRatings   domain.RatingMap
}

// Initial returns the empty starting state
func Initial() State {
	return State{
		Movies:      []domain.Movie{},
		UserRatings: domain.RatingMap{},
	}
}

// ErrorText returns the error message or "" when there is none
func (s State) ErrorText() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

// Rating returns the user's rating for id, 0 when unrated
func (s State) Rating(id string) int {
	return s.UserRatings.Get(id)
}

// Reduce returns the state that results from applying a to s.
// It never mutates s and performs no I/O.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.Loading = a.Loading
		if a.Loading {
			s.Error = nil
		}
	case SetResults:
		s.Movies = cloneMovies(a.Movies)
		s.Loading = false
	case SetQuery:
		s.SearchQuery = a.Query
	case SetError:
		s.Error = cloneString(a.Err)
		s.Loading = false
	case SetSelected:
		s.SelectedMovie = a.Movie
	case SetRating:
		if a.ID == "" || !domain.ValidRating(a.Rating) {
			return s
		}
		if cur, ok := s.UserRatings[a.ID]; ok && cur == a.Rating {
			return s
		}
		ratings := make(domain.RatingMap, len(s.UserRatings)+1)
		for id, r := range s.UserRatings {
			ratings[id] = r
		}
		ratings[a.ID] = a.Rating
		s.UserRatings = ratings
	case LoadRatings:
		s.UserRatings = a.Ratings.Clone()
	}
	return s
}

func cloneMovies(movies []domain.Movie) []domain.Movie {
	out := make([]domain.Movie, len(movies))
	copy(out, movies)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
