package state

import "github.com/mmcdole/reel/internal/domain"

// Action is a state transition request. The set of actions is closed:
// only the types in this file implement it.
type Action interface {
	isAction()
}

// SetLoading toggles the loading flag. Starting to load clears any error.
type SetLoading struct {
	Loading bool
}

// SetResults replaces the result list and ends loading
type SetResults struct {
	Movies []domain.Movie
}

// SetQuery replaces the search query text
type SetQuery struct {
	Query string
}

// SetError replaces the error message (nil clears it) and ends loading
type SetError struct {
	Err *string
}

// SetSelected replaces the selected movie details (nil clears them)
type SetSelected struct {
	Movie *domain.MovieDetails
}

// SetRating assigns a 1-5 rating to a movie
type SetRating struct {
	ID     string
	Rating int
}

// LoadRatings replaces the whole rating map, typically from storage at startup
type LoadRatings struct {
	Ratings domain.RatingMap
}

func (SetLoading) isAction()  {}
func (SetResults) isAction()  {}
func (SetQuery) isAction()    {}
func (SetError) isAction()    {}
func (SetSelected) isAction() {}
func (SetRating) isAction()   {}
func (LoadRatings) isAction() {}

// ErrorMessage builds a SetError for msg
func ErrorMessage(msg string) SetError {
	return SetError{Err: &msg}
}

// ClearError builds a SetError that clears the message
func ClearError() SetError {
	return SetError{}
}
