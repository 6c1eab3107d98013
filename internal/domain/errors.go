package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrMovieNotFound indicates the service has no record for the requested ID
	ErrMovieNotFound = errors.New("Movie not found")

	// ErrServiceUnavailable indicates a transport failure or non-success HTTP status
	ErrServiceUnavailable = errors.New("movie service is unreachable")

	// ErrInvalidID indicates a malformed movie identifier
	ErrInvalidID = errors.New("Invalid movie ID")

	// ErrInvalidRating indicates a rating outside 1-5
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
