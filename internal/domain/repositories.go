package domain

import (
	"context"
)

// MovieRepository provides read-only access to the external movie database
type MovieRepository interface {
	// Search returns one page of results for a title query.
	// A "no results" answer is returned as a page with Response=false, not an error.
	Search(ctx context.Context, query string, page int) (*SearchPage, error)

	// GetDetails returns the full record for id.
	// Returns an error wrapping ErrMovieNotFound when the service has no such title.
	GetDetails(ctx context.Context, id string) (*MovieDetails, error)
}
