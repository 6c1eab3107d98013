package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
)

// movieIDPattern matches OMDb/IMDb title identifiers such as tt0372784
var movieIDPattern = regexp.MustCompile(`^tt\d+$`)

// DetailService loads the full record for a selected movie
type DetailService struct {
	repo   domain.MovieRepository
	store  *state.Store
	logger *slog.Logger
}

// NewDetailService creates a new detail service
func NewDetailService(repo domain.MovieRepository, store *state.Store, logger *slog.Logger) *DetailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// ValidID reports whether id looks like a movie identifier
func ValidID(id string) bool {
	return movieIDPattern.MatchString(strings.TrimSpace(id))
}

// Open fetches details for id and makes them the selected movie.
// On failure the current selection is left alone.
func (s *DetailService) Open(ctx context.Context, id string) (*domain.MovieDetails, error) {
	details, err := s.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Select(details)
	return details, nil
}

// Fetch loads details for id without touching the selection. Callers that
// may have moved on while the request was in flight select the result
// themselves once they know it is still wanted.
// Malformed ids fail with domain.ErrInvalidID without touching the network.
func (s *DetailService) Fetch(ctx context.Context, id string) (*domain.MovieDetails, error) {
	id = strings.TrimSpace(id)
	if !ValidID(id) {
		s.logger.Debug("rejected movie id", "id", id)
		return nil, domain.ErrInvalidID
	}

	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load movie details", "id", id, "error", err)
		return nil, err
	}
	return details, nil
}

// Select makes details the selected movie
func (s *DetailService) Select(details *domain.MovieDetails) {
	s.store.Dispatch(state.SetSelected{Movie: details})
}

// Close clears the selected movie
func (s *DetailService) Close() {
	s.store.Dispatch(state.SetSelected{})
}
