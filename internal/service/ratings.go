package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
	"github.com/xeipuuv/gojsonschema"
)

// RatingsKey is the single storage key holding the rating map
const RatingsKey = "movieRatings"

// ratingsSchema describes the stored blob: {"<id>": 1..5, ...}
const ratingsSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "integer",
    "minimum": 1,
    "maximum": 5
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func ratingsValidator() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(ratingsSchema))
	})
	return schema, schemaErr
}

// RatingsService mirrors the store's rating map to local storage
type RatingsService struct {
	store   *state.Store
	storage domain.LocalStorage
	logger  *slog.Logger

	mu     sync.Mutex
	detach func()
}

// NewRatingsService creates a new ratings service
func NewRatingsService(store *state.Store, storage domain.LocalStorage, logger *slog.Logger) *RatingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingsService{
		store:   store,
		storage: storage,
		logger:  logger,
	}
}

// Restore loads the persisted rating map into the store. A missing,
// malformed or unreadable value leaves the map empty; it is never fatal.
// Returns the number of ratings restored.
func (s *RatingsService) Restore() int {
	if s.storage == nil {
		s.logger.Warn("no local storage, ratings will not persist")
		return 0
	}

	raw, ok, err := s.storage.GetItem(RatingsKey)
	if err != nil {
		s.logger.Warn("failed to read saved ratings", "error", err)
		return 0
	}
	if !ok {
		return 0
	}

	ratings, err := DecodeRatings(raw)
	if err != nil {
		s.logger.Warn("ignoring saved ratings", "error", err)
		return 0
	}

	s.store.Dispatch(state.LoadRatings{Ratings: ratings})
	s.logger.Debug("restored ratings", "count", len(ratings))
	return len(ratings)
}

// Attach starts persisting the rating map after every rating change.
// Calling it again is a no-op until Detach.
func (s *RatingsService) Attach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detach != nil {
		return
	}
	s.detach = s.store.Subscribe(s.onChange)
}

// Detach stops persisting changes
func (s *RatingsService) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

// Rate assigns rating to the movie id
func (s *RatingsService) Rate(id string, rating int) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidID
	}
	if !domain.ValidRating(rating) {
		return fmt.Errorf("%w (got %d)", domain.ErrInvalidRating, rating)
	}
	s.store.Dispatch(state.SetRating{ID: id, Rating: rating})
	return nil
}

// onChange writes the full post-transition map for rating changes
func (s *RatingsService) onChange(c state.Change) {
	if _, ok := c.Action.(state.SetRating); !ok {
		return
	}
	if c.Prev.UserRatings.Equal(c.Next.UserRatings) {
		return
	}
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(c.Next.UserRatings)
	if err != nil {
		s.logger.Error("failed to encode ratings", "error", err)
		return
	}
	if err := s.storage.SetItem(RatingsKey, string(data)); err != nil {
		s.logger.Error("failed to save ratings", "error", err)
		return
	}
	s.logger.Debug("saved ratings", "count", len(c.Next.UserRatings))
}

// DecodeRatings parses a stored rating blob, rejecting anything that is not
// an object of integer ratings in [1,5]
func DecodeRatings(raw string) (domain.RatingMap, error) {
	validator, err := ratingsValidator()
	if err != nil {
		return nil, fmt.Errorf("ratings schema: %w", err)
	}

	result, err := validator.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("malformed ratings: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, fmt.Errorf("unexpected ratings shape: %s", strings.Join(problems, "; "))
	}

	var ratings domain.RatingMap
	if err := json.Unmarshal([]byte(raw), &ratings); err != nil {
		return nil, fmt.Errorf("malformed ratings: %w", err)
	}
	return ratings, nil
}
