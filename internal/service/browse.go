package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// imdbTitleURL is the public page for a title
const imdbTitleURL = "https://www.imdb.com/title/%s/"

// ErrNoPoster is returned when a record has no poster image
var ErrNoPoster = errors.New("no poster available")

// launcher abstracts opening a URL (consumer-defined interface)
type launcher interface {
	Launch(url string) error
}

// BrowseService opens a movie's external pages
type BrowseService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewBrowseService creates a new browse service
func NewBrowseService(launcher launcher, logger *slog.Logger) *BrowseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowseService{launcher: launcher, logger: logger}
}

// IMDbURL returns the IMDb page for id
func IMDbURL(id string) string {
	return fmt.Sprintf(imdbTitleURL, strings.TrimSpace(id))
}

// OpenIMDb opens the IMDb page for id
func (s *BrowseService) OpenIMDb(id string) error {
	if !ValidID(id) {
		return domain.ErrInvalidID
	}
	url := IMDbURL(id)
	s.logger.Info("opening imdb page", "id", id, "url", url)
	return s.launcher.Launch(url)
}

// OpenPoster opens the poster image for m
func (s *BrowseService) OpenPoster(m domain.Movie) error {
	if !m.HasPoster() {
		return ErrNoPoster
	}
	s.logger.Info("opening poster", "id", m.ID, "url", m.Poster)
	return s.launcher.Launch(strings.TrimSpace(m.Poster))
}
