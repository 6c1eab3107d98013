package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reel/internal/domain"
)

// SearchService wraps the movie repository with optional relevance ranking
// and multi-page collection
type SearchService struct {
	repo   domain.MovieRepository
	logger *slog.Logger
	rank   bool
}

// NewSearchService creates a new search service. When rank is set,
// successful pages are re-ordered by title relevance.
func NewSearchService(repo domain.MovieRepository, rank bool, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		repo:   repo,
		logger: logger,
		rank:   rank,
	}
}

// Search returns one page of results for query
func (s *SearchService) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	s.logger.Debug("searching", "query", query, "page", page)

	result, err := s.repo.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}

	if s.rank && result.Response {
		ranked := *result
		ranked.Movies = RankMovies(result.Movies, query)
		return &ranked, nil
	}
	return result, nil
}

// SearchAll collects up to maxPages pages of results. The first page's
// failure envelope is returned as-is; a failure on a later page ends collection.
func (s *SearchService) SearchAll(ctx context.Context, query string, maxPages int) (*domain.SearchPage, error) {
	first, err := s.Search(ctx, query, 1)
	if err != nil || !first.Response {
		return first, err
	}

	movies, err := fetchPages(ctx, func(ctx context.Context, page int) ([]domain.Movie, int, error) {
		if page == 1 {
			return first.Movies, first.TotalResults, nil
		}
		next, err := s.Search(ctx, query, page)
		if err != nil {
			return nil, 0, err
		}
		if !next.Response {
			return nil, 0, nil
		}
		return next.Movies, next.TotalResults, nil
	}, maxPages)
	if err != nil {
		return nil, err
	}

	all := *first
	all.Movies = dedupeMovies(movies)
	s.logger.Debug("search collected", "query", query, "results", len(all.Movies), "total", all.TotalResults)
	return &all, nil
}

// RankMovies returns movies ordered by how well their title matches query.
// Ties keep the service's order.
func RankMovies(movies []domain.Movie, query string) []domain.Movie {
	if len(movies) == 0 {
		return movies
	}

	query = strings.ToLower(strings.TrimSpace(query))

	type rankedMovie struct {
		movie domain.Movie
		score int
	}

	ranked := make([]rankedMovie, 0, len(movies))
	for _, m := range movies {
		ranked = append(ranked, rankedMovie{movie: m, score: matchScore(strings.ToLower(m.Title), query, m)})
	}

	// Sort by score (lower is better)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Movie, len(ranked))
	for i, r := range ranked {
		results[i] = r.movie
	}
	return results
}

// matchScore scores a title against query. Lower is better.
func matchScore(title, query string, m domain.Movie) int {
	// Exact match is best
	if title == query {
		return 0
	}

	var score int
	switch {
	case strings.HasPrefix(title, query):
		score = 10
	case strings.Contains(title, query):
		score = 50
	default:
		score = 100 + fuzzy.LevenshteinDistance(query, title)
	}

	// Films above series/episodes/games for single-word queries
	if len(strings.Fields(query)) == 1 && m.Type == "movie" {
		score -= 5
	}
	return score
}

func dedupeMovies(movies []domain.Movie) []domain.Movie {
	seen := make(map[string]bool, len(movies))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
