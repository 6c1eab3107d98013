package search

import (
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/sahilm/fuzzy"
)

// FilterResult is a result-list entry matching a local filter
type FilterResult struct {
	Movie          domain.Movie
	Index          int   // Position in the unfiltered list
	MatchedIndexes []int // Title positions that matched, for highlighting
	Score          int   // Higher is better
}

// movieIndex implements fuzzy.Source over lowercase titles
type movieIndex struct {
	movies      []domain.Movie
	lowerTitles []string
}

func (idx *movieIndex) String(i int) string { return idx.lowerTitles[i] }

func (idx *movieIndex) Len() int { return len(idx.movies) }

// Filter narrows an already-fetched result list by fuzzy title match.
// An empty query keeps every movie in order.
func Filter(query string, movies []domain.Movie) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]FilterResult, len(movies))
		for i, m := range movies {
			results[i] = FilterResult{Movie: m, Index: i}
		}
		return results
	}

	idx := &movieIndex{movies: movies, lowerTitles: make([]string, len(movies))}
	for i, m := range movies {
		idx.lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			Movie:          movies[match.Index],
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}
