package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// MapSearch converts a search response to a domain search page
func MapSearch(resp *SearchResponse) *domain.SearchPage {
	page := &domain.SearchPage{
		Response: isTrue(resp.Response),
		Error:    strings.TrimSpace(resp.Error),
	}
	if !page.Response {
		return page
	}

	page.Movies = make([]domain.Movie, 0, len(resp.Search))
	for _, item := range resp.Search {
		page.Movies = append(page.Movies, MapMovie(item))
	}
	page.TotalResults = parseCount(resp.TotalResults)
	return page
}

// MapMovie converts a search hit to a domain movie
func MapMovie(item SearchItem) domain.Movie {
	return domain.Movie{
		ID:     item.IMDbID,
		Title:  item.Title,
		Year:   item.Year,
		Type:   item.Type,
		Poster: item.Poster,
	}
}

// MapDetails converts a title lookup to domain movie details
func MapDetails(resp *TitleResponse) *domain.MovieDetails {
	ratings := make([]domain.SourceRating, 0, len(resp.Ratings))
	for _, r := range resp.Ratings {
		ratings = append(ratings, domain.SourceRating{Source: r.Source, Value: r.Value})
	}

	return &domain.MovieDetails{
		Movie: domain.Movie{
			ID:     resp.IMDbID,
			Title:  resp.Title,
			Year:   resp.Year,
			Type:   resp.Type,
			Poster: resp.Poster,
		},
		Rated:      resp.Rated,
		Released:   resp.Released,
		Runtime:    resp.Runtime,
		Genre:      resp.Genre,
		Director:   resp.Director,
		Writer:     resp.Writer,
		Actors:     resp.Actors,
		Plot:       resp.Plot,
		Language:   resp.Language,
		Country:    resp.Country,
		Awards:     resp.Awards,
		Ratings:    ratings,
		Metascore:  resp.Metascore,
		IMDbRating: resp.IMDbRating,
		IMDbVotes:  resp.IMDbVotes,
		DVD:        resp.DVD,
		BoxOffice:  resp.BoxOffice,
		Production: resp.Production,
		Website:    resp.Website,
		Response:   resp.Response,
	}
}

func isTrue(flag string) bool {
	return strings.EqualFold(strings.TrimSpace(flag), "true")
}

// parseCount parses OMDb's stringly-typed counts, 0 on garbage
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
