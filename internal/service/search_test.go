package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

// pagedRepo serves total fake results, ten per page
type pagedRepo struct {
	total int
	calls []int
	fail  int // page that returns a transport error
}

func (r *pagedRepo) Search(_ context.Context, _ string, page int) (*domain.SearchPage, error) {
	r.calls = append(r.calls, page)
	if page == r.fail {
		return nil, errors.New("Failed to fetch movies")
	}
	start := (page - 1) * pageSize
	if start >= r.total {
		return &domain.SearchPage{Response: false, Error: "Movie not found!"}, nil
	}
	end := min(start+pageSize, r.total)
	movies := make([]domain.Movie, 0, end-start)
	for i := start; i < end; i++ {
		movies = append(movies, domain.Movie{ID: fmt.Sprintf("tt%07d", i), Title: fmt.Sprintf("Movie %d", i)})
	}
	return &domain.SearchPage{Movies: movies, TotalResults: r.total, Response: true}, nil
}

func (r *pagedRepo) GetDetails(context.Context, string) (*domain.MovieDetails, error) {
	return nil, domain.ErrMovieNotFound
}

func TestSearchService_SearchAllStopsAtTotal(t *testing.T) {
	repo := &pagedRepo{total: 25}
	svc := NewSearchService(repo, false, nil)

	page, err := svc.SearchAll(context.Background(), "batman", 10)
	if err != nil {
		t.Fatalf("SearchAll returned error: %v", err)
	}
	if len(page.Movies) != 25 {
		t.Fatalf("collected %d movies, want 25", len(page.Movies))
	}
	if len(repo.calls) != 3 {
		t.Fatalf("pages fetched = %v, want 3", repo.calls)
	}
}

func TestSearchService_SearchAllRespectsMaxPages(t *testing.T) {
	repo := &pagedRepo{total: 100}
	svc := NewSearchService(repo, false, nil)

	page, err := svc.SearchAll(context.Background(), "batman", 2)
	if err != nil {
		t.Fatalf("SearchAll returned error: %v", err)
	}
	if len(page.Movies) != 20 || page.TotalResults != 100 {
		t.Fatalf("got %d movies (total %d), want 20 of 100", len(page.Movies), page.TotalResults)
	}
}

func TestSearchService_SearchAllFirstPageFailure(t *testing.T) {
	svc := NewSearchService(&pagedRepo{total: 0}, false, nil)

	page, err := svc.SearchAll(context.Background(), "zzzqqqxxx123", 3)
	if err != nil {
		t.Fatalf("SearchAll returned error: %v", err)
	}
	if page.Response || page.Error != "Movie not found!" {
		t.Fatalf("page = %#v, want failure envelope", page)
	}
}

func TestSearchService_SearchAllLaterPageError(t *testing.T) {
	svc := NewSearchService(&pagedRepo{total: 30, fail: 2}, false, nil)

	if _, err := svc.SearchAll(context.Background(), "batman", 3); err == nil {
		t.Fatal("SearchAll returned nil error when page 2 failed")
	}
}

func TestSearchService_SearchAllCancelled(t *testing.T) {
	svc := NewSearchService(&pagedRepo{total: 30}, false, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.SearchAll(ctx, "batman", 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRankMovies(t *testing.T) {
	movies := []domain.Movie{
		{ID: "1", Title: "Batman: The Animated Series", Type: "series"},
		{ID: "2", Title: "The Batman", Type: "movie"},
		{ID: "3", Title: "Batman", Type: "movie"},
		{ID: "4", Title: "Batman Begins", Type: "movie"},
		{ID: "5", Title: "Robin", Type: "movie"},
	}

	got := RankMovies(movies, "Batman")
	want := []string{"3", "4", "1", "2", "5"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("rank %d = %s (%s), want %s", i, got[i].ID, got[i].Title, id)
		}
	}
	if movies[0].ID != "1" {
		t.Fatal("RankMovies reordered its input")
	}
}

func TestSearchService_RankingOnlyWhenEnabled(t *testing.T) {
	repo := &pagedRepo{total: 3}
	ranked := NewSearchService(repo, true, nil)

	page, err := ranked.Search(context.Background(), "movie 2", 1)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if page.Movies[0].Title != "Movie 2" {
		t.Fatalf("first = %q, want exact match first", page.Movies[0].Title)
	}

	plain := NewSearchService(repo, false, nil)
	page, _ = plain.Search(context.Background(), "movie 2", 1)
	if page.Movies[0].Title != "Movie 0" {
		t.Fatalf("first = %q, want service order", page.Movies[0].Title)
	}
}
