package service

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
	"github.com/mmcdole/reel/internal/store"
)

type failingStorage struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStorage) GetItem(string) (string, bool, error) { return "", false, f.getErr }
func (f *failingStorage) SetItem(string, string) error         { f.sets++; return f.setErr }
func (f *failingStorage) Close() error                         { return nil }

func storedRatings(t *testing.T, s domain.LocalStorage) domain.RatingMap {
	t.Helper()
	raw, ok, err := s.GetItem(RatingsKey)
	if err != nil || !ok {
		t.Fatalf("GetItem(%q) = (%q, %v, %v)", RatingsKey, raw, ok, err)
	}
	var m domain.RatingMap
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("stored value %q is not JSON: %v", raw, err)
	}
	return m
}

func TestRatingsService_SetRatingIsPersisted(t *testing.T) {
	st := state.New()
	mem := store.NewMemory()
	svc := NewRatingsService(st, mem, nil)
	svc.Attach()

	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		if err := svc.Rate("tt0372784", r); err != nil {
			t.Fatalf("Rate(%d) returned error: %v", r, err)
		}
		if got := st.State().Rating("tt0372784"); got != r {
			t.Fatalf("state rating = %d, want %d", got, r)
		}
		if got := storedRatings(t, mem)["tt0372784"]; got != r {
			t.Fatalf("stored rating = %d, want %d", got, r)
		}
	}

	// Whole map is written, not just the changed key
	_ = svc.Rate("tt1877830", 2)
	want := domain.RatingMap{"tt0372784": 5, "tt1877830": 2}
	if got := storedRatings(t, mem); !got.Equal(want) {
		t.Fatalf("stored = %#v, want %#v", got, want)
	}
}

func TestRatingsService_RoundTripAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.db")

	disk, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	first := state.New()
	svc := NewRatingsService(first, disk, nil)
	svc.Attach()
	_ = svc.Rate("tt0372784", 4)
	_ = svc.Rate("tt0096895", 1)
	if err := disk.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	disk, err = store.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = disk.Close() })

	second := state.New()
	restored := NewRatingsService(second, disk, nil).Restore()
	if restored != 2 {
		t.Fatalf("Restore() = %d, want 2", restored)
	}
	if got := second.State().UserRatings; !got.Equal(first.State().UserRatings) {
		t.Fatalf("restored %#v, want %#v", got, first.State().UserRatings)
	}
}

func TestRatingsService_RestoreRecoversSilently(t *testing.T) {
	tests := []struct {
		name    string
		storage domain.LocalStorage
	}{
		{"missing key", store.NewMemory()},
		{"not json", withValue(t, "{oops")},
		{"wrong shape", withValue(t, `["tt0372784"]`)},
		{"null", withValue(t, "null")},
		{"out of range", withValue(t, `{"tt0372784": 9}`)},
		{"string rating", withValue(t, `{"tt0372784": "5"}`)},
		{"storage error", &failingStorage{getErr: errors.New("disk gone")}},
		{"no storage", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := state.New()
			if n := NewRatingsService(st, tt.storage, nil).Restore(); n != 0 {
				t.Fatalf("Restore() = %d, want 0", n)
			}
			if len(st.State().UserRatings) != 0 {
				t.Fatalf("UserRatings = %#v, want empty", st.State().UserRatings)
			}
		})
	}
}

func withValue(t *testing.T, raw string) domain.LocalStorage {
	t.Helper()
	mem := store.NewMemory()
	if err := mem.SetItem(RatingsKey, raw); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	return mem
}

func TestRatingsService_OnlyRatingChangesAreWritten(t *testing.T) {
	st := state.New()
	fs := &failingStorage{}
	svc := NewRatingsService(st, fs, nil)
	svc.Attach()
	svc.Attach() // second attach must not double-write

	st.Dispatch(state.SetQuery{Query: "batman"})
	st.Dispatch(state.LoadRatings{Ratings: domain.RatingMap{"tt1": 3}})
	if fs.sets != 0 {
		t.Fatalf("SetItem called %d times for non-rating actions", fs.sets)
	}

	_ = svc.Rate("tt1", 3) // unchanged value
	if fs.sets != 0 {
		t.Fatalf("SetItem called for a no-op rating")
	}

	_ = svc.Rate("tt1", 4)
	if fs.sets != 1 {
		t.Fatalf("SetItem called %d times, want 1", fs.sets)
	}

	svc.Detach()
	_ = svc.Rate("tt1", 5)
	if fs.sets != 1 {
		t.Fatal("SetItem called after Detach")
	}
}

func TestRatingsService_WriteFailureKeepsState(t *testing.T) {
	st := state.New()
	svc := NewRatingsService(st, &failingStorage{setErr: errors.New("read-only")}, nil)
	svc.Attach()

	if err := svc.Rate("tt1", 2); err != nil {
		t.Fatalf("Rate returned error: %v", err)
	}
	if st.State().Rating("tt1") != 2 {
		t.Fatal("state lost the rating after a storage failure")
	}
}

func TestRatingsService_RateValidation(t *testing.T) {
	svc := NewRatingsService(state.New(), store.NewMemory(), nil)

	if err := svc.Rate(" ", 3); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
	for _, r := range []int{0, 6, -2} {
		if err := svc.Rate("tt1", r); !errors.Is(err, domain.ErrInvalidRating) {
			t.Fatalf("Rate(%d) err = %v, want ErrInvalidRating", r, err)
		}
	}
}

func TestDecodeRatings(t *testing.T) {
	got, err := DecodeRatings(`{"tt0372784":5,"tt1877830":1}`)
	if err != nil {
		t.Fatalf("DecodeRatings returned error: %v", err)
	}
	want := domain.RatingMap{"tt0372784": 5, "tt1877830": 1}
	if !got.Equal(want) {
		t.Fatalf("DecodeRatings = %#v, want %#v", got, want)
	}

	empty, err := DecodeRatings(`{}`)
	if err != nil || len(empty) != 0 {
		t.Fatalf("DecodeRatings({}) = (%#v, %v), want empty map", empty, err)
	}
}
