package domain

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// RatingMap maps a movie ID to the user's 1-5 star rating.
// A missing key means unrated.
type RatingMap map[string]int

// ValidRating reports whether r is within [MinRating, MaxRating]
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Get returns the rating for id, 0 if unrated
func (m RatingMap) Get(id string) int {
	return m[id]
}

// Clone returns an independent copy. Entries outside the valid range are dropped.
func (m RatingMap) Clone() RatingMap {
	out := make(RatingMap, len(m))
	for id, r := range m {
		if id == "" || !ValidRating(r) {
			continue
		}
		out[id] = r
	}
	return out
}

// Equal reports whether both maps hold the same ratings
func (m RatingMap) Equal(other RatingMap) bool {
	if len(m) != len(other) {
		return false
	}
	for id, r := range m {
		if o, ok := other[id]; !ok || o != r {
			return false
		}
	}
	return true
}
