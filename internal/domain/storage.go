package domain

// LocalStorage is a string key/value store scoped to the user profile.
type LocalStorage interface {
	// GetItem returns the value for key and whether it exists
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, overwriting any prior value
	SetItem(key, value string) error

	Close() error
}
