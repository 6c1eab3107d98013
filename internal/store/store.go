package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// bucketLocal holds every key/value pair; the app uses a single key
var bucketLocal = []byte("localStorage")

// ErrUnavailable is returned when the backing database is closed
var ErrUnavailable = errors.New("local storage is unavailable")

// Ensure LocalStore implements domain.LocalStorage at compile time.
var _ domain.LocalStorage = (*LocalStore)(nil)

// LocalStore implements domain.LocalStorage using BoltDB.
// With no path it runs memory-only and nothing survives a restart.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache and closed

	// In-memory cache for reads (promoted on access)
	cache  map[string]string
	closed bool
}

// Open opens (or creates) the store at path. An empty path gives a memory-only store.
func Open(path string) (*LocalStore, error) {
	if path == "" {
		return NewMemory(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	// Timeout bounds the wait on another process holding the file lock
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLocal)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string]string)}, nil
}

// NewMemory returns a memory-only store
func NewMemory() *LocalStore {
	return &LocalStore{cache: make(map[string]string)}
}

// Persistent reports whether values survive a restart
func (s *LocalStore) Persistent() bool {
	return s.db != nil
}

// GetItem returns the value stored under key
func (s *LocalStore) GetItem(key string) (string, bool, error) {
	// Check memory cache first
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return "", false, ErrUnavailable
	}
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false, nil
	}

	// Read from BoltDB
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocal)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = string(v) // copies; v is only valid inside the tx
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if !found {
		return "", false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return value, true, nil
}

// SetItem stores value under key, replacing any previous value
func (s *LocalStore) SetItem(key, value string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrUnavailable
	}
	s.cache[key] = value
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketLocal)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		// Keep cache and disk in agreement
		s.mu.Lock()
		delete(s.cache, key)
		s.mu.Unlock()
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Close releases the database. Further calls return ErrUnavailable.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cache = make(map[string]string)
	s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
