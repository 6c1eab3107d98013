package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLocalStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "reel.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if !s.Persistent() {
		t.Fatal("Persistent() = false for a file-backed store")
	}
	if err := s.SetItem("movieRatings", `{"tt0372784":5}`); err != nil {
		t.Fatalf("SetItem returned error: %v", err)
	}
	if err := s.SetItem("movieRatings", `{"tt0372784":3}`); err != nil {
		t.Fatalf("SetItem returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.GetItem("movieRatings")
	if err != nil || !ok {
		t.Fatalf("GetItem = (%q, %v, %v), want stored value", got, ok, err)
	}
	if got != `{"tt0372784":3}` {
		t.Fatalf("GetItem = %q, want last written value", got)
	}
}

func TestLocalStore_MissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "reel.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	v, ok, err := s.GetItem("nope")
	if err != nil || ok || v != "" {
		t.Fatalf("GetItem = (%q, %v, %v), want missing", v, ok, err)
	}
}

func TestLocalStore_MemoryOnly(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.Persistent() {
		t.Fatal("Persistent() = true for memory-only store")
	}
	if err := s.SetItem("k", "v"); err != nil {
		t.Fatalf("SetItem returned error: %v", err)
	}
	if v, ok, _ := s.GetItem("k"); !ok || v != "v" {
		t.Fatalf("GetItem = (%q, %v), want v", v, ok)
	}
}

func TestLocalStore_ClosedIsUnavailable(t *testing.T) {
	s := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	if _, _, err := s.GetItem("k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("GetItem err = %v, want ErrUnavailable", err)
	}
	if err := s.SetItem("k", "v"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("SetItem err = %v, want ErrUnavailable", err)
	}
}

func TestOpen_LockedByAnotherHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = first.Close() })

	if _, err := Open(path); err == nil {
		t.Fatal("second Open succeeded while the file is locked")
	}
}
