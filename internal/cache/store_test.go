package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestArtifactPathFormat checks the timestamp naming scheme.
func TestArtifactPathFormat(t *testing.T) {
	store := NewStore("/tmp/does-not-matter")
	at := time.Date(2026, 8, 23, 14, 5, 9, 0, time.UTC)

	got := store.ArtifactPath(at)
	want := filepath.Join("/tmp/does-not-matter", "2026-08-23_14-05-09.wav")
	if got != want {
		t.Errorf("ArtifactPath() = %q, want %q", got, want)
	}
}

// TestArtifactPathSameSecond checks that two times within the same second
// map to the same path.
func TestArtifactPathSameSecond(t *testing.T) {
	store := NewStore(t.TempDir())
	at := time.Date(2026, 8, 23, 14, 5, 9, 100, time.UTC)

	first := store.ArtifactPath(at)
	second := store.ArtifactPath(at.Add(500 * time.Millisecond))
	if first != second {
		t.Errorf("Paths differ within one second: %q vs %q", first, second)
	}
}

// TestEnsureDirIdempotent checks that EnsureDir can run repeatedly.
func TestEnsureDirIdempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "cache"))

	for i := 0; i < 2; i++ {
		if err := store.EnsureDir(); err != nil {
			t.Fatalf("EnsureDir() #%d error = %v", i+1, err)
		}
	}

	info, err := os.Stat(store.Dir())
	if err != nil || !info.IsDir() {
		t.Fatalf("Store dir missing after EnsureDir: %v", err)
	}
}

// TestListAndSummary checks artifact enumeration and totals.
func TestListAndSummary(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.EnsureDir(); err != nil {
		t.Fatal(err)
	}

	times := []time.Time{
		time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 23, 10, 0, 1, 0, time.UTC),
		time.Date(2026, 8, 23, 10, 0, 2, 0, time.UTC),
	}
	for i, at := range times {
		data := make([]byte, (i+1)*10)
		if err := os.WriteFile(store.ArtifactPath(at), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Non-artifact files are ignored.
	if err := os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	artifacts, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("List() returned %d artifacts, want 3", len(artifacts))
	}
	for i := 1; i < len(artifacts); i++ {
		if artifacts[i-1].Path >= artifacts[i].Path {
			t.Errorf("Artifacts not sorted: %q before %q", artifacts[i-1].Path, artifacts[i].Path)
		}
	}

	count, total, err := store.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Summary count = %d, want 3", count)
	}
	if total != 60 {
		t.Errorf("Summary total = %d, want 60", total)
	}
}

// TestListMissingDir checks that a missing directory is an error.
func TestListMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"))
	if _, err := store.List(); err == nil {
		t.Error("List() should fail on a missing directory")
	}
}
