// Package cache manages the directory of generated audio artifacts. Files
// are named by a second-resolution timestamp, are never deduplicated, and
// are never cleaned up by simplespeak.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// artifactTimeFormat names artifacts as 2006-01-02_15-04-05.wav.
const artifactTimeFormat = "2006-01-02_15-04-05"

// artifactExt is the extension of every generated artifact.
const artifactExt = ".wav"

// Store is the on-disk artifact store. It owns one directory and the
// timestamp naming scheme; it never touches file contents.
type Store struct {
	dir string
}

// Artifact describes one generated audio file.
type Artifact struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// NewStore creates a store rooted at dir. The directory is not created
// until EnsureDir is called.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir idempotently creates the store directory.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", s.dir, err)
	}
	return nil
}

// ArtifactPath returns the artifact path for time t. Naming is second
// resolution, so two requests within the same second map to the same path
// and the later write overwrites the earlier one; a warning is logged when
// that is about to happen.
func (s *Store) ArtifactPath(t time.Time) string {
	path := filepath.Join(s.dir, t.Format(artifactTimeFormat)+artifactExt)
	if _, err := os.Stat(path); err == nil {
		log.Warn("Artifact from the same second exists and will be overwritten", "path", path)
	}
	return path
}

// List returns the artifacts in the store, ordered by name (and therefore
// by timestamp).
func (s *Store) List() ([]Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory %s: %w", s.dir, err)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != artifactExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Path:    filepath.Join(s.dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Path < artifacts[j].Path
	})
	return artifacts, nil
}

// Summary returns the artifact count and total size of the store.
func (s *Store) Summary() (int, int64, error) {
	artifacts, err := s.List()
	if err != nil {
		return 0, 0, err
	}
	var total int64
	for _, a := range artifacts {
		total += a.Size
	}
	return len(artifacts), total, nil
}
