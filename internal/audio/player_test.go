package audio

import (
	"errors"
	"testing"
)

// TestNewUnknownBackend checks that unknown backend names are rejected.
func TestNewUnknownBackend(t *testing.T) {
	_, err := New("gramophone")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New() error = %v, want ErrUnknownBackend", err)
	}
}

// TestNewAutoBackend checks that auto mode defers backend selection.
func TestNewAutoBackend(t *testing.T) {
	p, err := New("auto")
	if err != nil {
		t.Fatalf("New(auto) error = %v", err)
	}
	if p.Name() != "auto" {
		t.Errorf("Name() = %q, want auto before first playback", p.Name())
	}
}

// TestPlayerCandidates checks the per-OS candidate tables.
func TestPlayerCandidates(t *testing.T) {
	tests := []struct {
		goos  string
		first string
		count int
	}{
		{"darwin", "afplay", 2},
		{"windows", "ffplay", 1},
		{"linux", "paplay", 3},
		{"freebsd", "paplay", 3},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got := playerCandidates(tt.goos)
			if len(got) != tt.count {
				t.Fatalf("len = %d, want %d", len(got), tt.count)
			}
			if got[0].binary != tt.first {
				t.Errorf("first candidate = %s, want %s", got[0].binary, tt.first)
			}
		})
	}
}

// TestOtoPlayerName checks the backend name.
func TestOtoPlayerName(t *testing.T) {
	p, err := NewOtoPlayer()
	if err != nil {
		t.Fatalf("NewOtoPlayer() error = %v", err)
	}
	if p.Name() != "oto" {
		t.Errorf("Name() = %q, want oto", p.Name())
	}
}
