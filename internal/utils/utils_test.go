package utils

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

// TestExpandPath checks tilde and environment variable expansion.
func TestExpandPath(t *testing.T) {
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SPEAK_TEST_DIR", "voices")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain path", "/tmp/a.wav", "/tmp/a.wav"},
		{"tilde", "~/a.wav", filepath.Join(home, "a.wav")},
		{"env var", "/data/$SPEAK_TEST_DIR/a.wav", "/data/voices/a.wav"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
