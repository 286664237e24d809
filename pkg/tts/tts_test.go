package tts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestSpeakerSourceString checks the source labels used in logs.
func TestSpeakerSourceString(t *testing.T) {
	tests := []struct {
		source SpeakerSource
		want   string
	}{
		{SourceCloned, "cloned file"},
		{SourceProvidedID, "provided ID"},
		{SourceDefaultID, "default ID"},
		{SourceUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// TestAudioSave checks persistence including parent directory creation.
func TestAudioSave(t *testing.T) {
	audio := &Audio{Data: []byte("RIFFdata"), SampleRate: 24000, Channels: 1}
	path := filepath.Join(t.TempDir(), "deep", "nested", "out.wav")

	if err := audio.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Saved file unreadable: %v", err)
	}
	if string(data) != "RIFFdata" {
		t.Errorf("Saved data = %q", data)
	}
}

// TestAudioSaveEmpty checks that empty audio is rejected.
func TestAudioSaveEmpty(t *testing.T) {
	audio := &Audio{}
	err := audio.Save(filepath.Join(t.TempDir(), "out.wav"))
	if !errors.Is(err, ErrNoAudioData) {
		t.Errorf("Save() error = %v, want ErrNoAudioData", err)
	}
}
