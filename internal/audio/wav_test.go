package audio

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// TestEncodeParseRoundtrip checks that EncodeWAV output parses back to the
// same format and payload.
func TestEncodeParseRoundtrip(t *testing.T) {
	pcm := make([]byte, 24000*2) // one second, mono
	for i := range pcm {
		pcm[i] = byte(i)
	}

	data := EncodeWAV(pcm, 24000, 1)
	info, err := ParseWAV(data)
	if err != nil {
		t.Fatalf("ParseWAV() error = %v", err)
	}

	if info.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("Channels = %d, want 1", info.Channels)
	}
	if info.BitsPerSample != 16 {
		t.Errorf("BitsPerSample = %d, want 16", info.BitsPerSample)
	}
	if len(info.Data) != len(pcm) {
		t.Errorf("Data length = %d, want %d", len(info.Data), len(pcm))
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", info.Duration)
	}
}

// TestParseWAVStereoDuration checks duration math for two channels.
func TestParseWAVStereoDuration(t *testing.T) {
	pcm := make([]byte, 44100*2*2) // one second, stereo
	info, err := ParseWAV(EncodeWAV(pcm, 44100, 2))
	if err != nil {
		t.Fatalf("ParseWAV() error = %v", err)
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", info.Duration)
	}
}

// TestParseWAVErrors checks rejection of malformed or unsupported input.
func TestParseWAVErrors(t *testing.T) {
	valid := EncodeWAV(make([]byte, 64), 24000, 1)

	nonPCM := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(nonPCM[20:22], 3) // IEEE float format tag

	eightBit := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(eightBit[34:36], 8)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, ErrNotWAV},
		{"garbage", []byte("this is not audio at all"), ErrNotWAV},
		{"riff only", []byte("RIFF"), ErrNotWAV},
		{"truncated header", valid[:20], ErrTruncatedWAV},
		{"truncated payload", valid[:len(valid)-10], ErrTruncatedWAV},
		{"non-pcm format", nonPCM, ErrUnsupportedWAV},
		{"8-bit samples", eightBit, ErrUnsupportedWAV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWAV(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseWAV() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestParseWAVSkipsExtraChunks checks that chunks before data are skipped.
func TestParseWAVSkipsExtraChunks(t *testing.T) {
	valid := EncodeWAV(make([]byte, 32), 24000, 1)

	// Splice a LIST chunk between fmt and data.
	list := make([]byte, 8+6)
	copy(list[0:4], "LIST")
	binary.LittleEndian.PutUint32(list[4:8], 6)

	spliced := append([]byte(nil), valid[:36]...)
	spliced = append(spliced, list...)
	spliced = append(spliced, valid[36:]...)
	binary.LittleEndian.PutUint32(spliced[4:8], uint32(len(spliced)-8))

	info, err := ParseWAV(spliced)
	if err != nil {
		t.Fatalf("ParseWAV() error = %v", err)
	}
	if len(info.Data) != 32 {
		t.Errorf("Data length = %d, want 32", len(info.Data))
	}
}
