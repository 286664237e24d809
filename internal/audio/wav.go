// Package audio provides WAV decoding and blocking file playback for
// simplespeak. Playback failures are recoverable by design: the caller
// reports them and moves on.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// WAV parsing errors.
var (
	ErrNotWAV         = errors.New("not a RIFF/WAVE file")
	ErrTruncatedWAV   = errors.New("truncated WAV file")
	ErrUnsupportedWAV = errors.New("unsupported WAV encoding")
)

const (
	// pcmFormat is the WAVE format tag for uncompressed PCM.
	pcmFormat = 1
	// headerSize is the fixed RIFF+fmt+data header length EncodeWAV writes.
	headerSize = 44
)

// WAVInfo holds a decoded WAV file: format parameters plus raw PCM data.
type WAVInfo struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Data          []byte
	Duration      time.Duration
}

// ParseWAV decodes the header of a RIFF/WAVE file and returns its format
// and PCM payload. Only uncompressed 16-bit PCM is supported, which is what
// every engine backend produces.
func ParseWAV(b []byte) (*WAVInfo, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	info := &WAVInfo{}
	sawFmt := false

	// Walk the chunk list; fmt must precede data.
	off := 12
	for off+8 <= len(b) {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		body := off + 8
		if body+size > len(b) {
			return nil, ErrTruncatedWAV
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, ErrTruncatedWAV
			}
			format := binary.LittleEndian.Uint16(b[body : body+2])
			if format != pcmFormat {
				return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWAV, format)
			}
			info.Channels = int(binary.LittleEndian.Uint16(b[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(b[body+4 : body+8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(b[body+14 : body+16]))
			if info.BitsPerSample != 16 {
				return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedWAV, info.BitsPerSample)
			}
			if info.Channels < 1 || info.SampleRate < 1 {
				return nil, fmt.Errorf("%w: invalid fmt chunk", ErrUnsupportedWAV)
			}
			sawFmt = true
		case "data":
			if !sawFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt", ErrUnsupportedWAV)
			}
			info.Data = b[body : body+size]
			info.Duration = pcmDuration(size, info.SampleRate, info.Channels, info.BitsPerSample)
			return info, nil
		}

		// Chunks are word-aligned.
		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	return nil, ErrTruncatedWAV
}

// EncodeWAV wraps 16-bit PCM data in a minimal RIFF/WAVE container.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	blockAlign := channels * 2
	byteRate := sampleRate * blockAlign

	out := make([]byte, headerSize+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], 16)

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[44:], pcm)

	return out
}

// pcmDuration computes playback time for a PCM payload.
func pcmDuration(bytes, sampleRate, channels, bitsPerSample int) time.Duration {
	byteRate := sampleRate * channels * bitsPerSample / 8
	if byteRate <= 0 {
		return 0
	}
	return time.Duration(float64(bytes) / float64(byteRate) * float64(time.Second))
}
