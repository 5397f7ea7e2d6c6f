// Package pcmsource turns recorded capture files into the two independent
// signed 16-bit PCM sample streams the AIS demodulators expect, standing in
// for the FM discriminator hardware spec.md deliberately excludes.
package pcmsource

import (
	"strings"

	"github.com/pkg/errors"
)

// ChunkSamples is the per-channel block size the WAV source reads and hands
// back per Next call, chosen generously above Decimation so a single chunk
// always spans several AIS symbol periods. The FLAC source does not use it:
// it hands back one decoded FLAC frame per Next call.
const ChunkSamples = 48000

// Source streams the left/right discriminator channels of a capture file.
// Left feeds the Channel-A demodulator, right feeds Channel-B; a mono
// capture is returned on channel A only, with channel B left empty.
//
// Next returns io.EOF (wrapped) once the capture is exhausted. A Source is
// not safe for concurrent use.
type Source interface {
	// SampleRate returns the capture's sample rate in Hz.
	SampleRate() int
	// Next returns the next chunk of each channel's samples, or an error
	// wrapping io.EOF when the capture is exhausted.
	Next() (a, b []int16, err error)
	// Close releases the underlying file handle.
	Close() error
}

// Open opens path, selecting a decoder by file extension (.wav or .flac).
func Open(path string) (Source, error) {
	switch ext := strings.ToLower(extOf(path)); ext {
	case ".wav":
		return OpenWAV(path)
	case ".flac":
		return OpenFLAC(path)
	default:
		return nil, errors.Errorf("pcmsource: unsupported capture extension %q", ext)
	}
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

// deinterleave splits an interleaved multi-channel int buffer into the left
// and right channel streams. Samples beyond 2 channels are ignored; a mono
// buffer is returned entirely on the left channel.
func deinterleave(data []int, numChannels int) (a, b []int16) {
	if numChannels <= 1 {
		a = make([]int16, len(data))
		for i, s := range data {
			a[i] = int16(s)
		}
		return a, nil
	}

	n := len(data) / numChannels
	a = make([]int16, n)
	b = make([]int16, n)
	for i := 0; i < n; i++ {
		a[i] = int16(data[i*numChannels])
		b[i] = int16(data[i*numChannels+1])
	}
	return a, b
}
