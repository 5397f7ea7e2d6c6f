package pcmsource

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// wavSource reads a stereo (or mono) PCM WAV capture, left channel feeding
// AIS Channel A, right feeding Channel B.
type wavSource struct {
	f           *os.File
	dec         *wav.Decoder
	numChannels int
	buf         *audio.IntBuffer
}

// OpenWAV opens a WAV capture for streaming.
func OpenWAV(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pcmsource: open %s", path)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, errors.Errorf("pcmsource: %s is not a valid WAV file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "pcmsource: seek to PCM data in %s", path)
	}

	numChannels := int(dec.NumChans)
	s := &wavSource{
		f:           f,
		dec:         dec,
		numChannels: numChannels,
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: numChannels,
				SampleRate:  int(dec.SampleRate),
			},
			Data:           make([]int, ChunkSamples*numChannels),
			SourceBitDepth: int(dec.BitDepth),
		},
	}
	return s, nil
}

func (s *wavSource) SampleRate() int { return int(s.dec.SampleRate) }

func (s *wavSource) Next() (a, b []int16, err error) {
	if s.dec.EOF() {
		return nil, nil, errors.Wrap(io.EOF, "pcmsource: wav capture exhausted")
	}

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return nil, nil, errors.Wrap(err, "pcmsource: read wav PCM buffer")
	}
	if n == 0 {
		return nil, nil, errors.Wrap(io.EOF, "pcmsource: wav capture exhausted")
	}

	a, b = deinterleave(s.buf.Data[:n], s.numChannels)
	return a, b, nil
}

func (s *wavSource) Close() error {
	return s.f.Close()
}
