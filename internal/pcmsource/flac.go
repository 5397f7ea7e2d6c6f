package pcmsource

import (
	"io"

	"github.com/mewkiz/flac"
	"github.com/pkg/errors"
)

// flacSource reads a stereo (or mono) FLAC capture one frame at a time,
// for operators who archive recordings compressed rather than as raw WAV.
type flacSource struct {
	stream      *flac.Stream
	numChannels int
}

// OpenFLAC opens a FLAC capture for streaming.
func OpenFLAC(path string) (Source, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pcmsource: open %s", path)
	}
	return &flacSource{
		stream:      stream,
		numChannels: int(stream.Info.NChannels),
	}, nil
}

func (s *flacSource) SampleRate() int { return int(s.stream.Info.SampleRate) }

func (s *flacSource) Next() (a, b []int16, err error) {
	f, err := s.stream.ParseNext()
	if err != nil {
		if err == io.EOF {
			return nil, nil, errors.Wrap(io.EOF, "pcmsource: flac capture exhausted")
		}
		return nil, nil, errors.Wrap(err, "pcmsource: parse flac frame")
	}

	n := len(f.Subframes[0].Samples)
	a = make([]int16, n)
	for i, v := range f.Subframes[0].Samples {
		a[i] = int16(v)
	}

	if s.numChannels > 1 && len(f.Subframes) > 1 {
		b = make([]int16, n)
		for i, v := range f.Subframes[1].Samples {
			b[i] = int16(v)
		}
	}

	return a, b, nil
}

func (s *flacSource) Close() error {
	return s.stream.Close()
}
