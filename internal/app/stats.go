package app

import (
	"sync"

	"gonum.org/v1/gonum/stat"
)

// statSnapshot is a point-in-time copy of one Demodulator's counters.
type statSnapshot struct {
	channel    string
	frames     uint64
	crcRejects uint64
}

func rejectRate(s statSnapshot) float64 {
	total := s.frames + s.crcRejects
	if total == 0 {
		return 0
	}
	return float64(s.crcRejects) / float64(total)
}

// rollingRejectRate keeps the last windowSize reject-rate samples for one
// channel and reports a smoothed mean across them, so a single noisy
// 30-second window doesn't dominate the reported trend.
type rollingRejectRate struct {
	mu         sync.Mutex
	windowSize int
	samples    []float64
}

func newRollingRejectRate(windowSize int) *rollingRejectRate {
	return &rollingRejectRate{windowSize: windowSize}
}

// Add records s's reject rate and returns the mean over the retained
// window.
func (r *rollingRejectRate) Add(s statSnapshot) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = append(r.samples, rejectRate(s))
	if len(r.samples) > r.windowSize {
		r.samples = r.samples[len(r.samples)-r.windowSize:]
	}

	return stat.Mean(r.samples, nil)
}
