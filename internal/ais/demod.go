package ais

import "fmt"

// State is the demodulator's coarse operating mode.
type State int

const (
	// StateSearchSync is scanning for a preamble/start-flag lock.
	StateSearchSync State = iota
	// StateReceiving is decimating and de-stuffing a locked burst.
	StateReceiving
)

func (s State) String() string {
	switch s {
	case StateSearchSync:
		return "SEARCH_SYNC"
	case StateReceiving:
		return "RECEIVING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Frame is a CRC-valid AIS HDLC frame handed to a Callback: the payload
// bytes only, FCS stripped. The core does not interpret the payload; six-bit
// de-armoring and message dispatch are the caller's responsibility.
//
// Payload aliases the Demodulator's internal scratch buffer and is valid
// only for the duration of the Callback call, matching the core's no-
// allocation hot path; copy it before returning if the caller needs it
// afterward.
type Frame struct {
	Payload []byte
	Channel any
}

// Callback receives a validated Frame. It runs synchronously inside
// PushSamples and must not call PushSamples on the same Demodulator
// instance it was invoked from.
type Callback func(Frame)

// Demodulator is a single-channel AIS burst receiver. It is bound to a
// channel tag and a delivery callback at construction and driven by
// repeated calls to PushSamples; it keeps no internal buffering beyond its
// fixed per-state scratch and performs no allocation on the hot path.
//
// A Demodulator is not safe for concurrent use; distinct instances are
// fully independent and may be driven by distinct goroutines.
type Demodulator struct {
	state      State
	channel    any
	sampleSkip int
	crcRejects uint64
	frames     uint64
	onMsg      Callback

	det detector
	rx  receiver
}

// NewDemodulator constructs a Demodulator bound to channel (an opaque tag
// returned unmodified on delivered Frames) and onMsg. onMsg must not be nil.
func NewDemodulator(channel any, onMsg Callback) (*Demodulator, error) {
	if onMsg == nil {
		return nil, fmt.Errorf("ais: NewDemodulator: onMsg callback must not be nil")
	}
	return &Demodulator{
		state:   StateSearchSync,
		channel: channel,
		onMsg:   onMsg,
	}, nil
}

// CRCRejects returns the running count of frames that parsed structurally
// but failed CRC validation.
func (d *Demodulator) CRCRejects() uint64 { return d.crcRejects }

// Frames returns the running count of frames delivered to the callback.
func (d *Demodulator) Frames() uint64 { return d.frames }

// State returns the demodulator's current coarse state.
func (d *Demodulator) State() State { return d.state }

// PushSamples feeds a block of signed PCM samples through the demodulator.
// It returns only after every sample has been consumed; the callback, if
// invoked, runs synchronously on the caller's goroutine. samples must not
// be nil.
func (d *Demodulator) PushSamples(samples []int16) error {
	if samples == nil {
		return fmt.Errorf("ais: PushSamples: samples must not be nil")
	}

	i := 0
	n := len(samples)
	for i < n {
		switch d.state {
		case StateSearchSync:
			for ; i < n; i++ {
				if d.handleDetectSample(samples[i]) {
					i++
					break
				}
			}
		case StateReceiving:
			for ; i < n; i++ {
				if d.handleReceiveSample(samples[i]) {
					i++
					break
				}
			}
		default:
			panic(fmt.Sprintf("ais: unreachable demodulator state %v", d.state))
		}
	}
	return nil
}

// handleDetectSample runs one sample through the detector and performs the
// SEARCH_SYNC -> RECEIVING transition on lock. It reports whether a
// transition occurred, so PushSamples can hand the next sample to the new
// state per the dispatcher contract in spec.md S4.4.
func (d *Demodulator) handleDetectSample(sample int16) bool {
	locked, seed := d.det.processSample(sample)
	if !locked {
		return false
	}

	d.rx.reset()
	d.rx.lastSample = seed
	d.sampleSkip = SkipSeed
	d.state = StateReceiving
	return true
}

// handleReceiveSample advances sample_skip and, on every Decimation-th
// sample, hands it to the receiver; on end-of-frame it validates CRC,
// delivers or counts the reject, and performs the RECEIVING -> SEARCH_SYNC
// transition.
func (d *Demodulator) handleReceiveSample(sample int16) bool {
	due := d.sampleSkip%Decimation == 0
	d.sampleSkip++
	if !due {
		return false
	}

	result := d.rx.processSample(sample)
	if !result.done {
		return false
	}

	d.finishFrame(result.packetBytes)
	return true
}

func (d *Demodulator) finishFrame(packetBytes int) {
	if packetBytes >= 4 {
		fcsOffset := packetBytes - 2
		crc := CRC16(d.rx.packet[:fcsOffset])
		rxCRC := uint16(d.rx.packet[fcsOffset]) | uint16(d.rx.packet[fcsOffset+1])<<8

		if crc == rxCRC {
			d.frames++
			d.onMsg(Frame{Payload: d.rx.packet[:fcsOffset], Channel: d.channel})
		} else {
			d.crcRejects++
		}
	}

	d.state = StateSearchSync
	d.sampleSkip = 0
	d.det.reset()
}
