package ais

import "math/bits"

// detector runs Decimation parallel preamble/start-flag hypotheses, one per
// possible symbol phase, against an incoming stream of sign-sliced samples.
// It never reports an error: not finding a preamble is the steady state.
type detector struct {
	preambles   [Decimation]uint32
	priorSample [Decimation]bool
	nextField   int
}

func (d *detector) reset() {
	*d = detector{}
}

// processSample feeds one PCM sample through every phase hypothesis and
// reports whether enough phases matched the preamble to declare lock, plus
// the prior sample of the phase that triggered it (used to seed the
// receiver's NRZI state so the symbol following the flag decodes cleanly).
func (d *detector) processSample(sample int16) (locked bool, seed bool) {
	cur := sample > 0
	i := d.nextField

	prev := d.priorSample[i]
	d.priorSample[i] = cur

	decoded := !(prev != cur) // NRZI: mark (same level) = 1, space (transition) = 0
	d.preambles[i] = (d.preambles[i] << 1) | boolToBit(decoded)

	var nrMatch int
	for j := 0; j < Decimation; j++ {
		if bits.OnesCount32(d.preambles[j]^PreambleRef) <= PreambleTolerance {
			nrMatch++
		}
	}

	if nrMatch >= MinPhaseMatches {
		locked = true
		seed = d.priorSample[i]
	}

	d.nextField = (d.nextField + 1) % Decimation
	return locked, seed
}

func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
