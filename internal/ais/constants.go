// Package ais implements the AIS (ITU-R M.1371) burst receiver: preamble
// detection, NRZI decode, HDLC de-stuffing and CRC-16 validation over a
// stream of signed 16-bit PCM samples produced by an FM discriminator.
package ais

// Decimation is the number of PCM samples per AIS symbol (9600 baud). The
// reference build samples at 48kHz, five samples per symbol.
const Decimation = 5

// PreambleRef is the 32-bit reference word the detector correlates against:
// the alternating training sequence NRZI-decodes to 0x55555555, and the low
// byte 0x7E is the opening HDLC flag.
const PreambleRef uint32 = 0x5555557E

// PreambleTolerance is the maximum Hamming distance (in bits) a phase
// hypothesis's shift register may differ from PreambleRef and still count
// as a match.
const PreambleTolerance = 2

// MinPhaseMatches is the number of (of Decimation) phase hypotheses that
// must match PreambleRef simultaneously to declare lock.
const MinPhaseMatches = 3

// MaxFrameBits is the hard corruption bound on a received frame: no valid
// AIS frame approaches 5*256 bits, so hitting it means the receiver is
// locked onto noise and should give up and re-search.
const MaxFrameBits = 5 * 256

// SkipSeed is the sample_skip value the dispatcher seeds on lock, an
// empirically chosen half-symbol offset into the following symbol period.
// See DESIGN.md for the open question this pins.
const SkipSeed = 2

// EndFlag is the closing HDLC flag octet 0x7E. The receiver compares it
// against the low byte of its raw (pre-destuffed) 32-bit shift register;
// the upper 24 bits of the register are not compared.
const EndFlag uint32 = 0x7E

// packetCapacityBytes is the scratch buffer size for a received frame,
// exactly MaxFrameBits/8 bytes with no slack, matching the source's 5*256/8
// capacity.
const packetCapacityBytes = MaxFrameBits / 8
