// Package chunk implements content-defined chunking: a rolling-hash anchor
// detector paired with min/max length bounds and a cryptographic chunk
// fingerprint. It is the hot path of chunkscope — every byte of every
// scanned file passes through it, and its anchor positions must be
// bit-identical across runs so that dedup ratios stay reproducible.
package chunk

import "fmt"

// Window is the number of bytes the rolling hash considers at any moment.
// It is constant across all configurations.
const Window = 48

// MinMaskBits and MaxMaskBits bound the accepted mask_bits range.
const (
	MinMaskBits = 6
	MaxMaskBits = 15
)

// maskTable holds the pre-selected 64-bit mask constants per mask_bits.
// These are not computed; they are authoritative values from the chunking
// contract and must not be altered.
var maskTable = map[int]uint64{
	6:  0x0000001010482080,
	7:  0x0000081010482080,
	8:  0x0000821010482080,
	9:  0x0000821110482080,
	10: 0x0000823110482080,
	11: 0x00008A3110482080,
	12: 0x00008A3110483080,
	13: 0x00008A3110583080,
	14: 0x00008A3110583280,
	15: 0x00008A3114583280,
}

// Config is the immutable set of derived values for a chosen mask_bits.
// All fields are fixed at construction time via NewConfig.
type Config struct {
	MaskBits  int
	MaskValue uint64
	MinChunk  int
	MaxChunk  int
	AvgChunk  int
	Digest    DigestAlgo

	// valid is false for a Config built through the zero value; such a
	// Config must never produce anchors (see Valid below).
	valid bool
}

// NewConfig builds a Config for the given mask_bits and digest algorithm.
// mask_bits outside [MinMaskBits, MaxMaskBits] is a configuration error.
func NewConfig(maskBits int, digest DigestAlgo) (Config, error) {
	maskValue, ok := maskTable[maskBits]
	if !ok {
		return Config{}, fmt.Errorf("chunk: mask_bits %d out of range [%d, %d]", maskBits, MinMaskBits, MaxMaskBits)
	}
	if digest != SHA1 && digest != MD5 {
		return Config{}, fmt.Errorf("chunk: unknown digest algorithm %d", digest)
	}

	minChunk := (1 << uint(maskBits)) / 4
	maxChunk := (1 << uint(maskBits)) * 4
	avgChunk := (1 << uint(maskBits)) + minChunk

	if maxChunk > MaxChunkCodeLength {
		// Cannot happen for mask_bits in [6,15] (max_chunk <= 2^17), but
		// the arithmetic bound in the chunk code layout must hold for any
		// config this package ever constructs.
		return Config{}, fmt.Errorf("chunk: max_chunk %d exceeds chunk code length limit %d", maxChunk, MaxChunkCodeLength)
	}

	return Config{
		MaskBits:  maskBits,
		MaskValue: maskValue,
		MinChunk:  minChunk,
		MaxChunk:  maxChunk,
		AvgChunk:  avgChunk,
		Digest:    digest,
		valid:     true,
	}, nil
}

// Valid reports whether c was built by NewConfig with an accepted mask_bits.
// A Config obtained as a zero value (Config{}) is never valid and its
// chunker must emit no anchors.
func (c Config) Valid() bool {
	return c.valid
}
