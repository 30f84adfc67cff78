// Package config holds chunkscope's run configuration: the chunker
// parameters plus the ambient knobs (metrics, watch, buffer size) that sit
// outside the core algorithmic contract.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cdctools/chunkscope/pkg/chunk"
)

// Config is the full set of knobs a chunkscope invocation can carry.
// Only the estimate subcommand builds a Config; pack and overlap take
// their settings from their own flags.
type Config struct {
	// MaskBits selects the chunker configuration. For the estimate
	// subcommand's mask-bits-lo-mask-bits-hi form, MaskBitsHi is set to a
	// value > MaskBits and the caller loops across the range.
	MaskBits   int
	MaskBitsHi int

	// Digest selects the chunk fingerprint algorithm for the whole run.
	Digest chunk.DigestAlgo

	// BufferSize is the file chunker's read buffer size in bytes. Zero
	// means chunk.DefaultBufferSize.
	BufferSize int

	// EmitTail forces the final sub-max_chunk remainder of each file to be
	// chunked and reported, instead of silently dropped (Open Question 1).
	EmitTail bool

	// Format names a C6 compression backend, "gzip" or "xz". Validate
	// checks it; the pack subcommand reads its own --format flag instead.
	Format string

	// MetricsAddr, if non-empty, starts the Prometheus endpoint at this
	// address while the run is in flight.
	MetricsAddr string

	// Watch re-runs the full scan whenever the target directory changes.
	Watch bool

	// MaxOverlap is a per-file cap on reported overlapping codes (0 means
	// no limit). The overlap subcommand reads its own --max flag instead.
	MaxOverlap int
}

// Default returns chunkscope's baseline configuration.
func Default() Config {
	return Config{
		MaskBits:   10,
		Digest:     chunk.SHA1,
		BufferSize: chunk.DefaultBufferSize,
		EmitTail:   false,
		Format:     "gzip",
		MaxOverlap: 20,
	}
}

// LoadFromEnv overlays environment variables onto Default(), following the
// CHUNKSCOPE_* naming convention.
func LoadFromEnv() Config {
	cfg := Default()

	if v := os.Getenv("CHUNKSCOPE_MASK_BITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaskBits = n
		}
	}
	if v := os.Getenv("CHUNKSCOPE_DIGEST"); v != "" {
		if v == "md5" {
			cfg.Digest = chunk.MD5
		} else {
			cfg.Digest = chunk.SHA1
		}
	}
	if v := os.Getenv("CHUNKSCOPE_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BufferSize = n
		}
	}
	if v := os.Getenv("CHUNKSCOPE_EMIT_TAIL"); v != "" {
		cfg.EmitTail = v == "1" || v == "true" || v == "TRUE"
	}
	if v := os.Getenv("CHUNKSCOPE_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CHUNKSCOPE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("CHUNKSCOPE_WATCH"); v != "" {
		cfg.Watch = v == "1" || v == "true" || v == "TRUE"
	}

	return cfg
}

// Validate checks the configuration, in the order a caller would want to
// see the first problem reported.
func (c Config) Validate() error {
	if c.MaskBits < chunk.MinMaskBits || c.MaskBits > chunk.MaxMaskBits {
		return fmt.Errorf("mask_bits %d out of range [%d, %d]", c.MaskBits, chunk.MinMaskBits, chunk.MaxMaskBits)
	}
	if c.MaskBitsHi != 0 {
		if c.MaskBitsHi < c.MaskBits || c.MaskBitsHi > chunk.MaxMaskBits {
			return fmt.Errorf("mask_bits_hi %d must be in [%d, %d]", c.MaskBitsHi, c.MaskBits, chunk.MaxMaskBits)
		}
	}
	if c.Digest != chunk.SHA1 && c.Digest != chunk.MD5 {
		return fmt.Errorf("unknown digest algorithm %d", c.Digest)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size must be non-negative, got %d", c.BufferSize)
	}
	if c.Format != "gzip" && c.Format != "xz" {
		return fmt.Errorf("invalid format %q (must be 'gzip' or 'xz')", c.Format)
	}
	return nil
}

// MaskBitsRange expands MaskBits/MaskBitsHi into the inclusive list of
// mask_bits values a run should cover.
func (c Config) MaskBitsRange() []int {
	if c.MaskBitsHi == 0 || c.MaskBitsHi == c.MaskBits {
		return []int{c.MaskBits}
	}
	out := make([]int, 0, c.MaskBitsHi-c.MaskBits+1)
	for b := c.MaskBits; b <= c.MaskBitsHi; b++ {
		out = append(out, b)
	}
	return out
}
