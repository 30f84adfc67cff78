// Package packer implements the block-aligned compressor driver (C6): it
// feeds each chunk's bytes to a deflate-family sink and flushes after every
// chunk, so two inputs that share content-defined chunks produce
// byte-identical compressed blocks for those chunks.
package packer

import (
	"github.com/cdctools/chunkscope/pkg/chunk"
)

// Sink is an output stream that can terminate its current compressed block
// on demand without ending the stream. Both backends in this package
// (GzipSink, XZSink) implement it.
type Sink interface {
	Write(p []byte) (int, error)
	// Flush terminates the current compressed block; the stream remains
	// open for further writes.
	Flush() error
	// Close finalizes the stream. No further writes are valid afterward.
	Close() error
}

// Stats reports what Pack did, for callers that want to verify block
// alignment (scenario S6: block count must equal chunk count).
type Stats struct {
	ChunkCount  int
	BytesWritten int64
}

// Pack computes the full chunk list for buf with emit_tail=true — unlike
// the dedup estimator's default, C6 force-emits a trailing remainder once
// it reaches min_chunk rather than dropping it — and streams each chunk's
// bytes into sink, flushing after every one. A final remainder shorter
// than min_chunk is still dropped by the cutter's forced-cut rule, so the
// round trip is exact only when that remainder is empty or ≥ min_chunk.
func Pack(buf []byte, cfg chunk.Config, sink Sink) (Stats, error) {
	chunks, _ := chunk.New(cfg).Cut(buf, 0, len(buf), 0, true)

	var stats Stats
	for _, c := range chunks {
		n, err := sink.Write(buf[c.Offset : c.Offset+c.Length])
		stats.BytesWritten += int64(n)
		if err != nil {
			return stats, err
		}
		if err := sink.Flush(); err != nil {
			return stats, err
		}
		stats.ChunkCount++
	}

	if err := sink.Close(); err != nil {
		return stats, err
	}
	return stats, nil
}
