// Package dedup implements the cross-file deduplication aggregator: it
// consumes each file's chunk-code sequence in sorted-path order and
// classifies every chunk's bytes as self-dedup (repeated within the same
// file), global-dedup (seen in an earlier file), or novel.
package dedup

import (
	"github.com/cdctools/chunkscope/internal/integrity"
	"github.com/cdctools/chunkscope/pkg/chunk"
)

// FileReport is the per-file accounting line produced by Process.
type FileReport struct {
	Serial   int
	Path     string
	FileSize int64
	MaskBits int

	ChunkCount int
	// AvgChunkReported matches the reference's file_size / chunk_count,
	// which folds any unchunked trailing remainder into the numerator.
	AvgChunkReported float64
	// AvgChunkExact is sum(length) / chunk_count, excluding that remainder.
	AvgChunkExact float64

	SelfBytes   int64
	GlobalBytes int64
	// DedupRatio is (SelfBytes + GlobalBytes) / FileSize.
	DedupRatio float64

	// MerkleRoot is the root of a Merkle tree built over the file's chunk
	// codes in order; nil when the file produced no chunks.
	MerkleRoot []byte
}

// Totals accumulates running totals across every file Process has seen.
type Totals struct {
	Size   int64
	Chunks int64
	Self   int64
	Global int64
}

// DedupRatio is (Self + Global) / Size across every processed file.
func (t Totals) DedupRatio() float64 {
	if t.Size == 0 {
		return 0
	}
	return float64(t.Self+t.Global) / float64(t.Size)
}

// Aggregator holds the state C5 threads across files: the global set of
// chunk codes observed in any previously completed file, and running
// totals. Files must be handed to Process in sorted-path order — the
// cross-file classification is order-dependent by design.
type Aggregator struct {
	global map[chunk.Code]struct{}
	totals Totals
	serial int
}

// New returns an empty Aggregator ready to process the first file.
func New() *Aggregator {
	return &Aggregator{global: make(map[chunk.Code]struct{})}
}

// Totals returns the running totals accumulated so far.
func (a *Aggregator) Totals() Totals {
	return a.totals
}

// Process classifies one file's chunk-code sequence and folds it into the
// aggregator's global state and running totals.
//
// For each code in order: if it has already appeared earlier in this same
// file, its bytes count as self-dedup, full stop — the global set is not
// even consulted. Otherwise, this is the chunk's first appearance in the
// file; if it was already in the global set (seen in some earlier file),
// its bytes count as global-dedup. Either way, once a file completes, all
// of its distinct codes join the global set.
func (a *Aggregator) Process(path string, fileSize int64, maskBits int, codes []chunk.Code) FileReport {
	a.serial++

	inFile := make(map[chunk.Code]struct{}, len(codes))
	var self, global int64

	for _, c := range codes {
		length := int64(c.Length())
		if _, seen := inFile[c]; seen {
			self += length
			continue
		}
		inFile[c] = struct{}{}
		if _, known := a.global[c]; known {
			global += length
		}
	}

	for c := range inFile {
		a.global[c] = struct{}{}
	}

	a.totals.Size += fileSize
	a.totals.Chunks += int64(len(codes))
	a.totals.Self += self
	a.totals.Global += global

	report := FileReport{
		Serial:      a.serial,
		Path:        path,
		FileSize:    fileSize,
		MaskBits:    maskBits,
		ChunkCount:  len(codes),
		SelfBytes:   self,
		GlobalBytes: global,
	}
	if len(codes) > 0 {
		report.AvgChunkReported = float64(fileSize) / float64(len(codes))

		var sum int64
		for _, c := range codes {
			sum += int64(c.Length())
		}
		report.AvgChunkExact = float64(sum) / float64(len(codes))
	}
	if fileSize > 0 {
		report.DedupRatio = float64(self+global) / float64(fileSize)
	}

	if root, err := integrity.RootForChunks(codes); err == nil {
		report.MerkleRoot = root
	}

	return report
}
