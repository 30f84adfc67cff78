package chunk

import (
	"io"
	"log"
	"os"
)

// DefaultBufferSize is the read buffer FileChunker uses when the caller
// does not supply one. It comfortably exceeds MaxChunk for every accepted
// mask_bits, so a single forced cut never spans more than one fill.
const DefaultBufferSize = 4 << 20

// FileResult is the output of chunking one file end to end: its full chunk
// sequence in file order, and the number of bytes that sequence covers.
type FileResult struct {
	Path   string
	Size   int64
	Chunks []Result
}

// ChunkFile streams path through a Chunker, re-reading the cutter's
// unconsumed remainder as the prefix of the next fill. Because anchor
// detection depends only on the 48 bytes immediately behind any given
// position, this reproduces exactly the anchors a single in-memory pass
// over the whole file would find.
//
// emitTail controls only the final read's end-of-stream flush. The
// reference tool never flushes the final sub-max_chunk remainder, so by
// default ChunkFile matches that and silently drops it; callers that need
// every byte accounted for (the packer, notably) pass emitTail=true.
//
// Any I/O failure is logged to logger in place and reported back as
// ok=false; it is never returned as an error to the caller, since a single
// unreadable file must not abort the run.
func ChunkFile(path string, cfg Config, bufferSize int, emitTail bool, logger *log.Logger) (FileResult, bool) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if bufferSize < cfg.MaxChunk*2 {
		bufferSize = cfg.MaxChunk * 2
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Printf("[Chunk] skipping %s: %v", path, err)
		return FileResult{}, false
	}
	defer f.Close()

	buf := make([]byte, bufferSize)
	chunker := New(cfg)
	result := FileResult{Path: path}

	filled := 0
	var base int64
	prev := 0

	for {
		n, rerr := io.ReadFull(f, buf[filled:])
		filled += n
		eof := rerr == io.EOF || rerr == io.ErrUnexpectedEOF
		if rerr != nil && !eof {
			logger.Printf("[Chunk] read error on %s at offset %d: %v", path, base+int64(filled), rerr)
			return FileResult{}, false
		}

		chunks, nextPrev := chunker.Cut(buf, 0, filled, prev, eof && emitTail)
		if !eof {
			// Anchors past filled-Window are not visible in this fill, so a
			// forced cut ending beyond that point may have skipped one. Hold
			// such trailing chunks back for the next fill.
			for len(chunks) > 0 {
				last := chunks[len(chunks)-1]
				if last.Offset+last.Length <= filled-Window {
					break
				}
				chunks = chunks[:len(chunks)-1]
				nextPrev = last.Offset
			}
		}
		for _, r := range chunks {
			r.Offset += int(base)
			result.Chunks = append(result.Chunks, r)
			result.Size += int64(r.Length)
		}

		if eof {
			break
		}

		remainder := filled - nextPrev
		if remainder == len(buf) {
			logger.Printf("[Chunk] skipping %s: buffer size %d too small for max_chunk %d", path, len(buf), cfg.MaxChunk)
			return FileResult{}, false
		}
		copy(buf[0:remainder], buf[nextPrev:filled])
		base += int64(nextPrev)
		filled = remainder
		prev = 0
	}

	return result, true
}
