package chunk

// Result is one emitted chunk: its byte range within the buffer it was cut
// from, and its packed Code.
type Result struct {
	Offset int
	Length int
	Code   Code
}

// Chunker combines the anchor detector (C1), the cutter (C2), and the
// fingerprint (C3) into the single hot-path operation every scanned byte
// passes through: turning a buffer into an ordered chunk-code sequence.
type Chunker struct {
	cfg      Config
	digester Digester
}

// New builds a Chunker for the given configuration.
func New(cfg Config) *Chunker {
	return &Chunker{cfg: cfg, digester: NewDigester(cfg.Digest)}
}

// Config returns the chunker's configuration.
func (c *Chunker) Config() Config {
	return c.cfg
}

// Cut runs the chunk cutter (C2) over buf[start:end], beginning at prev,
// and returns the ordered chunks it emits along with the offset at which
// processing of subsequent data should resume.
//
// The three rules below are applied, in order, at every step:
//
//  1. If the next anchor is absent or lies farther than MaxChunk past prev,
//     a forced cut is considered at min(prev+MaxChunk, end). A forced cut
//     shorter than MinChunk is never emitted (the trailing remainder is
//     dropped back to the caller as the resume point); a forced cut
//     shorter than MaxChunk is only emitted when emitTail is true.
//  2. Otherwise, if the next anchor is closer than MinChunk past prev, it
//     is discarded and the next anchor is considered instead.
//  3. Otherwise, the chunk [prev, anchor) is emitted and prev advances to
//     the anchor.
//
// Processing stops once the anchor stream is exhausted and rule 1 either
// emits nothing further or has emitted and advanced as far as it can.
func (c *Chunker) Cut(buf []byte, start, end, prev int, emitTail bool) ([]Result, int) {
	next := AnchorIter(buf, start, end, c.cfg)

	var results []Result
	emit := func(chunkStart, length int) {
		code := c.digester.Sum(buf[chunkStart : chunkStart+length])
		results = append(results, Result{
			Offset: chunkStart,
			Length: length,
			Code:   Pack(code, length),
		})
	}

	anchor, haveAnchor := next()
	for {
		if !haveAnchor || anchor-prev > c.cfg.MaxChunk {
			cut := prev + c.cfg.MaxChunk
			if cut > end {
				cut = end
			}
			switch {
			case cut-prev < c.cfg.MinChunk:
				return results, prev
			case cut-prev < c.cfg.MaxChunk && !emitTail:
				return results, prev
			default:
				emit(prev, cut-prev)
				prev = cut
				continue
			}
		}

		if anchor-prev < c.cfg.MinChunk {
			anchor, haveAnchor = next()
			continue
		}

		emit(prev, anchor-prev)
		prev = anchor
		anchor, haveAnchor = next()
	}
}
