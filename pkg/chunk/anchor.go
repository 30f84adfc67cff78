package chunk

// AnchorFunc yields anchor offsets one at a time in strictly increasing
// order. It returns ok=false once the scan range is exhausted. A lazy
// producer like this keeps peak memory flat on very large buffers; Anchors
// below is a thin wrapper for callers that want the materialized list.
type AnchorFunc func() (offset int, ok bool)

// AnchorIter scans buf[start:end] and returns a lazy producer of anchor
// offsets. An anchor is the offset of the oldest byte in the 48-byte
// window at the moment the rolling hash's masked bits match cfg.MaskValue.
//
// Per the rolling hash's definition, H is updated one byte at a time as
// H = (H << 1) ^ (b & 0xFF); the low 7 and high 7 bits of H are never
// part of any accepted mask, since they correspond to window positions
// that have not yet filled or have already begun to leave the window.
//
// Scan ranges shorter than Window bytes, or an invalid (zero-value)
// Config, produce an iterator that never yields.
func AnchorIter(buf []byte, start, end int, cfg Config) AnchorFunc {
	if !cfg.valid || end-start < Window {
		return func() (int, bool) { return 0, false }
	}

	var h uint64
	pos := start

	// Warm-up: consume the first Window-1 bytes without testing. The
	// window is not full until the Window'th byte is consumed below.
	warmupEnd := start + Window - 1
	for pos < warmupEnd {
		h = (h << 1) ^ uint64(buf[pos])
		pos++
	}

	return func() (int, bool) {
		for pos < end {
			h = (h << 1) ^ uint64(buf[pos])
			anchor := pos - Window + 1
			pos++
			if (h & cfg.MaskValue) == cfg.MaskValue {
				return anchor, true
			}
		}
		return 0, false
	}
}

// Anchors materializes the full list of anchor offsets in buf[start:end].
// It is a convenience wrapper around AnchorIter; the cutter (C2) is
// written against the lazy iterator form, not this one.
func Anchors(buf []byte, start, end int, cfg Config) []int {
	next := AnchorIter(buf, start, end, cfg)
	var out []int
	for {
		off, ok := next()
		if !ok {
			return out
		}
		out = append(out, off)
	}
}
