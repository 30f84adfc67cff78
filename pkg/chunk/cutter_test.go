package chunk

import "testing"

func checkContiguous(t *testing.T, results []Result, start int) {
	t.Helper()
	prev := start
	for i, r := range results {
		if r.Offset != prev {
			t.Fatalf("chunk %d: offset %d does not continue from previous end %d", i, r.Offset, prev)
		}
		if r.Length <= 0 {
			t.Fatalf("chunk %d: non-positive length %d", i, r.Length)
		}
		prev = r.Offset + r.Length
	}
}

func TestCutChunksWithinBounds(t *testing.T) {
	cfg, err := NewConfig(6, SHA1)
	if err != nil {
		t.Fatal(err)
	}
	buf := repeatingBuffer(1 << 14)
	c := New(cfg)

	results, _ := c.Cut(buf, 0, len(buf), 0, false)
	if len(results) == 0 {
		t.Fatal("expected at least one chunk")
	}
	checkContiguous(t, results, 0)

	for i, r := range results {
		if r.Length < cfg.MinChunk || r.Length > cfg.MaxChunk {
			t.Fatalf("chunk %d: length %d outside [%d, %d]", i, r.Length, cfg.MinChunk, cfg.MaxChunk)
		}
		if r.Code.Length() != r.Length {
			t.Fatalf("chunk %d: Code.Length() = %d, want %d", i, r.Code.Length(), r.Length)
		}
	}
}

func TestCutWithoutEmitTailLeavesRemainder(t *testing.T) {
	cfg, err := NewConfig(6, SHA1)
	if err != nil {
		t.Fatal(err)
	}
	// A buffer not aligned to any multiple of max_chunk guarantees a
	// trailing remainder shorter than max_chunk.
	buf := repeatingBuffer(cfg.MaxChunk*3 + cfg.MinChunk)
	c := New(cfg)

	results, nextPrev := c.Cut(buf, 0, len(buf), 0, false)
	checkContiguous(t, results, 0)

	remainder := len(buf) - nextPrev
	if remainder >= cfg.MaxChunk {
		t.Fatalf("remainder %d should be shorter than max_chunk %d when emitTail is false", remainder, cfg.MaxChunk)
	}
}

func TestCutWithEmitTailConsumesForcedTail(t *testing.T) {
	cfg, err := NewConfig(6, SHA1)
	if err != nil {
		t.Fatal(err)
	}
	// Choose a length whose final remainder, after forced max_chunk cuts,
	// is still >= min_chunk so emitTail has something to force through.
	buf := repeatingBuffer(cfg.MaxChunk*2 + cfg.MinChunk + 1)
	c := New(cfg)

	results, nextPrev := c.Cut(buf, 0, len(buf), 0, true)
	checkContiguous(t, results, 0)

	if nextPrev != len(buf) {
		t.Fatalf("emitTail=true: nextPrev = %d, want %d (full buffer consumed)", nextPrev, len(buf))
	}
}

func TestCutEmptyRangeProducesNoChunks(t *testing.T) {
	cfg, err := NewConfig(6, SHA1)
	if err != nil {
		t.Fatal(err)
	}
	c := New(cfg)
	results, nextPrev := c.Cut(nil, 0, 0, 0, true)
	if len(results) != 0 {
		t.Fatalf("expected no chunks from an empty range, got %d", len(results))
	}
	if nextPrev != 0 {
		t.Fatalf("expected nextPrev = 0, got %d", nextPrev)
	}
}

func TestCutIsDeterministic(t *testing.T) {
	cfg, err := NewConfig(8, MD5)
	if err != nil {
		t.Fatal(err)
	}
	buf := repeatingBuffer(1 << 15)

	r1, p1 := New(cfg).Cut(buf, 0, len(buf), 0, true)
	r2, p2 := New(cfg).Cut(buf, 0, len(buf), 0, true)

	if p1 != p2 || len(r1) != len(r2) {
		t.Fatalf("Cut is not deterministic: (%d results, prev=%d) vs (%d results, prev=%d)", len(r1), p1, len(r2), p2)
	}
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Fatalf("chunk %d differs between runs: %+v vs %+v", i, r1[i], r2[i])
		}
	}
}
