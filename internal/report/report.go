// Package report formats the dedup estimator's console table: a preamble
// describing the chosen chunking parameters, a header row, one row per
// file, and a trailing total row.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cdctools/chunkscope/pkg/chunk"
	"github.com/cdctools/chunkscope/pkg/dedup"
)

// WritePreamble describes the chosen mask bits, derived chunk bounds, and
// the accepted file-size range, before any per-file rows are printed.
func WritePreamble(w io.Writer, cfg chunk.Config, minSize, maxSize int64) {
	fmt.Fprintf(w, "mask_bits=%d  min_chunk=%d  max_chunk=%d  avg_chunk=%d  file_size_range=[%d, %d]\n\n",
		cfg.MaskBits, cfg.MinChunk, cfg.MaxChunk, cfg.AvgChunk, minSize, maxSize)
}

// WriteTable prints one row per report, followed by a totals row, using a
// tab-aligned layout matching the column order spec.md's CLI contract
// names: serial, file_size, bits, avg_chunk, chunks, self_bytes,
// glob_bytes, dedup_ratio%, file_name.
func WriteTable(w io.Writer, reports []dedup.FileReport, totals dedup.Totals) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "serial\tfile_size\tbits\tavg_chunk\tchunks\tself_bytes\tglob_bytes\tdedup_ratio%\tfile_name")

	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.1f (%.1f)\t%d\t%d\t%d\t%.3f\t%s\n",
			r.Serial, r.FileSize, r.MaskBits, r.AvgChunkReported, r.AvgChunkExact,
			r.ChunkCount, r.SelfBytes, r.GlobalBytes, r.DedupRatio*100, r.Path)
	}

	fmt.Fprintf(tw, "total\t%d\t-\t-\t%d\t%d\t%d\t%.3f\t-\n",
		totals.Size, totals.Chunks, totals.Self, totals.Global, totals.DedupRatio()*100)
}
