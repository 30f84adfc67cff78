package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cdctools/chunkscope/internal/delta"
	"github.com/cdctools/chunkscope/internal/identity"
	"github.com/cdctools/chunkscope/internal/scan"
	"github.com/cdctools/chunkscope/pkg/chunk"
	"github.com/cdctools/chunkscope/pkg/chunkindex"
)

func newOverlapCmd() *cobra.Command {
	var maxPrint int

	cmd := &cobra.Command{
		Use:   "overlap <dir> <mask-bits>",
		Short: "Print chunk-code overlaps across files and estimate a patch size for the largest pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			maskBits, err := strconv.Atoi(args[1])
			if err != nil {
				return usageError("invalid mask-bits %q: %v", args[1], err)
			}

			chunkCfg, err := chunk.NewConfig(maskBits, chunk.SHA1)
			if err != nil {
				return usageError("%v", err)
			}

			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return directoryError("%s is not a readable directory", dir)
			}

			files, err := scan.Dir(dir)
			if err != nil {
				return directoryError("listing %s: %v", dir, err)
			}
			if len(files) == 0 {
				return directoryError("%s: no eligible input files", dir)
			}

			return runOverlap(cmd.OutOrStdout(), files, chunkCfg, maxPrint)
		},
	}

	cmd.Flags().IntVar(&maxPrint, "max", 20, "maximum overlap records to print per file")
	return cmd
}

// pairKey names an unordered pair of files. runOverlap's pairCounts tallies,
// per pair, how many recorded locations in the earlier file matched a chunk
// code of the later one.
type pairKey struct {
	a, b identity.FileID
}

func runOverlap(w io.Writer, files []scan.File, cfg chunk.Config, maxPrint int) error {
	idx := chunkindex.New()
	pairCounts := make(map[pairKey]int)
	filePaths := make(map[identity.FileID]string)

	for _, f := range files {
		result, ok := chunk.ChunkFile(f.Path, cfg, 0, true, Logger)
		if !ok {
			continue
		}

		id, err := identity.ForFile(f.Path, f.Size)
		if err != nil {
			Logger.Printf("[Overlap] skipping %s: %v", f.Path, err)
			continue
		}
		filePaths[id] = f.Path

		codes := make([]chunk.Code, len(result.Chunks))
		for i, c := range result.Chunks {
			codes[i] = c.Code
		}

		records := idx.Overlaps(codes, maxPrint)
		for _, rec := range records {
			fmt.Fprintf(w, "overlap: %s@%d matches %d prior location(s)\n", f.Path, rec.Offset, len(rec.Locations))
			for _, loc := range rec.Locations {
				if loc.File == id {
					continue
				}
				key := pairKeyFor(id, loc.File)
				pairCounts[key]++
			}
		}

		idx.Add(id, codes)
	}

	if len(pairCounts) == 0 {
		fmt.Fprintln(w, "no cross-file chunk overlaps found")
		return nil
	}

	var bestKey pairKey
	best := -1
	for k, n := range pairCounts {
		if n > best {
			best, bestKey = n, k
		}
	}

	oldPath, newPath := filePaths[bestKey.a], filePaths[bestKey.b]
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		Logger.Printf("[Overlap] cannot read %s for patch estimate: %v", oldPath, err)
		return nil
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		Logger.Printf("[Overlap] cannot read %s for patch estimate: %v", newPath, err)
		return nil
	}

	patchSize, err := delta.EstimatePatchSize(oldData, newData)
	if err != nil {
		Logger.Printf("[Overlap] patch estimate failed: %v", err)
		return nil
	}

	fmt.Fprintf(w, "largest overlap: %d chunk(s) between %s and %s\n", best, oldPath, newPath)
	fmt.Fprintf(w, "estimated bsdiff patch: %d bytes\n", patchSize)
	return nil
}

func pairKeyFor(a, b identity.FileID) pairKey {
	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}
