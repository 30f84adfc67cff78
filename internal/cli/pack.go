package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cdctools/chunkscope/internal/scan"
	"github.com/cdctools/chunkscope/pkg/chunk"
	"github.com/cdctools/chunkscope/pkg/packer"
)

func newPackCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "pack <file-or-dir> <mask-bits>",
		Short: "Rebuild each input as a block-aligned compressed artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			maskBits, err := strconv.Atoi(args[1])
			if err != nil {
				return usageError("invalid mask-bits %q: %v", args[1], err)
			}

			chunkCfg, err := chunk.NewConfig(maskBits, chunk.SHA1)
			if err != nil {
				return usageError("%v", err)
			}

			if format != "gzip" && format != "xz" {
				return usageError("invalid --format %q (must be gzip or xz)", format)
			}

			files, err := scan.Target(target)
			if err != nil {
				return directoryError("%s: %v", target, err)
			}
			if len(files) == 0 {
				return directoryError("%s: no eligible input files", target)
			}

			for _, f := range files {
				if err := packFile(f.Path, maskBits, chunkCfg, format); err != nil {
					Logger.Printf("[Pack] skipping %s: %v", f.Path, err)
					continue
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "gzip", "compression backend: gzip or xz")
	return cmd
}

func packFile(path string, maskBits int, cfg chunk.Config, format string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ext := "gz"
	if format == "xz" {
		ext = "xz"
	}
	outPath := fmt.Sprintf("%s.pack-%dbits.%s", path, maskBits, ext)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	var sink packer.Sink
	if format == "xz" {
		sink, err = packer.NewXZSink(out)
	} else {
		sink, err = packer.NewGzipSink(out, 0)
	}
	if err != nil {
		return err
	}

	stats, err := packer.Pack(data, cfg, sink)
	if err != nil {
		return err
	}

	Logger.Printf("[Pack] %s -> %s (%d chunks, %d bytes)", path, outPath, stats.ChunkCount, stats.BytesWritten)
	return nil
}
