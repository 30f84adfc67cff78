package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdctools/chunkscope/internal/config"
	"github.com/cdctools/chunkscope/internal/metrics"
	"github.com/cdctools/chunkscope/internal/report"
	"github.com/cdctools/chunkscope/internal/scan"
	"github.com/cdctools/chunkscope/internal/watch"
	"github.com/cdctools/chunkscope/pkg/chunk"
	"github.com/cdctools/chunkscope/pkg/dedup"
)

func newEstimateCmd() *cobra.Command {
	var (
		tail        bool
		metricsAddr string
		watchFlag   bool
		digestFlag  string
	)

	cmd := &cobra.Command{
		Use:   "estimate <dir> <mask-bits | mask-bits-lo-mask-bits-hi>",
		Short: "Report per-file and cross-file dedup ratios for a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			lo, hi, err := parseMaskBitsArg(args[1])
			if err != nil {
				return usageError("%v", err)
			}

			cfg := config.LoadFromEnv()
			cfg.MaskBits, cfg.MaskBitsHi = lo, hi
			cfg.EmitTail = tail || cfg.EmitTail
			if metricsAddr != "" {
				cfg.MetricsAddr = metricsAddr
			}
			cfg.Watch = watchFlag || cfg.Watch
			if digestFlag == "md5" {
				cfg.Digest = chunk.MD5
			}
			if err := cfg.Validate(); err != nil {
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

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if cfg.MetricsAddr != "" {
				go func() {
					if err := metrics.Serve(ctx, cfg.MetricsAddr, Logger); err != nil {
						Logger.Printf("[Metrics] server stopped: %v", err)
					}
				}()
			}

			run := func() {
				if err := runEstimate(cmd.OutOrStdout(), dir, cfg); err != nil {
					Logger.Printf("[Estimate] run failed: %v", err)
				}
			}
			run()

			if cfg.Watch {
				return watch.Loop(ctx, dir, run, Logger)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tail, "tail", false, "emit the final sub-max_chunk remainder of each file instead of dropping it")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "start a Prometheus endpoint at HOST:PORT while the run is in flight")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "re-run the scan whenever the directory changes")
	cmd.Flags().StringVar(&digestFlag, "digest", "sha1", "chunk fingerprint algorithm: sha1 or md5")

	return cmd
}

func runEstimate(w io.Writer, dir string, cfg config.Config) error {
	for _, maskBits := range cfg.MaskBitsRange() {
		chunkCfg, err := chunk.NewConfig(maskBits, cfg.Digest)
		if err != nil {
			return err
		}

		files, err := scan.Dir(dir)
		if err != nil {
			return directoryError("listing %s: %v", dir, err)
		}

		agg := dedup.New()
		var reports []dedup.FileReport

		for _, f := range files {
			start := time.Now()
			result, ok := chunk.ChunkFile(f.Path, chunkCfg, cfg.BufferSize, cfg.EmitTail, Logger)
			if !ok {
				metrics.ObserveFile(start, "io_error")
				continue
			}
			metrics.ObserveFile(start, "ok")
			metrics.ObserveChunks(len(result.Chunks), result.Size)

			codes := make([]chunk.Code, len(result.Chunks))
			for i, c := range result.Chunks {
				codes[i] = c.Code
			}

			r := agg.Process(f.Path, f.Size, maskBits, codes)
			totals := agg.Totals()
			metrics.ObserveDedup(r.SelfBytes, r.GlobalBytes, totals.Size, totals.Self, totals.Global)
			reports = append(reports, r)
		}

		report.WritePreamble(w, chunkCfg, scan.MinFileSize, scan.MaxFileSize)
		report.WriteTable(w, reports, agg.Totals())
	}
	return nil
}


func parseMaskBitsArg(arg string) (lo, hi int, err error) {
	if strings.Contains(arg, "-") {
		parts := strings.SplitN(arg, "-", 2)
		lo, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid mask-bits range %q: %w", arg, err)
		}
		hi, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid mask-bits range %q: %w", arg, err)
		}
		return lo, hi, nil
	}

	lo, err = strconv.Atoi(arg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid mask-bits value %q: %w", arg, err)
	}
	return lo, 0, nil
}
