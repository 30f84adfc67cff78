// Package cli wires chunkscope's cobra commands to the core packages:
// estimate (C4+C5), pack (C6), and overlap (C7).
package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

// Logger is the ambient *log.Logger every subcommand logs through, in the
// bracketed-tag style ("[Scan] ...") used throughout this tool.
var Logger = log.New(os.Stderr, "", log.LstdFlags)

// NewRoot builds the chunkscope root command with every subcommand
// attached.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "chunkscope",
		Short:         "Estimate content-defined dedup ratios and build block-aligned compressed artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEstimateCmd())
	root.AddCommand(newPackCmd())
	root.AddCommand(newOverlapCmd())

	return root
}
