// Package cmd implements the redymo CLI surface: the cobra command tree.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "redymo",
	Short: "Discrete-event stochastic simulator of eukaryotic DNA replication",
	Long: "redymo simulates, across many independent cells, how replication " +
		"origins fire along chromosomes and how bidirectional forks extend " +
		"until collision or chromosome end, producing per-base replication " +
		"timestamps for downstream replication-timing analysis.",
}

// Execute runs the root command, exiting the process with a nonzero status
// on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
