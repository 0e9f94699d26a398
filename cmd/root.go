// Package cmd defines and implements the CLI commands for the kbfetch
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kbfetch",
		Short: "Downloads genome objects from a KBase narrative.",
		Long: `kbfetch authenticates against the KBase platform, lists the genome
objects contained in a narrative's backing workspace, and downloads each one
in GenBank, GFF or protein FASTA format. Successfully processed genomes are
recorded in a manifest file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file overriding service endpoints and output settings")

	cmd.AddCommand(newDownloadCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
