package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jverlinden/treecompare/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "treecompare",
		Short: "Directory-level comparison reports for large file trees",
		Long: `treecompare compares the contents of two file trees, local or remote,
by driving a dry-run rsync probe and aggregating its output per parent
directory. It produces a bounded, deterministic report suitable for
auditing backups, NAS mirrors, and migration targets at scale.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
