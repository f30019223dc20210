package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time with
// -ldflags "-X main.Version=...".
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "benchmarks",
		Short: "Declarative benchmark execution and evaluation",
		Long: `Benchmarks runs declarative benchmark suites: counters are
declared up front, trials are executed sequentially, per-counter
statistics are aggregated across trials, and threshold assertions
are evaluated into a pass/fail report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the benchmarks version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"benchmarks %s\n", Version,
			)
		},
	}
}
