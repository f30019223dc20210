package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.benchmarks/pkg/suite"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <suite-file>...",
		Short: "Validate benchmark suite files",
		Long: `Validate checks suite files for structural problems: missing
version, duplicate benchmark IDs, undeclared counters, and
malformed assertion strings. Every problem is reported; the
command fails if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0

			for _, path := range args {
				errs := suite.ValidateFile(path)
				if len(errs) == 0 {
					fmt.Fprintf(out, "%s: OK\n", path)
					continue
				}
				invalid++
				fmt.Fprintf(
					out, "%s: %d problem(s)\n",
					path, len(errs),
				)
				for _, e := range errs {
					fmt.Fprintf(out, "  %s\n", e.Error())
				}
			}

			if invalid > 0 {
				return fmt.Errorf(
					"%d of %d suite file(s) invalid",
					invalid, len(args),
				)
			}
			return nil
		},
	}
}
