package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.benchmarks/pkg/registry"
	"digital.vasic.benchmarks/pkg/suite"
)

func newListCmd() *cobra.Command {
	var suiteFiles []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered benchmarks and suite definitions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := suite.New()
			for _, path := range suiteFiles {
				if err := s.LoadFile(path); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(
				cmd.OutOrStdout(), 0, 4, 2, ' ', 0,
			)
			fmt.Fprintln(
				w,
				"ID\tNAME\tCATEGORY\tSOURCE\tCOUNTERS\tASSERTIONS",
			)

			for _, b := range registry.Default.ExecutionOrder() {
				fmt.Fprintf(
					w, "%s\t%s\t%s\tregistered\t%d\t%d\n",
					b.ID(), b.Name(), b.Category(),
					len(b.Declarations()),
					len(b.Assertions()),
				)
			}

			for _, def := range s.All() {
				fmt.Fprintf(
					w, "%s\t%s\t%s\tsuite\t%s\t%d\n",
					def.ID, def.Name, def.Category,
					strings.Join(def.Counters, ","),
					len(def.Assertions),
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&suiteFiles, "suite", nil,
		"Suite file(s) to include (YAML or JSON)")

	return cmd
}
