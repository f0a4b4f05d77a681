package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/dbenum/postgres"
)

func newDDLCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "ddl",
		Short: "Print the column declaration of every enumeration",
		Long: `Prints "Name: declaration" for every enumeration in the order they are defined.

With --dialect postgres, prints the CREATE TYPE statement of each enumeration instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, def := range opts.reg.Definitions() {
				if opts.dialect == "postgres" {
					fmt.Fprintln(out, postgres.CreateTypeSQL(def))
					continue
				}

				fmt.Fprintf(out, "%s: %s\n", def.Name(), def.Declaration(opts.dialect))
			}

			return nil
		},
	}
}
