package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLabelsCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "labels <enum>",
		Short: "Print the value and label of each choice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := opts.reg.Lookup(args[0])
			if err != nil {
				return err
			}

			for _, c := range def.Choices() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Value, c.Label)
			}

			return nil
		},
	}
}
