package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/dbenum/logger"
)

func newCheckCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check <enum> <value>",
		Short: "Fail unless value is one of the enumeration's values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := opts.reg.Lookup(args[0])
			if err != nil {
				return err
			}

			if err := def.Validate(args[1]); err != nil {
				opts.l.Debug("value rejected", &logger.LogContext{Enum: def.Name(), Error: err})
				return err
			}

			label, err := def.Label(args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is %q\n", args[1], label)
			return nil
		},
	}
}
