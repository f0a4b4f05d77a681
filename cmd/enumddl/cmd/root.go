package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/dbenum"
	"github.com/xy-planning-network/dbenum/config"
	"github.com/xy-planning-network/dbenum/logger"
)

type rootOpts struct {
	file    string
	dialect string
	verbose bool
	reg     *dbenum.Registry
	l       logger.Logger
}

// Execute runs enumddl with the process's arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the enumddl command tree.
// Output goes to the command's out writer; logs go to its err writer.
//
// --file defaults to ENUM_FILE, --dialect to ENUM_DIALECT, falling back to mysql,
// and --verbose to ENUM_VERBOSE.
func NewRootCmd() *cobra.Command {
	opts := new(rootOpts)

	root := &cobra.Command{
		Use:   "enumddl",
		Short: "Work with enumerations declared in a definitions file",
		Long: `enumddl loads enumerations from a YAML or TOML definitions file.

Examples:
  enumddl ddl --file enums.yaml                     # column declarations
  enumddl ddl --file enums.yaml --dialect postgres  # CREATE TYPE statements
  enumddl labels Status --file enums.yaml           # value and label of each choice
  enumddl check Status draft --file enums.yaml      # fails unless draft is a Status`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.l = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return opts.load()
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", dbenum.EnvVarOrString("ENUM_FILE", ""), "definitions file, .yaml or .toml")
	root.PersistentFlags().StringVarP(&opts.dialect, "dialect", "d", dbenum.EnvVarOrString("ENUM_DIALECT", "mysql"), "SQL dialect: mysql, postgres, sqlite or sqlserver")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", dbenum.EnvVarOrBool("ENUM_VERBOSE", false), "log debug messages")

	root.AddCommand(
		newDDLCmd(opts),
		newLabelsCmd(opts),
		newCheckCmd(opts),
	)

	return root
}

func newLogger(w io.Writer, verbose bool) logger.Logger {
	opts := []logger.LoggerOptFn{logger.WithLogger(log.New(w, "", log.LstdFlags)), logger.WithColor(false)}
	if verbose {
		opts = append(opts, logger.WithLevel(logger.LogLevelDebug))
	}

	return logger.New(opts...)
}

func (o *rootOpts) load() error {
	if o.file == "" {
		return fmt.Errorf("%w: set --file or ENUM_FILE", dbenum.ErrBadConfig)
	}

	reg, err := config.Load(o.file)
	if err != nil {
		o.l.Error("cannot load definitions", &logger.LogContext{
			Data:  map[string]any{"file": o.file},
			Error: err,
		})
		return err
	}

	o.reg = reg
	o.l.Debug("loaded definitions", &logger.LogContext{
		Data: map[string]any{"file": o.file, "enums": reg.Names()},
	})

	return nil
}
