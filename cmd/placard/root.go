package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/placard/internal/logger"
)

type rootFlags struct {
	logLevel string
	logJSON  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "placard",
		Short:         "Placard resolves conditional visibility and responsive styles of layout documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "Write logs as JSON instead of console lines")

	cmd.AddCommand(newEvalCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newSimulateCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger builds the command logger. Logs go to w, normally stderr, so
// they never mix with rendered output.
func (f *rootFlags) newLogger(w io.Writer) (*logger.Logger, error) {
	return logger.New(logger.Options{Level: f.logLevel, HumanReadable: !f.logJSON, Writer: w})
}
