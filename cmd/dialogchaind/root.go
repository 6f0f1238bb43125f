package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "dialogchaind",
		Short:         "dialogchaind routes messages between connectors through configurable processor chains",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose mode (accepted, but no command changes its output for it)")

	cmd.AddCommand(newRunCmd(flags, app))
	cmd.AddCommand(newValidateCmd(flags, app))
	cmd.AddCommand(newRoutesCmd(flags, app))
	cmd.AddCommand(newProcessCmd(flags, app))
	cmd.AddCommand(newDashboardCmd(flags, app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
