package cli

import (
	"github.com/spf13/cobra"
	"github.com/wheelibin/glasshouse/internal/settings"
)

func (a *App) intervalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Show or change how often devices collect data",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the collection interval in hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			hours, err := a.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			colorHeader.Fprintf(cmd.OutOrStdout(), "%s\n", settings.FormatPollingInterval(hours))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set [hours]",
		Short: "Set the collection interval",
		Long: `Set the collection interval, a single number of hours or a comma
separated list, each between 1 and 24.

Example:
  glasshouse interval set 6
  glasshouse interval set 1,6,12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := settings.ParsePollingInterval(args[0])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if err := a.settings.Set(cmd.Context(), hours); err != nil {
				return err
			}
			colorOK.Fprintf(cmd.OutOrStdout(), "Collection interval set to %s\n", settings.FormatPollingInterval(hours))
			colorMuted.Fprintln(cmd.OutOrStdout(), "Devices receive it on the daemon's next broadcast.")
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}
