package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/internal/schedule"
)

func (a *App) scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List and change light schedules",
	}
	cmd.AddCommand(a.scheduleListCmd(), a.scheduleAddCmd(), a.scheduleEditCmd(), a.scheduleDeleteCmd())
	return cmd
}

func writeSchedules(out io.Writer, light models.LightDevice) {
	colorHeader.Fprintf(out, "%s\n", light.ID)
	if len(light.Schedules) == 0 {
		colorMuted.Fprintln(out, "  no schedules")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tSTART\tEND\tDURATION")
	for _, s := range light.Schedules {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", s.ID, s.Start, s.End, s.Duration)
	}
	w.Flush()
}

func (a *App) scheduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [light]",
		Short: "List the schedules of every light, or of one light",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if !a.schedules.HasDevice(args[0]) {
					return fmt.Errorf("light %s: %w", args[0], models.ErrNotFound)
				}
				writeSchedules(out, models.LightDevice{ID: args[0], Schedules: a.schedules.View(args[0])})
				return nil
			}

			lights := a.schedules.Lights()
			if len(lights) == 0 {
				colorMuted.Fprintln(out, "no lights")
			}
			for _, light := range lights {
				writeSchedules(out, light)
			}
			return nil
		},
	}
}

func parseInterval(start string, end string) (schedule.Interval, error) {
	s, err := schedule.ParseHHMM(start)
	if err != nil {
		return schedule.Interval{}, err
	}
	e, err := schedule.ParseHHMM(end)
	if err != nil {
		return schedule.Interval{}, err
	}
	return schedule.Interval{Start: s, End: e}, nil
}

// explain turns a conflict into a readable message, other errors pass through
func explain(out io.Writer, err error) error {
	if errors.Is(err, models.ErrScheduleConflict) {
		colorWarn.Fprintln(out, "The new schedule overlaps an existing one.")
	}
	return err
}

func (a *App) scheduleAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [light] [start] [end]",
		Short: "Add a schedule to a light",
		Long: `Add an on period to a light. Times are HHMM or HH:MM, 24 hour.

Example:
  glasshouse schedule add led1 0800 14:30`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := parseInterval(args[1], args[2])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}

			record, err := a.schedules.Add(cmd.Context(), args[0], interval)
			if err != nil {
				return explain(cmd.OutOrStdout(), err)
			}
			view := a.schedules.ViewRecord(args[0], record)
			colorOK.Fprintf(cmd.OutOrStdout(), "Added schedule #%s to %s: %s - %s (%s)\n", view.ID, args[0], view.Start, view.End, view.Duration)
			return nil
		},
	}
}

func (a *App) scheduleEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [light] [id] [start] [end]",
		Short: "Change the times of a schedule",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := parseInterval(args[2], args[3])
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}

			record, err := a.schedules.Edit(cmd.Context(), args[0], args[1], interval)
			if err != nil {
				return explain(cmd.OutOrStdout(), err)
			}
			view := a.schedules.ViewRecord(args[0], record)
			colorOK.Fprintf(cmd.OutOrStdout(), "Updated schedule #%s on %s: %s - %s (%s)\n", view.ID, args[0], view.Start, view.End, view.Duration)
			return nil
		},
	}
}

func (a *App) scheduleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [light] [id]",
		Short: "Delete a schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}

			record, err := a.schedules.Delete(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			view := a.schedules.ViewRecord(args[0], record)
			colorOK.Fprintf(cmd.OutOrStdout(), "Deleted schedule #%s from %s (%s - %s)\n", view.ID, args[0], view.Start, view.End)
			return nil
		},
	}
}
