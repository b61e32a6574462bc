package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/fetch"
)

func (a *App) readingsCmd() *cobra.Command {
	var (
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "readings <soil|dht22> <device>",
		Short: "List the raw readings of one sensor, oldest first",
		Long: `List every reading a soil probe or dht22 sensor reported between --start
and --end.

Example:
  glasshouse readings dht22 dht22_0 --start=2024-01-01 --end=2024-01-02`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := aggregate.ParseSource(args[0])
			if err != nil {
				return err
			}
			from, err := fetch.ParseRangeTime(start, time.Local)
			if err != nil {
				return err
			}
			to, err := fetch.ParseRangeTime(end, time.Local)
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}

			readings, err := a.fetcher.DeviceReadings(cmd.Context(), source, args[1], from, to)
			if err != nil {
				return err
			}
			writeReadings(cmd.OutOrStdout(), source, args[1], readings)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Range start, YYYY-MM-DD[THH:MM] (required)")
	cmd.Flags().StringVar(&end, "end", "", "Range end, YYYY-MM-DD[THH:MM] (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func writeReadings(out io.Writer, source aggregate.Source, device string, readings []aggregate.Reading) {
	colorHeader.Fprintf(out, "%s %s\n", source, device)
	if len(readings) == 0 {
		colorMuted.Fprintln(out, noData)
		return
	}

	metrics := source.Metrics()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TIME\t%s\n", strings.Join(metrics, "\t"))
	for _, r := range readings {
		values := lo.Map(metrics, func(m string, _ int) string {
			if v, ok := r.Fields[m]; ok {
				return fmt.Sprintf("%.2f", v)
			}
			return "-"
		})
		fmt.Fprintf(w, "%s\t%s\n", r.At.Format("2006-01-02 15:04"), strings.Join(values, "\t"))
	}
	w.Flush()
}
