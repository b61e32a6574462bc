package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/fetch"
)

func (a *App) dataCmd() *cobra.Command {
	var (
		set    string
		start  string
		end    string
		groups int
		policy string
	)

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Show snapshots and average readings of a camera set, grouped in time buckets",
		Long: `Group the snapshots and sensor readings of a camera set into buckets of
24h / groups, starting at --start, and average the readings of each bucket.

Example:
  glasshouse data --set=40 --start=2024-01-01T00:00 --end=2024-01-03T00:00 --groups=4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := fetch.ParseRangeTime(start, time.Local)
			if err != nil {
				return err
			}
			to, err := fetch.ParseRangeTime(end, time.Local)
			if err != nil {
				return err
			}
			// reject a bad range or bucket count before touching the store
			if _, err := aggregate.Aggregate(from, to, groups, nil); err != nil {
				return err
			}
			var missing aggregate.MissingPolicy
			if policy != "" {
				if missing, err = aggregate.ParseMissingPolicy(policy); err != nil {
					return err
				}
			}

			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if policy == "" {
				missing = a.averaging
			}

			items, err := a.fetcher.Fetch(cmd.Context(), set, from, to)
			if err != nil {
				return err
			}
			result, err := aggregate.Aggregate(from, to, groups, items, aggregate.WithMissingPolicy(missing))
			if err != nil {
				return err
			}
			writeResult(cmd.OutOrStdout(), set, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Camera set id (required)")
	cmd.Flags().StringVar(&start, "start", "", "Range start, YYYY-MM-DD[THH:MM] (required)")
	cmd.Flags().StringVar(&end, "end", "", "Range end, YYYY-MM-DD[THH:MM] (required)")
	cmd.Flags().IntVar(&groups, "groups", 2, "Buckets per day")
	cmd.Flags().StringVar(&policy, "policy", "", "Missing value policy: zero or exclude (default from config)")

	_ = cmd.MarkFlagRequired("set")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func formatAverages(averages aggregate.Averages, metrics []string) string {
	if !averages.HasData() {
		return noData
	}
	present := lo.Filter(metrics, func(m string, _ int) bool {
		_, ok := averages[m]
		return ok
	})
	return strings.Join(lo.Map(present, func(m string, _ int) string {
		return fmt.Sprintf("%s=%.2f", m, averages[m])
	}), " ")
}

func writeResult(out io.Writer, set string, result *aggregate.Result) {
	colorHeader.Fprintf(out, "Set %s, %s to %s, buckets of %s\n", set,
		result.RangeStart.Format("2006-01-02 15:04"), result.RangeEnd.Format("2006-01-02 15:04"), result.BucketWidth)
	if len(result.Buckets) == 0 {
		colorMuted.Fprintln(out, noData)
		return
	}

	for _, bucket := range result.Buckets {
		colorHeader.Fprintf(out, "\n%s\n", bucket.Key.Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "  images: %d\n", len(bucket.Images))
		for _, image := range bucket.Images {
			colorMuted.Fprintf(out, "    %s\n", image)
		}
		for _, source := range aggregate.Sources() {
			fmt.Fprintf(out, "  %s: %s\n", source, formatAverages(bucket.Averages[source], source.Metrics()))
		}
	}
}
