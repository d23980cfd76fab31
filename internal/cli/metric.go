package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"wellness-analytics/internal/features/analytics"
	"wellness-analytics/pkg/utils"

	"github.com/spf13/cobra"
)

var metricCmd = &cobra.Command{
	Use:   "metric <name>",
	Short: "Compute one metric and print its series as JSON",
	Long: `Compute one metric and print its series as JSON.

The name is either a metric key or its label.

Examples:
  analyticsctl metric goal-status
  analyticsctl metric "Monthly Trend"
  analyticsctl metric --list`,
	Args: func(cmd *cobra.Command, args []string) error {
		if metricList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runMetric,
}

var (
	metricList bool
	verbose    bool
)

func init() {
	rootCmd.AddCommand(metricCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log service activity to stderr")

	metricCmd.Flags().BoolVar(&metricList, "list", false, "List available metrics")
}

// resolveMetric accepts a key ("goal-status") or a label ("Goal Status").
func resolveMetric(name string) (analytics.Definition, error) {
	if def, ok := analytics.Lookup(utils.Slugify(name)); ok {
		return def, nil
	}
	return analytics.Definition{}, fmt.Errorf("unknown metric %q (see analyticsctl metric --list)", name)
}

func runMetric(cmd *cobra.Command, args []string) error {
	if metricList {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tSCOPE\tLABEL\tROUTE")
		for _, def := range analytics.Definitions {
			fmt.Fprintf(w, "%s\t%s\t%s\t/api/analytics%s\n", def.Key, def.Scope, def.Label, def.Path)
		}
		return w.Flush()
	}

	def, err := resolveMetric(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := newDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	result, err := d.analytics.Compute(ctx, def.Key)
	if err != nil {
		return fmt.Errorf("failed to compute %s: %w", def.Key, err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
