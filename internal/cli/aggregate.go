package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/matbench/internal/aggregate"
	"github.com/daryltucker/matbench/internal/model"
	"github.com/daryltucker/matbench/internal/output"
)

var (
	aggInput  string
	aggOutput string
)

var aggregateCmd = &cobra.Command{
	Use:     "aggregate",
	Short:   "Summarize raw per-run results per (run_id, language, size)",
	Example: `  matbench aggregate --inp results_raw.csv --out results_summary.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		res, summaries, err := summarize(aggInput)
		if err != nil {
			return err
		}
		if err := output.WriteSummary(aggOutput, summaries); err != nil {
			return fmt.Errorf("failed to write summary %s: %w", aggOutput, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Aggregated %d raw records into %d summary rows\n", len(res.Records), len(summaries))
		fmt.Fprintf(cmd.OutOrStdout(), "Results written to: %s\n", aggOutput)
		return nil
	},
}

// summarize reads a raw store and reduces it.
func summarize(path string) (output.ReadResult, []model.Summary, error) {
	res, err := output.ReadRecords(path)
	if err != nil {
		return res, nil, fmt.Errorf("failed to read raw results %s: %w", path, err)
	}
	if res.Skipped > 0 {
		output.Logger.Warn("Skipped malformed rows", "path", path, "count", res.Skipped)
	}
	return res, aggregate.Summarize(res.Records), nil
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVar(&aggInput, "inp", "results_raw.csv", "Input CSV file with raw benchmark results")
	aggregateCmd.Flags().StringVar(&aggOutput, "out", "results_summary.csv", "Output CSV file for aggregated summary statistics")
}
