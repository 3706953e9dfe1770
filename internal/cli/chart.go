package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/matbench/internal/chart"
)

var (
	chartInput string
	chartDir   string
)

var chartCmd = &cobra.Command{
	Use:     "chart",
	Short:   "Render comparison charts (PNG) from raw per-run results",
	Example: `  matbench chart --inp results_raw.csv --dir figs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		res, summaries, err := summarize(chartInput)
		if err != nil {
			return err
		}
		paths, err := chart.Render(chartDir, summaries, res.Records)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "  Saved: %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVar(&chartInput, "inp", "results_raw.csv", "Input CSV file with raw benchmark results")
	chartCmd.Flags().StringVar(&chartDir, "dir", "figs", "Output directory for PNG charts")
}
