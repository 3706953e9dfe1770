/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full benchmark sweep.

REQUIREMENTS:
  User-specified:
  - --sizes, --runs, --out, --seed, --check_n with the documented defaults.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.
  - pflag has no nargs="+"; the size list is a single string, and
    positional arguments continue it.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails, verification fails or the sweep fails.

USAGE:
  matbench run --sizes "64 128 256" --runs 5 --out output.csv --seed 42
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/matbench/internal/config"
	"github.com/daryltucker/matbench/internal/engine"
)

var (
	sizesOverride    string
	runsOverride     int
	outOverride      string
	seedOverride     int64
	checkNOverride   int
	languageOverride string
)

var runCmd = &cobra.Command{
	Use:   "run [sizes...]",
	Short: "Run the benchmark sweep",
	Long: `Executes the benchmark sweep:
1. Verification: compares the naive multiplier against gonum on a seeded check_n x check_n pair.
   A mismatch aborts before the output file is touched.
2. Benchmarking: for each size, draws one float32 matrix pair and times every run on it.

Each run is appended to the output file immediately; the header is written only
when the file does not exist yet.`,
	Example: `  # Run with defaults (64 128 256 512 1024, 3 runs, results_raw.csv)
  matbench run

  # Custom sizes, either quoted or as trailing arguments
  matbench run --sizes "64 128 256" --runs 5 --out output.csv --seed 42
  matbench run --sizes 64 128 256`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// 2. Overrides
		if err := applyRunOverrides(cmd, cfg, args); err != nil {
			return err
		}

		// 3. Execution
		r := engine.New(cfg)
		r.Progress = cmd.OutOrStdout()
		return r.Run()
	},
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("sizes") || len(args) > 0 {
		parts := args
		if flags.Changed("sizes") {
			parts = append([]string{sizesOverride}, args...)
		}
		sizes, err := config.ParseSizes(parts...)
		if err != nil {
			return err
		}
		cfg.Sizes = sizes
	}
	if flags.Changed("runs") {
		cfg.Runs = runsOverride
	}
	if flags.Changed("out") {
		cfg.Out = outOverride
	}
	if flags.Changed("seed") {
		cfg.Seed = seedOverride
	}
	if flags.Changed("check_n") {
		cfg.CheckN = checkNOverride
	}
	if flags.Changed("language") {
		cfg.Language = languageOverride
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaults := config.DefaultConfig()
	runCmd.Flags().StringVar(&sizesOverride, "sizes", "64 128 256 512 1024", "Space- or comma-separated matrix sizes")
	runCmd.Flags().IntVar(&runsOverride, "runs", defaults.Runs, "Number of runs per matrix size")
	runCmd.Flags().StringVar(&outOverride, "out", defaults.Out, "Output CSV file path (appended to)")
	runCmd.Flags().Int64Var(&seedOverride, "seed", defaults.Seed, "Random seed for reproducibility")
	runCmd.Flags().IntVar(&checkNOverride, "check_n", defaults.CheckN, "Matrix size for correctness verification")
	runCmd.Flags().StringVar(&languageOverride, "language", defaults.Language, "Language tag written to every record")
}
