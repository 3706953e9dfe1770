package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/matbench/internal/config"
	"github.com/daryltucker/matbench/internal/output"
	"github.com/daryltucker/matbench/internal/verify"
)

var (
	verifySeed   int64
	verifyCheckN int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the naive multiplier against gonum without benchmarking",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = verifySeed
		}
		if cmd.Flags().Changed("check_n") {
			cfg.CheckN = verifyCheckN
		}
		if cfg.CheckN <= 0 {
			return fmt.Errorf("check_n: %d is not a positive integer", cfg.CheckN)
		}

		c := verify.New()
		c.Tolerance = cfg.Tolerance
		res, err := c.Check(cfg.CheckN, cfg.Seed)
		if err != nil {
			return err
		}

		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s n=%d seed=%d max_abs_dev=%.3g tolerance=%g\n",
			status, res.N, res.Seed, res.MaxDeviation, c.Tolerance)
		output.Logger.Debug("Verification finished", "passed", res.Passed, "max_deviation", res.MaxDeviation)

		if !res.Passed {
			return verify.ErrVerificationFailure
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	defaults := config.DefaultConfig()
	verifyCmd.Flags().Int64Var(&verifySeed, "seed", defaults.Seed, "Random seed for the check matrices")
	verifyCmd.Flags().IntVar(&verifyCheckN, "check_n", defaults.CheckN, "Matrix size for correctness verification")
}
