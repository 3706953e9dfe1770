/*
PURPOSE:
  Defines the root Cobra command for the matbench CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Errors are printed once, by main.go.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/matbench/main.go
  - Calls: Child commands (run, verify, aggregate, chart)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands.

RELATED FILES:
  - cmd/matbench/main.go
*/

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/matbench/internal/config"
	"github.com/daryltucker/matbench/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "matbench",
		Short: "Naive matrix multiplication benchmark for cross-language comparison",
		Long: `Times the textbook triple-loop matrix multiplication over a range of sizes and
appends one semicolon-delimited row per run. Use 'run --help' for benchmark options.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./matbench.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// loadConfig reads the config file and sets up logging from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := output.Configure(os.Stderr, cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
