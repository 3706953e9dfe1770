package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/matbench/internal/config"
	"github.com/daryltucker/matbench/internal/verify"
)

// execute runs the root command with fresh flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return len(strings.Split(strings.TrimSpace(string(raw)), "\n"))
}

func TestRunCommand_QuotedSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")

	out, err := execute(t, "run", "--sizes", "2 4", "--runs", "2", "--out", path, "--log-level", "error")
	require.NoError(t, err)

	assert.Equal(t, 5, countLines(t, path))
	progress := 0
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(line, "n=") {
			progress++
		}
	}
	assert.Equal(t, 4, progress)
}

func TestRunCommand_TrailingSizesAndAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")

	_, err := execute(t, "run", "--sizes", "2", "3", "--runs", "1", "--out", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 3, countLines(t, path))

	_, err = execute(t, "run", "--sizes", "2", "3", "--runs", "1", "--out", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 5, countLines(t, path))
}

func TestRunCommand_ConfigFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.csv")
	cfgPath := filepath.Join(dir, "matbench.yaml")
	yml := "sizes: [3]\nruns: 2\nlanguage: GoTest\nlog_level: error\nout: " + path + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yml), 0644))

	_, err := execute(t, "run", "--config", cfgPath, "--runs", "1")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(t, path))
	assert.Contains(t, string(raw), ";GoTest;3;1;")
}

func TestRunCommand_InvalidSizes(t *testing.T) {
	_, err := execute(t, "run", "--sizes", "2 x", "--out", filepath.Join(t.TempDir(), "raw.csv"))
	assert.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "verify", "--check_n", "5", "--seed", "27", "--log-level", "error")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "PASS n=5 seed=27"))
}

func TestVerifyCommand_OwnFlags(t *testing.T) {
	assert.Equal(t, "5", verifyCmd.Flags().Lookup("check_n").DefValue)
	assert.Equal(t, "27", verifyCmd.Flags().Lookup("seed").DefValue)

	out, err := execute(t, "verify", "--check_n", "4", "--seed", "3", "--log-level", "error")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "PASS n=4 seed=3"))

	// run's overrides are separate variables.
	assert.Equal(t, 5, checkNOverride)
	assert.Equal(t, int64(27), seedOverride)
}

func TestAggregateAndChartCommands(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.csv")
	summary := filepath.Join(dir, "summary.csv")
	figs := filepath.Join(dir, "figs")

	_, err := execute(t, "run", "--sizes", "2 4", "--runs", "3", "--out", raw, "--log-level", "error")
	require.NoError(t, err)

	out, err := execute(t, "aggregate", "--inp", raw, "--out", summary, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Aggregated 6 raw records into 2 summary rows")
	assert.Equal(t, 3, countLines(t, summary))

	out, err = execute(t, "chart", "--inp", raw, "--dir", figs, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "time_vs_size.png")
	for _, name := range []string{"efficiency_gflops.png", "speedup_vs_fastest.png", "boxplots_time_by_size.png"} {
		_, err = os.Stat(filepath.Join(figs, name))
		assert.NoError(t, err, name)
	}
}

func TestApplyRunOverrides_PositionalOnly(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{}
	cmd.Flags().String("sizes", "", "")

	require.NoError(t, applyRunOverrides(cmd, cfg, []string{"8", "16"}))
	assert.Equal(t, []int{8, 16}, cfg.Sizes)
	assert.Equal(t, 3, cfg.Runs)
}

func TestVerifyFailureSentinel(t *testing.T) {
	// The sentinel main.go reports must keep its message stable.
	assert.Equal(t, "verification failed", verify.ErrVerificationFailure.Error())
}
