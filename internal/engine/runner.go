/*
PURPOSE:
  High-level runner that orchestrates the benchmarking process.
  Verifies the multiplier, then loops through Sizes -> Runs and records
  one measurement per run.

REQUIREMENTS:
  User-specified:
  - Correctness check first; failure aborts with no output written.
  - One batch id per invocation, shared by every record.
  - One fresh float32 matrix pair per size, reused across its runs.
  - Append each record as soon as it is measured.

  Implementation-discovered:
  - Needs to report progress to CLI.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/verify, internal/profile, internal/matrix, internal/output

ERROR HANDLING:
  - Any error is fatal and returned. Records already appended remain valid.

IMPLEMENTATION RULES:
  - Strictly sequential. Concurrent work would skew CPU and RSS readings.
  - Do not buffer the batch. Write per run.

USAGE:
  engine.Run(cfg)

RELATED FILES:
  - internal/profile/profiler.go
  - internal/output/csv.go
*/

package engine

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/daryltucker/matbench/internal/config"
	"github.com/daryltucker/matbench/internal/matrix"
	"github.com/daryltucker/matbench/internal/model"
	"github.com/daryltucker/matbench/internal/output"
	"github.com/daryltucker/matbench/internal/profile"
	"github.com/daryltucker/matbench/internal/verify"
)

// BatchIDLayout renders the local time as day/month/hour/minute.
const BatchIDLayout = "02/01/15/04"

// BatchID derives the run identifier shared by one invocation.
func BatchID(t time.Time) string {
	return t.Format(BatchIDLayout)
}

// Runner executes one benchmark batch.
type Runner struct {
	Config   *config.Config
	Checker  *verify.Checker
	Profiler *profile.Profiler
	Progress io.Writer
	Now      func() time.Time
}

// New creates a Runner for the current process.
func New(cfg *config.Config) *Runner {
	checker := verify.New()
	checker.Tolerance = cfg.Tolerance

	return &Runner{
		Config:   cfg,
		Checker:  checker,
		Profiler: profile.New(LogicalCores()),
		Progress: os.Stdout,
		Now:      time.Now,
	}
}

// LogicalCores returns the logical CPU count, at least 1.
func LogicalCores() int {
	return max(runtime.NumCPU(), 1)
}

// Run executes the full benchmark suite.
func Run(cfg *config.Config) error {
	return New(cfg).Run()
}

// Run verifies the multiplier and then executes every size x run pair.
func (r *Runner) Run() error {
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// 1. Verification Phase
	if err := r.Checker.Verify(cfg.CheckN, cfg.Seed); err != nil {
		return err
	}
	output.Logger.Info("Verification passed", "check_n", cfg.CheckN, "seed", cfg.Seed)

	// 2. Batch Setup
	runID := BatchID(r.Now())
	cores := r.Profiler.Cores

	store, err := output.NewCSVWriter(cfg.Out)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", cfg.Out, err)
	}

	output.Logger.Info("Starting batch",
		"run_id", runID,
		"language", cfg.Language,
		"cores", cores,
		"sizes", cfg.Sizes,
		"runs", cfg.Runs,
		"out", store.Path(),
	)

	// 3. Execution Phase
	if err := r.sweep(runID, store); err != nil {
		return err
	}

	output.Logger.Info("Batch complete", "run_id", runID, "records", len(cfg.Sizes)*cfg.Runs)
	return nil
}

func (r *Runner) sweep(runID string, store *output.CSVWriter) error {
	cfg := r.Config
	rng := matrix.NewSource(cfg.Seed)

	for _, n := range cfg.Sizes {
		a := matrix.Random32(rng, n, n)
		b := matrix.Random32(rng, n, n)
		output.Logger.Debug("Generated inputs", "size", n)

		for run := 1; run <= cfg.Runs; run++ {
			m, err := profile.Multiply(r.Profiler, a, b)
			if err != nil {
				return fmt.Errorf("size %d run %d: %w", n, run, err)
			}

			rec := model.Record{
				RunID:    runID,
				Language: cfg.Language,
				Size:     n,
				RunIdx:   run,
				TimeMS:   m.TimeMS,
				CPUPct:   m.CPUPct,
				PeakMiB:  m.PeakMiB,
			}
			if err := store.Write(rec); err != nil {
				return fmt.Errorf("failed to write result to CSV: %w", err)
			}

			fmt.Fprintf(r.Progress, "n=%d run=%d time=%.2f ms CPU=%.1f%% MEM=%.2f MiB\n",
				n, run, m.TimeMS, m.CPUPct, m.PeakMiB)
		}
	}
	return nil
}
