/*
PURPOSE:
  Measures exactly one multiplication call: wall time, process CPU
  utilization and a resident-memory high-water proxy.

REQUIREMENTS:
  User-specified:
  - time_ms covers the call only and is floored at a tiny epsilon.
  - cpu_pct = 100 * (user+sys delta) / (wall seconds * logical cores).
  - peak_mib = max(RSS before, RSS after) in MiB.

  Implementation-discovered:
  - Samples are taken as close to the call as possible: memory, CPU, clock
    before; clock, CPU, memory after.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Uses: internal/matrix

ERROR HANDLING:
  - Sampler and multiplication errors are returned immediately. No retries.

IMPLEMENTATION RULES:
  - Not safe for concurrent use; measurements assume exclusive use of the
    process counters.
*/

package profile

import (
	"fmt"
	"time"

	"github.com/daryltucker/matbench/internal/matrix"
)

const (
	bytesPerMiB = 1024 * 1024

	// minWall keeps downstream divisions finite.
	minWall = 1e-12
)

// Sample is one reading of the process counters.
type Sample struct {
	CPU time.Duration // user + system time consumed so far
	RSS uint64        // resident set size in bytes
}

// Sampler reads process counters.
type Sampler interface {
	Sample() (Sample, error)
}

// Measurement is the outcome of one profiled call.
type Measurement struct {
	TimeMS  float64
	CPUPct  float64
	PeakMiB float64
}

// Profiler measures single calls against a process sampler.
type Profiler struct {
	Sampler Sampler
	Cores   int
	Now     func() time.Time
}

// New returns a Profiler for the current process.
func New(cores int) *Profiler {
	if cores < 1 {
		cores = 1
	}
	return &Profiler{
		Sampler: ProcessSampler{},
		Cores:   cores,
		Now:     time.Now,
	}
}

// Measure runs call once and reports its cost.
func (p *Profiler) Measure(call func() error) (Measurement, error) {
	before, err := p.Sampler.Sample()
	if err != nil {
		return Measurement{}, fmt.Errorf("sample before run: %w", err)
	}
	t0 := p.Now()

	if err := call(); err != nil {
		return Measurement{}, err
	}

	wall := p.Now().Sub(t0).Seconds()
	after, err := p.Sampler.Sample()
	if err != nil {
		return Measurement{}, fmt.Errorf("sample after run: %w", err)
	}

	if wall < minWall {
		wall = minWall
	}
	cores := p.Cores
	if cores < 1 {
		cores = 1
	}
	cpuUsed := (after.CPU - before.CPU).Seconds()
	peak := max(before.RSS, after.RSS)

	return Measurement{
		TimeMS:  wall * 1000.0,
		CPUPct:  100.0 * cpuUsed / (wall * float64(cores)),
		PeakMiB: float64(peak) / bytesPerMiB,
	}, nil
}

// Multiply profiles one call to matrix.Multiply(a, b). The product is discarded.
func Multiply[T matrix.Element](p *Profiler, a, b *matrix.Matrix[T]) (Measurement, error) {
	return p.Measure(func() error {
		_, err := matrix.Multiply(a, b)
		return err
	})
}
