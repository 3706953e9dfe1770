package profile

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/matbench/internal/matrix"
)

type fakeSampler struct {
	samples []Sample
	calls   int
	err     error
}

func (f *fakeSampler) Sample() (Sample, error) {
	if f.err != nil {
		return Sample{}, f.err
	}
	s := f.samples[f.calls]
	f.calls++
	return s, nil
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestMeasure_Arithmetic(t *testing.T) {
	s := &fakeSampler{samples: []Sample{
		{CPU: 1 * time.Second, RSS: 10 * bytesPerMiB},
		{CPU: 1*time.Second + 500*time.Millisecond, RSS: 12 * bytesPerMiB},
	}}
	p := &Profiler{Sampler: s, Cores: 4, Now: stepClock(2 * time.Second)}

	called := 0
	m, err := p.Measure(func() error { called++; return nil })
	require.NoError(t, err)

	assert.Equal(t, 1, called)
	assert.InDelta(t, 2000.0, m.TimeMS, 1e-9)
	// 0.5s CPU over 2s wall on 4 cores.
	assert.InDelta(t, 6.25, m.CPUPct, 1e-9)
	assert.InDelta(t, 12.0, m.PeakMiB, 1e-9)
}

func TestMeasure_PeakUsesLargerSample(t *testing.T) {
	s := &fakeSampler{samples: []Sample{
		{RSS: 30 * bytesPerMiB},
		{RSS: 20 * bytesPerMiB},
	}}
	p := &Profiler{Sampler: s, Cores: 1, Now: stepClock(time.Millisecond)}

	m, err := p.Measure(func() error { return nil })
	require.NoError(t, err)
	assert.InDelta(t, 30.0, m.PeakMiB, 1e-9)
}

func TestMeasure_WallFloor(t *testing.T) {
	s := &fakeSampler{samples: []Sample{{}, {}}}
	p := &Profiler{Sampler: s, Cores: 2, Now: stepClock(0)}

	m, err := p.Measure(func() error { return nil })
	require.NoError(t, err)
	assert.Greater(t, m.TimeMS, 0.0)
	assert.InDelta(t, minWall*1000, m.TimeMS, 1e-20)
	assert.Zero(t, m.CPUPct)
}

func TestMeasure_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	p := &Profiler{Sampler: &fakeSampler{err: boom}, Cores: 1, Now: time.Now}
	_, err := p.Measure(func() error { return nil })
	assert.ErrorIs(t, err, boom)

	p = &Profiler{Sampler: &fakeSampler{samples: []Sample{{}, {}}}, Cores: 1, Now: time.Now}
	_, err = p.Measure(func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestMultiply_ShapeMismatchIsFatal(t *testing.T) {
	p := &Profiler{Sampler: &fakeSampler{samples: []Sample{{}, {}}}, Cores: 1, Now: time.Now}
	_, err := Multiply(p, matrix.New[float32](2, 3), matrix.New[float32](2, 3))
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestProcessSampler_Live(t *testing.T) {
	p := New(0)
	assert.Equal(t, 1, p.Cores)

	r := matrix.NewSource(27)
	a := matrix.Random32(r, 48, 48)
	b := matrix.Random32(r, 48, 48)

	m, err := Multiply(p, a, b)
	require.NoError(t, err)
	assert.Greater(t, m.TimeMS, 0.0)
	assert.GreaterOrEqual(t, m.CPUPct, 0.0)
	assert.Greater(t, m.PeakMiB, 0.0)
}

func TestProcessSampler_SingleThreadedCPUShare(t *testing.T) {
	if testing.Short() {
		t.Skip("compute-bound run")
	}
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("process CPU time is not sampled on " + runtime.GOOS)
	}
	p := New(runtime.NumCPU())

	r := matrix.NewSource(27)
	a := matrix.Random32(r, 256, 256)
	b := matrix.Random32(r, 256, 256)

	const runs = 3
	var total float64
	for i := 0; i < runs; i++ {
		m, err := Multiply(p, a, b)
		require.NoError(t, err)
		total += m.CPUPct
	}
	avg := total / runs

	// One busy thread on C cores reads near 100/C.
	share := 100.0 / float64(p.Cores)
	assert.Greater(t, avg, 0.0)
	assert.LessOrEqual(t, avg, 1.5*share)
}
