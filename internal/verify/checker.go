/*
PURPOSE:
  Gates a benchmark batch on the correctness of the naive multiplier.
  Compares it against gonum's BLAS-backed product on a small seeded input.

REQUIREMENTS:
  User-specified:
  - Two n x n float64 matrices in [0, 1) drawn from the seeded generator.
  - Pass iff every element pair is within an absolute tolerance (1e-8).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (before any timed run), internal/cli verify
  - Depends on: internal/matrix, gonum.org/v1/gonum/mat

ERROR HANDLING:
  - Verify wraps ErrVerificationFailure with size, seed and max deviation.
  - Errors from the candidate multiplier are returned as-is.
*/

package verify

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/daryltucker/matbench/internal/matrix"
)

// DefaultTolerance is the absolute tolerance applied per element.
const DefaultTolerance = 1e-8

// ErrVerificationFailure is returned when the candidate product disagrees with the reference.
var ErrVerificationFailure = errors.New("verification failed")

// MultiplyFunc is the candidate multiplication under check.
type MultiplyFunc func(a, b *matrix.Matrix[float64]) (*matrix.Matrix[float64], error)

// Checker compares a candidate multiplier against gonum.
type Checker struct {
	Multiply  MultiplyFunc
	Tolerance float64
}

// Result describes one comparison.
type Result struct {
	N            int
	Seed         int64
	MaxDeviation float64
	Passed       bool
}

// New returns a Checker for matrix.Multiply at DefaultTolerance.
func New() *Checker {
	return &Checker{
		Multiply:  matrix.Multiply[float64],
		Tolerance: DefaultTolerance,
	}
}

// Check runs the comparison for an n x n pair drawn from seed.
func (c *Checker) Check(n int, seed int64) (Result, error) {
	res := Result{N: n, Seed: seed}
	if n <= 0 {
		return res, fmt.Errorf("check size must be positive, got %d", n)
	}

	r := matrix.NewSource(seed)
	a := matrix.Random64(r, n, n)
	b := matrix.Random64(r, n, n)

	var want mat.Dense
	want.Mul(dense(a), dense(b))

	got, err := c.Multiply(a, b)
	if err != nil {
		return res, err
	}
	if got.Rows() != n || got.Cols() != n {
		res.MaxDeviation = math.Inf(1)
		return res, nil
	}

	res.Passed = true
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := math.Abs(got.At(i, j) - want.At(i, j))
			if d > res.MaxDeviation || math.IsNaN(d) {
				res.MaxDeviation = d
			}
			if !(d <= c.Tolerance) {
				res.Passed = false
			}
		}
	}
	return res, nil
}

// Verify is Check that turns a failed comparison into an error.
func (c *Checker) Verify(n int, seed int64) error {
	res, err := c.Check(n, seed)
	if err != nil {
		return err
	}
	if !res.Passed {
		return fmt.Errorf("%w: n=%d seed=%d max deviation %g exceeds tolerance %g",
			ErrVerificationFailure, n, seed, res.MaxDeviation, c.Tolerance)
	}
	return nil
}

func dense(m *matrix.Matrix[float64]) *mat.Dense {
	return mat.NewDense(m.Rows(), m.Cols(), m.Values())
}
