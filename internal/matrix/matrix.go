/*
PURPOSE:
  Dense row-major matrices and the naive triple-loop multiplication that
  serves as the unoptimized baseline under benchmark.

REQUIREMENTS:
  User-specified:
  - C[i,j] = sum over k of A[i,k]*B[k,j], scalar accumulation, no shortcuts.
  - Reject A.cols != B.rows with a shape error naming both shapes.

  Implementation-discovered:
  - Benchmarks use float32 inputs, verification uses float64 inputs.
    Generics keep one multiplication routine for both.

ARCHITECTURE INTEGRATION:
  - Used by: internal/verify, internal/profile, internal/engine

ERROR HANDLING:
  - Multiply returns *ShapeMismatchError; errors.Is(err, ErrShapeMismatch).

IMPLEMENTATION RULES:
  - Critical: Do not block, unroll, parallelize or call BLAS in Multiply.
  - Inputs are never mutated. The result is always freshly allocated.

RELATED FILES:
  - internal/matrix/random.go
*/

package matrix

import (
	"errors"
	"fmt"
)

// Element is the set of element types a Matrix can hold.
type Element interface {
	~float32 | ~float64
}

// Shape is the (rows, cols) dimension pair of a matrix.
type Shape struct {
	Rows int
	Cols int
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

// ErrShapeMismatch is matched by every *ShapeMismatchError.
var ErrShapeMismatch = errors.New("incompatible shapes")

// ShapeMismatchError reports operands whose inner dimensions disagree.
type ShapeMismatchError struct {
	A Shape
	B Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("incompatible shapes: A.shape=%s, B.shape=%s. A.cols must equal B.rows", e.A, e.B)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// Matrix is a dense rows x cols matrix stored row-major.
type Matrix[T Element] struct {
	rows int
	cols int
	data []T
}

// New returns a zero-initialized rows x cols matrix.
func New[T Element](rows, cols int) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimension (%d, %d)", rows, cols))
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// Identity returns the n x n identity matrix.
func Identity[T Element](n int) *Matrix[T] {
	m := New[T](n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func (m *Matrix[T]) Rows() int    { return m.rows }
func (m *Matrix[T]) Cols() int    { return m.cols }
func (m *Matrix[T]) Shape() Shape { return Shape{Rows: m.rows, Cols: m.cols} }

// At returns the element at row i, column j.
func (m *Matrix[T]) At(i, j int) T {
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j.
func (m *Matrix[T]) Set(i, j int, v T) {
	m.data[i*m.cols+j] = v
}

// Values returns a copy of the row-major backing data.
func (m *Matrix[T]) Values() []T {
	out := make([]T, len(m.data))
	copy(out, m.data)
	return out
}

// Multiply computes C = A x B with the classical triple loop.
// Each term is widened to float64 before multiplying and summing; the
// accumulated value is stored back in A's element type.
func Multiply[T Element](a, b *Matrix[T]) (*Matrix[T], error) {
	if a.cols != b.rows {
		return nil, &ShapeMismatchError{A: a.Shape(), B: b.Shape()}
	}

	n, m, p := a.rows, a.cols, b.cols
	c := New[T](n, p)

	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			acc := 0.0
			for k := 0; k < m; k++ {
				acc += float64(a.data[i*m+k]) * float64(b.data[k*p+j])
			}
			c.data[i*p+j] = T(acc)
		}
	}

	return c, nil
}
