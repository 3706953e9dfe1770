package matrix

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// fromRows builds a matrix from equal-length rows.
func fromRows[T Element](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return New[T](0, 0), nil
	}
	cols := len(rows[0])
	m := New[T](len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

func reference(t *testing.T, a, b *Matrix[float64]) *mat.Dense {
	t.Helper()
	var c mat.Dense
	c.Mul(mat.NewDense(a.Rows(), a.Cols(), a.Values()), mat.NewDense(b.Rows(), b.Cols(), b.Values()))
	return &c
}

func TestMultiply_Known(t *testing.T) {
	a, err := fromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := fromRows([][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)

	c, err := Multiply(a, b)
	require.NoError(t, err)

	assert.Equal(t, []float64{19, 22, 43, 50}, c.Values())
}

func TestMultiply_MatchesReference(t *testing.T) {
	shapes := []struct {
		name    string
		n, m, p int
	}{
		{"Square", 7, 7, 7},
		{"Tall", 9, 3, 4},
		{"Wide", 2, 11, 6},
		{"RowVector", 1, 5, 5},
		{"ColumnResult", 6, 4, 1},
	}

	r := NewSource(11)
	for _, tc := range shapes {
		t.Run(tc.name, func(t *testing.T) {
			a := Random64(r, tc.n, tc.m)
			b := Random64(r, tc.m, tc.p)

			c, err := Multiply(a, b)
			require.NoError(t, err)
			assert.Equal(t, Shape{Rows: tc.n, Cols: tc.p}, c.Shape())

			ref := reference(t, a, b)
			for i := 0; i < tc.n; i++ {
				for j := 0; j < tc.p; j++ {
					want := ref.At(i, j)
					got := c.At(i, j)
					diff := math.Abs(got - want)
					assert.True(t, diff <= 1e-8 || diff <= 1e-6*math.Abs(want),
						"cell (%d,%d): got %v want %v", i, j, got, want)
				}
			}
		})
	}
}

func TestMultiply_Float32KeepsElementType(t *testing.T) {
	r := NewSource(3)
	a := Random32(r, 4, 3)
	b := Random32(r, 3, 2)

	c, err := Multiply(a, b)
	require.NoError(t, err)

	var acc float64
	for k := 0; k < 3; k++ {
		acc += float64(a.At(1, k)) * float64(b.At(k, 1))
	}
	assert.Equal(t, float32(acc), c.At(1, 1))
}

func TestMultiply_ShapeMismatch(t *testing.T) {
	a := New[float64](2, 3)
	b := New[float64](4, 2)

	c, err := Multiply(a, b)
	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	var sm *ShapeMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, sm.A)
	assert.Equal(t, Shape{Rows: 4, Cols: 2}, sm.B)
	assert.Contains(t, err.Error(), "(2, 3)")
	assert.Contains(t, err.Error(), "(4, 2)")
}

func TestMultiply_Identity(t *testing.T) {
	r := NewSource(27)
	a := Random64(r, 5, 3)

	right, err := Multiply(a, Identity[float64](3))
	require.NoError(t, err)
	assert.InDeltaSlice(t, a.Values(), right.Values(), 1e-12)

	left, err := Multiply(Identity[float64](5), a)
	require.NoError(t, err)
	assert.InDeltaSlice(t, a.Values(), left.Values(), 1e-12)
}

func TestMultiply_Zero(t *testing.T) {
	r := NewSource(27)
	a := Random32(r, 4, 6)

	c, err := Multiply(a, New[float32](6, 3))
	require.NoError(t, err)
	assert.Equal(t, Shape{Rows: 4, Cols: 3}, c.Shape())
	for _, v := range c.Values() {
		assert.Zero(t, v)
	}
}

func TestMultiply_DoesNotMutateInputs(t *testing.T) {
	r := NewSource(5)
	a := Random64(r, 3, 3)
	b := Random64(r, 3, 3)
	aBefore, bBefore := a.Values(), b.Values()

	_, err := Multiply(a, b)
	require.NoError(t, err)

	assert.Equal(t, aBefore, a.Values())
	assert.Equal(t, bBefore, b.Values())
}

func TestRandom_Deterministic(t *testing.T) {
	first := Random64(NewSource(27), 8, 8)
	second := Random64(NewSource(27), 8, 8)
	assert.Equal(t, first.Values(), second.Values())

	other := Random64(NewSource(28), 8, 8)
	assert.NotEqual(t, first.Values(), other.Values())

	for _, v := range Random32(NewSource(27), 16, 16).Values() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestFromRowsHelper_Ragged(t *testing.T) {
	_, err := fromRows([][]float64{{1, 2}, {3}})
	assert.Error(t, err)
}
