package bignum

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newFromFloats(ctx Context, rows, cols int, vals []float64) *Dense {
	m := NewDense(ctx, rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.SetFloat64(i, j, vals[i*cols+j])
		}
	}
	return m
}

func TestMulIdentity(t *testing.T) {
	ctx := NewContext(30)
	a := newFromFloats(ctx, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	p := Identity(ctx, 2).Mul(a)

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			require.Zero(t, p.At(i, j).Cmp(a.At(i, j)))
		}
	}
}

func TestTranspose(t *testing.T) {
	ctx := NewContext(30)
	a := newFromFloats(ctx, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	at := a.T()

	r, c := at.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			require.Zero(t, at.At(j, i).Cmp(a.At(i, j)))
		}
	}
}

// Inversion is cross-checked against gonum's float64 inverse on a
// matrix whose entries and inverse are exactly representable enough
// for a tight comparison.
func TestInverse(t *testing.T) {
	vals := []float64{2, 1, 1, 1, 3, 2, 1, 0, 0}

	ctx := NewContext(40)
	a := newFromFloats(ctx, 3, 3, vals)
	inv, err := a.Inverse()
	require.NoError(t, err)

	var want mat.Dense
	require.NoError(t, want.Inverse(mat.NewDense(3, 3, vals)))

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			got, _ := inv.At(i, j).Float64()
			require.InDelta(t, want.At(i, j), got, 1e-12)
		}
	}

	// round trip back to the identity
	id := a.Mul(inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			got, _ := id.At(i, j).Float64()
			if i == j {
				require.InDelta(t, 1, got, 1e-15)
			} else {
				require.InDelta(t, 0, got, 1e-15)
			}
		}
	}
}

func TestInverseSingular(t *testing.T) {
	ctx := NewContext(30)
	a := newFromFloats(ctx, 2, 2, []float64{1, 2, 2, 4})

	_, err := a.Inverse()
	require.ErrorIs(t, err, ErrSingular)
}

func TestInverseNonSquare(t *testing.T) {
	ctx := NewContext(30)
	a := NewDense(ctx, 2, 3)

	_, err := a.Inverse()
	require.Error(t, err)
}
