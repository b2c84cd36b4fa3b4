package bignum

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrSingular is returned by Inverse when elimination runs out of
// nonzero pivots.
var ErrSingular = errors.New("bignum: matrix is singular")

// Dense is a dense, row-major matrix of arbitrary-precision scalars.
// All entries are owned by the matrix and allocated at the precision of
// its context; Set copies values in, At hands the stored scalar out for
// reading.
type Dense struct {
	ctx        Context
	rows, cols int
	data       []*big.Float
}

// NewDense returns a rows x cols zero matrix at the context precision.
func NewDense(ctx Context, rows, cols int) *Dense {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("bignum: non-positive dimensions %dx%d", rows, cols))
	}
	data := make([]*big.Float, rows*cols)
	for i := range data {
		data[i] = ctx.New()
	}
	return &Dense{ctx: ctx, rows: rows, cols: cols, data: data}
}

// Identity returns the n x n identity matrix.
func Identity(ctx Context, n int) *Dense {
	m := NewDense(ctx, n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i].SetInt64(1)
	}
	return m
}

// Context returns the precision context the matrix was built with.
func (m *Dense) Context() Context { return m.ctx }

// Dims returns the number of rows and columns.
func (m *Dense) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the entry at row i, column j.
func (m *Dense) At(i, j int) *big.Float {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set copies v into the entry at row i, column j.
func (m *Dense) Set(i, j int, v *big.Float) {
	m.check(i, j)
	m.data[i*m.cols+j].Set(v)
}

// SetFloat64 sets the entry at row i, column j from a float64.
func (m *Dense) SetFloat64(i, j int, v float64) {
	m.check(i, j)
	m.data[i*m.cols+j].SetFloat64(v)
}

func (m *Dense) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("bignum: index (%d,%d) out of range %dx%d", i, j, m.rows, m.cols))
	}
}

// Col returns a copy of column j as a rows x 1 matrix.
func (m *Dense) Col(j int) *Dense {
	col := NewDense(m.ctx, m.rows, 1)
	for i := 0; i < m.rows; i++ {
		col.data[i].Set(m.data[i*m.cols+j])
	}
	return col
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	c := NewDense(m.ctx, m.rows, m.cols)
	for i, v := range m.data {
		c.data[i].Set(v)
	}
	return c
}

// T returns the transpose.
func (m *Dense) T() *Dense {
	t := NewDense(m.ctx, m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j*t.cols+i].Set(m.data[i*m.cols+j])
		}
	}
	return t
}

// Neg returns the entrywise negation.
func (m *Dense) Neg() *Dense {
	n := NewDense(m.ctx, m.rows, m.cols)
	for i, v := range m.data {
		n.data[i].Neg(v)
	}
	return n
}

// Mul returns the matrix product m*b. Panics if the inner dimensions
// disagree.
func (m *Dense) Mul(b *Dense) *Dense {
	if m.cols != b.rows {
		panic(fmt.Sprintf("bignum: product dimension mismatch %dx%d * %dx%d", m.rows, m.cols, b.rows, b.cols))
	}
	p := NewDense(m.ctx, m.rows, b.cols)
	tmp := m.ctx.New()
	for i := 0; i < m.rows; i++ {
		for j := 0; j < b.cols; j++ {
			acc := p.data[i*p.cols+j]
			for k := 0; k < m.cols; k++ {
				tmp.Mul(m.data[i*m.cols+k], b.data[k*b.cols+j])
				acc.Add(acc, tmp)
			}
		}
	}
	return p
}

// Inverse returns the inverse of a square matrix by Gauss-Jordan
// elimination with partial pivoting, or ErrSingular when a pivot
// column is exhausted.
func (m *Dense) Inverse() (*Dense, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("bignum: cannot invert non-square %dx%d matrix", m.rows, m.cols)
	}
	n := m.rows
	a := m.Clone()
	inv := Identity(m.ctx, n)

	abs := m.ctx.New()
	best := m.ctx.New()
	tmp := m.ctx.New()
	for col := 0; col < n; col++ {
		// partial pivot: largest magnitude on or below the diagonal
		pivot := col
		best.Abs(a.data[col*n+col])
		for r := col + 1; r < n; r++ {
			abs.Abs(a.data[r*n+col])
			if abs.Cmp(best) > 0 {
				best.Set(abs)
				pivot = r
			}
		}
		if a.data[pivot*n+col].Sign() == 0 {
			return nil, ErrSingular
		}
		if pivot != col {
			a.swapRows(pivot, col)
			inv.swapRows(pivot, col)
		}

		p := m.ctx.New().Set(a.data[col*n+col])
		for j := 0; j < n; j++ {
			a.data[col*n+j].Quo(a.data[col*n+j], p)
			inv.data[col*n+j].Quo(inv.data[col*n+j], p)
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := m.ctx.New().Set(a.data[r*n+col])
			if f.Sign() == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				tmp.Mul(f, a.data[col*n+j])
				a.data[r*n+j].Sub(a.data[r*n+j], tmp)
				tmp.Mul(f, inv.data[col*n+j])
				inv.data[r*n+j].Sub(inv.data[r*n+j], tmp)
			}
		}
	}
	return inv, nil
}

func (m *Dense) swapRows(i, j int) {
	for k := 0; k < m.cols; k++ {
		m.data[i*m.cols+k], m.data[j*m.cols+k] = m.data[j*m.cols+k], m.data[i*m.cols+k]
	}
}

// String renders the matrix row by row with short decimal entries.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(m.data[i*m.cols+j].Text('g', 10))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
