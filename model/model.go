// Package model holds immutable linear-program data in the form
// consumed by the simplex solver.
package model

import (
	"errors"
	"fmt"

	"q.log/minimax/bignum"
)

// ErrInvalidDimensions reports a size mismatch between the constraint
// matrix, the right-hand side and the cost vector.
var ErrInvalidDimensions = errors.New("model: invalid dimensions")

// LinearProgram is the problem
//
//	minimize c'x  subject to  Ax <= b
//
// with every variable unrestricted in sign. The data is owned by the
// program and not mutated after construction.
type LinearProgram struct {
	// A is the m x n constraint matrix.
	A *bignum.Dense
	// B is the m x 1 right-hand side.
	B *bignum.Dense
	// C is the n x 1 cost vector.
	C *bignum.Dense

	// Ctx carries the working decimal precision of the problem.
	Ctx bignum.Context

	NumRows int
	NumCols int
}

// New validates the problem data and returns a LinearProgram.
func New(a, b, c *bignum.Dense, ctx bignum.Context) (*LinearProgram, error) {
	m, n := a.Dims()
	br, bc := b.Dims()
	if br != m || bc != 1 {
		return nil, fmt.Errorf("%w: rhs is %dx%d, want %dx1", ErrInvalidDimensions, br, bc, m)
	}
	cr, cc := c.Dims()
	if cr != n || cc != 1 {
		return nil, fmt.Errorf("%w: cost is %dx%d, want %dx1", ErrInvalidDimensions, cr, cc, n)
	}
	return &LinearProgram{
		A:       a,
		B:       b,
		C:       c,
		Ctx:     ctx,
		NumRows: m,
		NumCols: n,
	}, nil
}
