// Package bignum provides the arbitrary-precision numeric backend for
// the solver: a precision context for scalar allocation and a dense
// matrix type with exact multiply, transpose and inversion.
package bignum

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// guardBits pads the mantissa so that rounding in long elimination
// chains stays below the last requested decimal digit.
const guardBits = 10

// Context fixes the working decimal precision of a computation. It is
// an immutable value: every scalar and matrix allocated through it
// carries the derived mantissa width, so solves at different precisions
// can run concurrently without shared state.
type Context struct {
	digits int
	prec   uint
}

// NewContext returns a context with the given number of decimal digits
// of working precision. Digits below 1 are clamped to 1.
func NewContext(digits int) Context {
	if digits < 1 {
		digits = 1
	}
	return Context{
		digits: digits,
		prec:   uint(math.Ceil(float64(digits)*math.Log2(10))) + guardBits,
	}
}

// Digits returns the configured decimal digits.
func (c Context) Digits() int { return c.digits }

// Prec returns the mantissa width in bits backing this context.
func (c Context) Prec() uint { return c.prec }

// New returns a zero scalar at the context precision.
func (c Context) New() *big.Float { return new(big.Float).SetPrec(c.prec) }

// NewFloat returns x at the context precision.
func (c Context) NewFloat(x float64) *big.Float { return c.New().SetFloat64(x) }

// NewInt returns x at the context precision.
func (c Context) NewInt(x int64) *big.Float { return c.New().SetInt64(x) }

// Parse reads a decimal literal at the context precision.
func (c Context) Parse(s string) (*big.Float, error) {
	f, _, err := big.ParseFloat(s, 10, c.prec, big.ToNearestEven)
	return f, err
}

// PowInt returns x^n for n >= 0 by iterated multiplication.
// bigfloat.Pow evaluates exp(y*log(x)) and is undefined for x <= 0,
// which sample points routinely are.
func (c Context) PowInt(x *big.Float, n int) *big.Float {
	r := c.NewInt(1)
	for i := 0; i < n; i++ {
		r.Mul(r, x)
	}
	return r
}

// Exp returns e^x at the precision of x.
func Exp(x *big.Float) *big.Float {
	return bigfloat.Exp(x)
}
