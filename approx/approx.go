// Package approx encodes minimax polynomial approximation as a linear
// program and recovers polynomial coefficients from its solution.
package approx

import (
	"fmt"
	"math/big"
	"strings"

	"q.log/minimax/bignum"
	"q.log/minimax/model"
	"q.log/minimax/simplex"
)

// Func is a scalar function evaluated in arbitrary precision.
type Func func(x *big.Float) *big.Float

// Weight maps a sample point to a nonnegative deviation bound. A nil
// Weight means the constant 1, i.e. unweighted approximation.
type Weight func(x *big.Float) *big.Float

func unitWeight(ctx bignum.Context) Weight {
	one := ctx.NewInt(1)
	return func(*big.Float) *big.Float { return one }
}

// Linspace returns num evenly spaced points from a to b inclusive,
// point_i = a + i*(b-a)/(num-1), computed at the context precision.
func Linspace(ctx bignum.Context, a, b *big.Float, num int) []*big.Float {
	points := make([]*big.Float, num)
	if num == 1 {
		points[0] = ctx.New().Set(a)
		return points
	}
	step := ctx.New().Sub(b, a)
	step.Quo(step, ctx.NewInt(int64(num-1)))
	for i := range points {
		p := ctx.New().Mul(step, ctx.NewInt(int64(i)))
		points[i] = p.Add(p, a)
	}
	return points
}

// ConstructMatrix builds the 2m x (degree+2) constraint matrix over the
// sample points. Column 0 weights the error bound t, column 1 is the
// constant polynomial term with sign +1 in the upper half-block and -1
// in the lower, and columns 2..degree+1 hold point^1..point^degree,
// negated in the lower half-block.
func ConstructMatrix(ctx bignum.Context, degree int, points []*big.Float, omegaSup, omegaInf Weight) *bignum.Dense {
	m := len(points)
	a := bignum.NewDense(ctx, 2*m, degree+2)

	one := ctx.NewInt(1)
	minusOne := ctx.NewInt(-1)
	for i, p := range points {
		a.Set(i, 0, omegaSup(p))
		a.Set(i, 1, one)
		a.Set(i+m, 0, omegaInf(p))
		a.Set(i+m, 1, minusOne)
	}

	neg := ctx.New()
	for i, p := range points {
		for k := 1; k <= degree; k++ {
			pow := ctx.PowInt(p, k)
			a.Set(i, k+1, pow)
			a.Set(i+m, k+1, neg.Neg(pow))
		}
	}
	return a
}

// ConstructVectorB builds the 2m x 1 right-hand side: f at each point
// in the upper half-block, -f in the lower.
func ConstructVectorB(ctx bignum.Context, f Func, points []*big.Float) *bignum.Dense {
	m := len(points)
	b := bignum.NewDense(ctx, 2*m, 1)
	neg := ctx.New()
	for i, p := range points {
		v := f(p)
		b.Set(i, 0, v)
		b.Set(i+m, 0, neg.Neg(v))
	}
	return b
}

// ConstructVectorC builds the (degree+2) x 1 cost vector: 1 for the
// error bound t, 0 for every polynomial coefficient.
func ConstructVectorC(ctx bignum.Context, degree int) *bignum.Dense {
	c := bignum.NewDense(ctx, degree+2, 1)
	c.Set(0, 0, ctx.NewInt(1))
	return c
}

// BuildProgram samples f on [a,b] and assembles the minimax LP. The
// constraint system is negated as a whole so that it arrives in the
// <=-form the solver's slack basis expects; minimizing the single unit
// cost then minimizes the worst-case weighted deviation. Nil weights
// default to the constant 1.
func BuildProgram(ctx bignum.Context, f Func, degree int, a, b *big.Float, num int, omegaSup, omegaInf Weight) (*model.LinearProgram, []*big.Float, error) {
	if omegaSup == nil {
		omegaSup = unitWeight(ctx)
	}
	if omegaInf == nil {
		omegaInf = unitWeight(ctx)
	}

	points := Linspace(ctx, a, b, num)
	constraints := ConstructMatrix(ctx, degree, points, omegaSup, omegaInf).Neg()
	rhs := ConstructVectorB(ctx, f, points).Neg()
	cost := ConstructVectorC(ctx, degree)

	lp, err := model.New(constraints, rhs, cost, ctx)
	if err != nil {
		return nil, nil, err
	}
	return lp, points, nil
}

// OptimalPolynomial computes minimax polynomial approximations at a
// fixed decimal precision and retains the outcome of the last solve.
type OptimalPolynomial struct {
	ctx    bignum.Context
	points []*big.Float

	coefficients []*big.Float
	objective    *big.Float
	iterations   int
	status       simplex.Status
}

// NewOptimalPolynomial returns a solver working at the given number of
// decimal digits.
func NewOptimalPolynomial(digits int) *OptimalPolynomial {
	return &OptimalPolynomial{ctx: bignum.NewContext(digits)}
}

// Context exposes the precision context, for callers that want to
// build arguments at the matching precision.
func (p *OptimalPolynomial) Context() bignum.Context { return p.ctx }

// Coefficients approximates f on [a,b] by a polynomial of the given
// degree over num evenly spaced sample points and returns the
// coefficients highest degree first. Degree must be >= 0 and num >= 2
// is recommended; weights must be finite at every sample point. The
// achieved worst-case deviation, iteration count and status are
// retained for inspection.
func (p *OptimalPolynomial) Coefficients(f Func, degree int, a, b *big.Float, num int, omegaSup, omegaInf Weight) ([]*big.Float, error) {
	lp, points, err := BuildProgram(p.ctx, f, degree, a, b, num, omegaSup, omegaInf)
	if err != nil {
		return nil, err
	}
	p.points = points

	res, err := simplex.New(lp).Solve(simplex.DefaultMaxIterations)
	if err != nil {
		return nil, err
	}
	p.status = res.Status
	p.iterations = res.Iterations
	if res.Status != simplex.Optimal {
		return nil, fmt.Errorf("approx: no solution: %v", res.Status)
	}
	p.objective = res.Objective

	// drop the error bound, reverse into highest-degree-first order
	coefs := make([]*big.Float, degree+1)
	for k := 0; k <= degree; k++ {
		coefs[degree-k] = res.X.At(k+1, 0)
	}
	p.coefficients = coefs
	return coefs, nil
}

// Points returns the sample points of the last solve.
func (p *OptimalPolynomial) Points() []*big.Float { return p.points }

// Status returns the solver status of the last solve.
func (p *OptimalPolynomial) Status() simplex.Status { return p.status }

// Iterations returns the pivot count of the last solve.
func (p *OptimalPolynomial) Iterations() int { return p.iterations }

// Objective returns the achieved worst-case weighted deviation, or nil
// before a successful solve.
func (p *OptimalPolynomial) Objective() *big.Float { return p.objective }

// Report formats the outcome of the last solve.
func (p *OptimalPolynomial) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Status: %v\n", p.status)
	sb.WriteString("Coefficients:\n")
	for i, c := range p.coefficients {
		fmt.Fprintf(&sb, "  x^%d: %s\n", len(p.coefficients)-1-i, c.Text('g', p.ctx.Digits()))
	}
	fmt.Fprintf(&sb, "Iterations: %d\n", p.iterations)
	if p.objective != nil {
		fmt.Fprintf(&sb, "Error: %s\n", p.objective.Text('g', p.ctx.Digits()))
	}
	return sb.String()
}

// Eval evaluates a polynomial given highest degree first at x by
// Horner's rule.
func Eval(coefs []*big.Float, x *big.Float) *big.Float {
	acc := new(big.Float).SetPrec(x.Prec())
	for _, c := range coefs {
		acc.Mul(acc, x)
		acc.Add(acc, c)
	}
	return acc
}
