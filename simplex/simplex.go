// Package simplex implements the revised simplex method over
// arbitrary-precision arithmetic.
package simplex

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"q.log/minimax/bignum"
	"q.log/minimax/model"
)

// DefaultMaxIterations caps the pivot loop when the caller passes no
// explicit limit.
const DefaultMaxIterations = 1000

// ErrSingularBasis reports that the columns selected into the basis no
// longer form an invertible matrix.
var ErrSingularBasis = errors.New("simplex: singular basis matrix")

// Status is the terminal state of a solve.
type Status int

const (
	// Optimal means every reduced cost is nonnegative within tolerance.
	Optimal Status = iota + 1
	// Unbounded means an improving column has no positive direction
	// entry, so the objective decreases without limit.
	Unbounded
	// MaxIterationsExceeded means the pivot cap elapsed first.
	MaxIterationsExceeded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Unbounded:
		return "Unbounded"
	case MaxIterationsExceeded:
		return "MaxIterationsExceeded"
	}
	return "Unknown"
}

// Pivot records one basis change: the column that entered and the
// column it displaced.
type Pivot struct {
	Entering int
	Leaving  int
}

// Result is the outcome of Solve. X and Objective are set only when
// Status is Optimal; X is in the original variable space.
type Result struct {
	X          *bignum.Dense
	Objective  *big.Float
	Iterations int
	Status     Status
	Pivots     []Pivot
}

// RevisedSimplex iterates on a transformed copy of a linear program:
// each unrestricted variable is split into a nonnegative pair and an
// identity slack block is appended, so the slack columns form the
// initial basis. The transform is built once at construction and never
// mutated; only the basis and nonbasis index lists change while
// solving.
//
// The slack start is a basic feasible solution only when b >= 0. The
// solver does not enforce this; callers whose right-hand side carries
// negative entries (the minimax builder among them) rely on the first
// pivots restoring feasibility.
type RevisedSimplex struct {
	lp  *model.LinearProgram
	ctx bignum.Context

	m, n int // original dimensions

	augmented *bignum.Dense // m x (2n+m): split columns then slacks
	cost      *bignum.Dense // (2n+m) x 1, zero for slacks

	basis    []int
	nonbasis []int // kept in ascending order

	negTolerance *big.Float
}

// New builds a solver for lp. The optimality tolerance is
// 10^(-digits/2) in the working precision, half the configured digits,
// absorbing the rounding accumulated in the basis inverse.
func New(lp *model.LinearProgram) *RevisedSimplex {
	s := &RevisedSimplex{
		lp:  lp,
		ctx: lp.Ctx,
		m:   lp.NumRows,
		n:   lp.NumCols,
	}
	s.transform()

	tol, err := s.ctx.Parse(fmt.Sprintf("1e-%d", s.ctx.Digits()/2))
	if err != nil {
		panic(err)
	}
	s.negTolerance = tol.Neg(tol)

	s.basis = make([]int, s.m)
	s.nonbasis = make([]int, 2*s.n)
	for i := range s.basis {
		s.basis[i] = 2*s.n + i
	}
	for j := range s.nonbasis {
		s.nonbasis[j] = j
	}
	return s
}

// transform builds the augmented system: columns 0..n-1 are the
// original columns (the positive halves), columns n..2n-1 their
// negations (the negative halves), columns 2n..2n+m-1 the identity
// slack block. Costs follow the same layout with zero slack costs.
func (s *RevisedSimplex) transform() {
	s.augmented = bignum.NewDense(s.ctx, s.m, 2*s.n+s.m)
	s.cost = bignum.NewDense(s.ctx, 2*s.n+s.m, 1)

	neg := s.ctx.New()
	for j := 0; j < s.n; j++ {
		for i := 0; i < s.m; i++ {
			v := s.lp.A.At(i, j)
			s.augmented.Set(i, j, v)
			s.augmented.Set(i, j+s.n, neg.Neg(v))
		}
		c := s.lp.C.At(j, 0)
		s.cost.Set(j, 0, c)
		s.cost.Set(j+s.n, 0, neg.Neg(c))
	}
	one := s.ctx.NewInt(1)
	for i := 0; i < s.m; i++ {
		s.augmented.Set(i, 2*s.n+i, one)
	}
}

// Solve runs the pivot loop until optimality, unboundedness or the
// iteration cap. A non-positive cap selects DefaultMaxIterations.
// Unbounded and MaxIterationsExceeded are reported as statuses with no
// solution; only a singular basis is an error.
func (s *RevisedSimplex) Solve(maxIterations int) (*Result, error) {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	res := &Result{}
	for res.Iterations = 0; res.Iterations < maxIterations; res.Iterations++ {
		basisInv, err := s.basisMatrix().Inverse()
		if err != nil {
			return nil, fmt.Errorf("%w: iteration %d: %v", ErrSingularBasis, res.Iterations, err)
		}

		// dual prices y' = cB'*B^-1
		y := s.basisCosts().T().Mul(basisInv)

		entering, minReduced := s.enteringVariable(y)
		if minReduced.Cmp(s.negTolerance) >= 0 {
			s.finish(res, basisInv)
			return res, nil
		}

		d := basisInv.Mul(s.augmented.Col(entering))
		bBar := basisInv.Mul(s.lp.B)

		leavingPos := s.ratioTest(d, bBar)
		if leavingPos < 0 {
			res.Status = Unbounded
			return res, nil
		}

		s.pivot(res, entering, leavingPos)
	}

	res.Status = MaxIterationsExceeded
	return res, nil
}

// basisMatrix extracts the m basis columns of the augmented system.
func (s *RevisedSimplex) basisMatrix() *bignum.Dense {
	b := bignum.NewDense(s.ctx, s.m, s.m)
	for j, col := range s.basis {
		for i := 0; i < s.m; i++ {
			b.Set(i, j, s.augmented.At(i, col))
		}
	}
	return b
}

// basisCosts returns cB as an m x 1 vector in basis order.
func (s *RevisedSimplex) basisCosts() *bignum.Dense {
	cb := bignum.NewDense(s.ctx, s.m, 1)
	for i, col := range s.basis {
		cb.Set(i, 0, s.cost.At(col, 0))
	}
	return cb
}

// enteringVariable prices every nonbasic column against the dual
// vector and returns the one with the most negative reduced cost.
// The nonbasis is scanned in ascending column order with a strict
// comparison, so ties go to the smallest index.
func (s *RevisedSimplex) enteringVariable(y *bignum.Dense) (int, *big.Float) {
	entering := -1
	var minReduced *big.Float
	tmp := s.ctx.New()
	for _, j := range s.nonbasis {
		// rj = cj - y'*Aj
		r := s.ctx.New().Set(s.cost.At(j, 0))
		for i := 0; i < s.m; i++ {
			tmp.Mul(y.At(0, i), s.augmented.At(i, j))
			r.Sub(r, tmp)
		}
		if minReduced == nil || r.Cmp(minReduced) < 0 {
			minReduced = r
			entering = j
		}
	}
	return entering, minReduced
}

// ratioTest returns the basis position of the leaving variable: the
// minimum of bBar_i/d_i over rows with d_i > 0, ties resolved to the
// smallest basis column index. Returns -1 when no direction entry is
// positive, i.e. the problem is unbounded along the entering column.
func (s *RevisedSimplex) ratioTest(d, bBar *bignum.Dense) int {
	pos := -1
	var minRatio *big.Float
	for i := 0; i < s.m; i++ {
		if d.At(i, 0).Sign() <= 0 {
			continue
		}
		ratio := s.ctx.New().Quo(bBar.At(i, 0), d.At(i, 0))
		if pos < 0 {
			minRatio = ratio
			pos = i
			continue
		}
		switch ratio.Cmp(minRatio) {
		case -1:
			minRatio = ratio
			pos = i
		case 0:
			if s.basis[i] < s.basis[pos] {
				pos = i
			}
		}
	}
	return pos
}

// pivot swaps exactly one index between basis and nonbasis, keeping
// the nonbasis sorted.
func (s *RevisedSimplex) pivot(res *Result, entering, leavingPos int) {
	leaving := s.basis[leavingPos]
	s.basis[leavingPos] = entering

	at := slices.Index(s.nonbasis, entering)
	s.nonbasis = slices.Delete(s.nonbasis, at, at+1)
	at, _ = slices.BinarySearch(s.nonbasis, leaving)
	s.nonbasis = slices.Insert(s.nonbasis, at, leaving)

	res.Pivots = append(res.Pivots, Pivot{Entering: entering, Leaving: leaving})
}

// finish recombines the split solution into the original variable
// space and prices it with the original cost vector.
func (s *RevisedSimplex) finish(res *Result, basisInv *bignum.Dense) {
	bBar := basisInv.Mul(s.lp.B)

	full := bignum.NewDense(s.ctx, 2*s.n+s.m, 1)
	for i, col := range s.basis {
		full.Set(col, 0, bBar.At(i, 0))
	}

	x := bignum.NewDense(s.ctx, s.n, 1)
	diff := s.ctx.New()
	for j := 0; j < s.n; j++ {
		diff.Sub(full.At(j, 0), full.At(j+s.n, 0))
		x.Set(j, 0, diff)
	}

	obj := s.ctx.New()
	tmp := s.ctx.New()
	for j := 0; j < s.n; j++ {
		tmp.Mul(s.lp.C.At(j, 0), x.At(j, 0))
		obj.Add(obj, tmp)
	}

	res.X = x
	res.Objective = obj
	res.Status = Optimal
}
