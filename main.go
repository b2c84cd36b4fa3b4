// Command minimax approximates f(x) = e^x - 2 by a polynomial of the
// requested degree, minimizing the worst-case deviation over evenly
// spaced sample points, and reports the achieved error.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/big"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"q.log/minimax/approx"
	"q.log/minimax/bignum"
)

func main() {
	degree := flag.Int("degree", 3, "polynomial degree")
	lo := flag.Float64("a", 0, "interval start")
	hi := flag.Float64("b", 3, "interval end")
	num := flag.Int("points", 20, "number of sample points")
	digits := flag.Int("digits", 50, "decimal digits of working precision")
	gridSize := flag.Int("grid", 512, "residual evaluation grid size")
	out := flag.String("plot", "", "write a figure of f and its approximation to this file")
	flag.Parse()

	p := approx.NewOptimalPolynomial(*digits)
	ctx := p.Context()

	two := ctx.NewInt(2)
	f := func(x *big.Float) *big.Float {
		return new(big.Float).Sub(bignum.Exp(x), two)
	}

	coefs, err := p.Coefficients(f, *degree, ctx.NewFloat(*lo), ctx.NewFloat(*hi), *num, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(p.Report())

	// residual summary on a grid denser than the sample set
	grid := floats.Span(make([]float64, *gridSize), *lo, *hi)
	resid := make([]float64, len(grid))
	for i, x := range grid {
		bx := ctx.NewFloat(x)
		r := new(big.Float).Sub(f(bx), approx.Eval(coefs, bx))
		v, _ := r.Float64()
		resid[i] = math.Abs(v)
	}
	maxDev, _ := stats.Max(resid)
	meanDev, _ := stats.Mean(resid)
	fmt.Printf("max |f - a| on grid:  %.6g\n", maxDev)
	fmt.Printf("mean |f - a| on grid: %.6g\n", meanDev)

	if *out != "" {
		if err := p.SavePlot(f, coefs, *out); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("figure written to %s\n", *out)
	}
}
