package approx

import (
	"fmt"
	"image/color"
	"math/big"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlot renders f against the polynomial with the given
// coefficients over the sample points of the last solve and writes the
// figure to path. The format follows the file extension.
func (p *OptimalPolynomial) SavePlot(f Func, coefs []*big.Float, path string) error {
	if len(p.points) == 0 {
		return fmt.Errorf("approx: nothing solved yet")
	}

	fLine := make(plotter.XYs, len(p.points))
	aLine := make(plotter.XYs, len(p.points))
	for i, pt := range p.points {
		x, _ := pt.Float64()
		fy, _ := f(pt).Float64()
		ay, _ := Eval(coefs, pt).Float64()
		fLine[i] = plotter.XY{X: x, Y: fy}
		aLine[i] = plotter.XY{X: x, Y: ay}
	}

	pl := plot.New()
	pl.Title.Text = "f(x) and its polynomial approximation"
	pl.X.Label.Text = "x"
	pl.Y.Label.Text = "y"

	lf, err := plotter.NewLine(fLine)
	if err != nil {
		return err
	}
	lf.Color = color.RGBA{B: 255, A: 255}

	la, err := plotter.NewLine(aLine)
	if err != nil {
		return err
	}
	la.Color = color.RGBA{R: 255, A: 255}
	la.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	pl.Add(lf, la)
	pl.Legend.Add("f(x)", lf)
	pl.Legend.Add("a(x)", la)
	pl.Add(plotter.NewGrid())

	return pl.Save(10*vg.Inch, 6*vg.Inch, path)
}
