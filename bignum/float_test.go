package bignum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextPrecision(t *testing.T) {
	ctx := NewContext(50)
	require.Equal(t, 50, ctx.Digits())
	// 50 decimal digits need at least 50*log2(10) ~ 167 bits
	require.GreaterOrEqual(t, ctx.Prec(), uint(167))

	require.Equal(t, 1, NewContext(0).Digits())
}

func TestParse(t *testing.T) {
	ctx := NewContext(30)
	v, err := ctx.Parse("1e-15")
	require.NoError(t, err)

	f, _ := v.Float64()
	require.InDelta(t, 1e-15, f, 1e-25)
}

func TestPowInt(t *testing.T) {
	ctx := NewContext(30)

	v, _ := ctx.PowInt(ctx.NewFloat(-2), 3).Float64()
	require.Equal(t, -8.0, v)

	v, _ = ctx.PowInt(ctx.NewFloat(0), 1).Float64()
	require.Equal(t, 0.0, v)

	v, _ = ctx.PowInt(ctx.NewFloat(1.5), 0).Float64()
	require.Equal(t, 1.0, v)
}

func TestExp(t *testing.T) {
	ctx := NewContext(30)
	v, _ := Exp(ctx.NewFloat(1)).Float64()
	require.InDelta(t, math.E, v, 1e-15)
}
