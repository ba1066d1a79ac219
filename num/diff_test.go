package num_test

import (
	"testing"

	"github.com/j-m-dean/goscses/num"
	"github.com/stretchr/testify/require"
)

func TestDiffCentralLinear(t *testing.T) {
	x := []float64{0., 1., 3., 3.5, 7.}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 2.*xi - 1.
	}
	d := num.DiffCentral(x, y)
	require.Len(t, d, 3)
	for i := range d {
		require.InDelta(t, 2., d[i], 1e-12)
	}
}

func TestDiffCentralQuadratic(t *testing.T) {
	// the weighted stencil is exact for quadratics on uneven spacing
	x := []float64{-2., -0.5, 0.25, 1., 4.}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3.*xi*xi + xi
	}
	d := num.DiffCentral(x, y)
	require.Len(t, d, 3)
	for i := range d {
		require.InDelta(t, 6.*x[i+1]+1., d[i], 1e-12)
	}
}

func TestDiffCentralPanics(t *testing.T) {
	require.Panics(t, func() { num.DiffCentral([]float64{0., 1.}, []float64{0.}) })
	require.Panics(t, func() { num.DiffCentral([]float64{0., 1.}, []float64{0., 1.}) })
}
