package num_test

import (
	"math"
	"testing"

	"github.com/j-m-dean/goscses/num"
	"github.com/stretchr/testify/require"
)

func TestLambertW0Identity(t *testing.T) {
	for _, x := range []float64{-0.36, -0.2, -0.05, 0.1, 0.5, 1., math.E, 10., 1e3} {
		w, err := num.LambertW0(x)
		require.NoError(t, err)
		require.InEpsilon(t, x, w*math.Exp(w), 1e-12, "x=%g", x)
	}
}

func TestLambertW0Known(t *testing.T) {
	w, err := num.LambertW0(0.)
	require.NoError(t, err)
	require.Zero(t, w)

	w, err = num.LambertW0(math.E)
	require.NoError(t, err)
	require.InDelta(t, 1., w, 1e-12)
}

func TestLambertW0OutOfDomain(t *testing.T) {
	_, err := num.LambertW0(-0.5)
	require.Error(t, err)
}

func TestLambertWm1Identity(t *testing.T) {
	for _, x := range []float64{-0.367, -0.36, -0.3, -0.2, -0.1, -0.01, -1e-4} {
		w, err := num.LambertWm1(x)
		require.NoError(t, err)
		require.LessOrEqual(t, w, -1.)
		require.InEpsilon(t, x, w*math.Exp(w), 1e-11, "x=%g", x)
	}
}

func TestLambertWm1BranchPoint(t *testing.T) {
	w, err := num.LambertWm1(-1. / math.E)
	require.NoError(t, err)
	require.InDelta(t, -1., w, 1e-6)
}

func TestLambertWm1OutOfDomain(t *testing.T) {
	for _, x := range []float64{-0.4, 0., 0.1} {
		_, err := num.LambertWm1(x)
		require.Error(t, err, "x=%g", x)
	}
}
