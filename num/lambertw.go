// Package num provides the small numerical kernels needed by the
// space-charge calculations: the real branches of the Lambert W function
// and central differencing of unevenly spaced data.
package num

import (
	"fmt"
	"math"
)

const branchPoint = -0.36787944117144233 // -1/e

// LambertW0 evaluates the principal branch of the Lambert W function,
// the solution w >= -1 of w*exp(w) = x. Defined for x >= -1/e.
func LambertW0(x float64) (float64, error) {
	if x < branchPoint {
		return 0., fmt.Errorf(" num.LambertW0: argument %g below -1/e", x)
	}
	if x == 0. {
		return 0., nil
	}
	var w float64
	switch {
	case x < branchPoint+0.04:
		// series about the branch point
		p := math.Sqrt(2. * (math.E*x + 1.))
		w = -1. + p - p*p/3.
	case x > math.E:
		l := math.Log(x)
		w = l - math.Log(l)
	default:
		w = x / (1. + x) // adequate start for the mid range
	}
	return halley(w, x)
}

// LambertWm1 evaluates the lower real branch of the Lambert W function,
// the solution w <= -1 of w*exp(w) = x. Defined for -1/e <= x < 0.
func LambertWm1(x float64) (float64, error) {
	if x < branchPoint || x >= 0. {
		return 0., fmt.Errorf(" num.LambertWm1: argument %g outside [-1/e,0)", x)
	}
	var w float64
	if x < branchPoint+0.04 {
		p := math.Sqrt(2. * (math.E*x + 1.))
		w = -1. - p - p*p/3.
	} else {
		l := math.Log(-x)
		w = l - math.Log(-l)
	}
	return halley(w, x)
}

// halley refines w towards w*exp(w) = x.
func halley(w, x float64) (float64, error) {
	for i := 0; i < 64; i++ {
		e := math.Exp(w)
		f := w*e - x
		if f == 0. {
			return w, nil
		}
		d := e*(w+1.) - (w+2.)*f/(2.*w+2.)
		wn := w - f/d
		if math.Abs(wn-w) <= 1e-14*(1.+math.Abs(wn)) {
			return wn, nil
		}
		w = wn
	}
	return w, fmt.Errorf(" num.halley: no convergence for argument %g", x)
}
