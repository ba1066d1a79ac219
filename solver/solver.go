// Package solver assembles and solves the finite-difference Poisson
// equation on the site grid.
package solver

import (
	"fmt"

	"github.com/j-m-dean/goscses/grid"
	"github.com/j-m-dean/goscses/phys"
	"gonum.org/v1/gonum/mat"
)

// Supported boundary conditions.
const (
	Dirichlet = "dirichlet"
	Periodic  = "periodic"
)

// Poisson solves L*phi = -rho/epsilon on a grid, L being the three-point
// Laplacian on the (generally nonuniform) site spacing.
type Poisson struct {
	g       *grid.Grid
	epsilon float64 // absolute permittivity [F/m]
	temp    float64 // [K]
	bc      string
	a       *mat.Tridiag
}

// NewPoisson builds the Poisson operator for the given grid, relative
// permittivity and temperature.
//
// Under periodic boundary conditions the assembled cyclic operator is
// singular up to an additive constant, so the last grid point is pinned
// to zero and the reduced tridiagonal system is solved; the calculation
// re-references the potential to the bulk average afterwards.
func NewPoisson(g *grid.Grid, dielectric, temp float64, bc string) (*Poisson, error) {
	n := len(g.X)
	if n < 3 {
		return nil, fmt.Errorf(" solver.NewPoisson: %d grid points, need at least 3", n)
	}
	if dielectric <= 0. {
		return nil, fmt.Errorf(" solver.NewPoisson: dielectric constant %g", dielectric)
	}
	if temp <= 0. {
		return nil, fmt.Errorf(" solver.NewPoisson: temperature %g", temp)
	}
	sub, diag, sup := stencil(g)
	p := &Poisson{
		g:       g,
		epsilon: dielectric * phys.VacuumPermittivity,
		temp:    temp,
		bc:      bc,
	}
	switch bc {
	case Dirichlet:
		p.a = mat.NewTridiag(n, sub[1:], diag, sup[:n-1])
	case Periodic:
		m := n - 1
		p.a = mat.NewTridiag(m, sub[1:m], diag[:m], sup[:m-1])
	default:
		return nil, fmt.Errorf(" solver.NewPoisson: unknown boundary conditions %q", bc)
	}
	return p, nil
}

// stencil returns the sub-, main and super-diagonal Laplacian
// coefficients, the end spacings taken from the grid's LapLimits.
func stencil(g *grid.Grid) (sub, diag, sup []float64) {
	n := len(g.X)
	sub = make([]float64, n)
	diag = make([]float64, n)
	sup = make([]float64, n)
	for i := 0; i < n; i++ {
		d1, d2 := g.LapLimits[0], g.LapLimits[1]
		if i > 0 {
			d1 = g.X[i] - g.X[i-1]
		}
		if i < n-1 {
			d2 = g.X[i+1] - g.X[i]
		}
		sub[i] = 2. / (d1 * (d1 + d2))
		diag[i] = -2. / (d1 * d2)
		sup[i] = 2. / (d2 * (d1 + d2))
	}
	return
}

// Solve evaluates the charge density produced by the current potential
// and solves for the predicted potential. Both are returned.
func (p *Poisson) Solve(phi []float64) (predicted, rho []float64, err error) {
	rho = p.g.ChargeDensity(phi, p.temp)
	n := len(rho)
	predicted = make([]float64, n)

	m := n
	if p.bc == Periodic {
		m = n - 1 // last node gauged to zero
	}
	b := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		b.SetVec(i, -rho[i]/p.epsilon)
	}
	var x mat.VecDense
	if err := p.a.SolveVecTo(&x, false, b); err != nil {
		return nil, nil, fmt.Errorf(" solver.Solve: %v", err)
	}
	for i := 0; i < m; i++ {
		predicted[i] = x.AtVec(i)
	}
	return predicted, rho, nil
}
