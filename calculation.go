// Package goscses solves the one-dimensional Poisson-Boltzmann equation
// for defect segregation at grain boundaries, site-explicitly, and
// derives the resulting space-charge properties.
package goscses

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/j-m-dean/goscses/grid"
	"github.com/j-m-dean/goscses/site"
	"github.com/j-m-dean/goscses/solver"
)

// Defect mobility approximations.
const (
	MottSchottky = "mott-schottky" // only the first site species redistributes
	GouyChapman  = "gouy-chapman"  // all defect species redistribute
)

// Space-charge potential signs.
const (
	Positive = "positive"
	Negative = "negative"
)

// DefaultMaxIter caps the damped fixed-point iteration.
const DefaultMaxIter = 2500000

// ErrNotConverged reports an iteration cap hit before the convergence
// tolerance was met.
var ErrNotConverged = errors.New("not converged")

// Calculation iterates the Poisson-Boltzmann system on a grid to
// self-consistency and derives space-charge properties from the
// converged potential.
type Calculation struct {
	Grid        *grid.Grid
	BulkXMin    float64 // lower bound of the bulk reference region [m]
	BulkXMax    float64 // upper bound of the bulk reference region [m]
	Alpha       float64 // damping factor applied to each potential update
	Convergence float64 // mean squared potential-update tolerance [V²]
	Dielectric  float64 // relative permittivity
	Temp        float64 // [K]
	BC          string  // solver.Dirichlet or solver.Periodic
	MaxIter     int     // iteration cap; DefaultMaxIter when zero

	SiteLabels []string
	Subgrids   map[string]*grid.Grid

	Phi   []float64 // converged potential [V]
	Rho   []float64 // converged charge density [C/m³]
	NIter int
	MF    map[string][]float64 // occupation profiles per site label, on the subgrids

	PerpendicularResistivityRatio float64
	ParallelResistivityRatio      float64
	MSPhi                         float64    // Mott-Schottky space-charge potential [V]
	DebyeLength                   float64    // [m]
	SpaceChargeWidth              float64    // [m]
	BulkLimits                    [2]float64 // offsets of the bulk comparison window [m]

	avgBulkMobileDefectDensity float64 // [m⁻³]
}

// NewCalculation wires a calculation over the given grid.
func NewCalculation(g *grid.Grid, bulkXMin, bulkXMax, alpha, convergence, dielectric, temp float64, bc string) *Calculation {
	return &Calculation{
		Grid:        g,
		BulkXMin:    bulkXMin,
		BulkXMax:    bulkXMax,
		Alpha:       alpha,
		Convergence: convergence,
		Dielectric:  dielectric,
		Temp:        temp,
		BC:          bc,
	}
}

func (c *Calculation) maxIter() int {
	if c.MaxIter > 0 {
		return c.MaxIter
	}
	return DefaultMaxIter
}

// Solve runs the damped fixed-point iteration until the mean squared
// potential update drops below the convergence tolerance. Each pass
// solves the Poisson equation for the potential predicted by the
// current defect distribution, re-references it to the bulk average,
// and blends it into the running potential with damping Alpha.
//
// Under the mott-schottky approximation the bulk reference is taken on
// the subgrid of the first site label, which must host the mobile
// species; under gouy-chapman it is taken on the full grid.
func (c *Calculation) Solve(approximation string, verbose bool) error {
	ps, err := solver.NewPoisson(c.Grid, c.Dielectric, c.Temp, c.BC)
	if err != nil {
		return fmt.Errorf(" calculation.Solve: %v", err)
	}

	var msSub *grid.Grid
	switch approximation {
	case GouyChapman:
	case MottSchottky:
		if len(c.SiteLabels) == 0 {
			return fmt.Errorf(" calculation.Solve: no site labels defined; form subgrids before a mott-schottky solve")
		}
		msSub, err = c.Grid.Subgrid(c.SiteLabels[0])
		if err != nil {
			return fmt.Errorf(" calculation.Solve: %v", err)
		}
	default:
		return fmt.Errorf(" calculation.Solve: unknown approximation %q", approximation)
	}

	phi := make([]float64, len(c.Grid.X))
	conv, niter := 1., 0
	for conv > c.Convergence {
		if niter >= c.maxIter() {
			return fmt.Errorf(" calculation.Solve: %w after %d iterations (convergence %.3e / %.3e)", ErrNotConverged, niter, conv, c.Convergence)
		}
		predicted, _, err := ps.Solve(phi)
		if err != nil {
			return fmt.Errorf(" calculation.Solve: %v", err)
		}

		var avg float64
		if approximation == GouyChapman {
			avg, err = calculateAverage(c.Grid, c.BulkXMin, c.BulkXMax, predicted)
		} else {
			avg, err = calculateAverage(msSub, c.BulkXMin, c.BulkXMax, c.Grid.Interpolate(predicted, msSub.X))
		}
		if err != nil {
			return fmt.Errorf(" calculation.Solve: %v", err)
		}

		conv = 0.
		for i := range phi {
			p := predicted[i] - avg
			phi[i] = c.Alpha*p + (1.-c.Alpha)*phi[i]
			d := p - phi[i]
			conv += d * d
		}
		conv /= float64(len(phi))
		if math.IsNaN(conv) || math.IsInf(conv, 0) {
			return fmt.Errorf(" calculation.Solve: diverged after %d iterations", niter+1)
		}
		niter++
		if verbose && niter%500 == 0 {
			fmt.Printf(" iteration %d: convergence %.3e / %.3e\n", niter, conv, c.Convergence)
		}
	}
	if verbose {
		fmt.Printf(" converged at iteration %d: convergence %.3e / %.3e\n", niter, conv, c.Convergence)
	}

	c.Phi = phi
	c.Rho = c.Grid.ChargeDensity(phi, c.Temp)
	c.NIter = niter
	return nil
}

// FormSubgrids builds a grid per site species. The end cells of each
// subgrid take their interior neighbour's width and volume.
func (c *Calculation) FormSubgrids(labels []string) error {
	c.SiteLabels = labels
	c.Subgrids = make(map[string]*grid.Grid, len(labels))
	for _, l := range labels {
		sub, err := c.Grid.Subgrid(l)
		if err != nil {
			return fmt.Errorf(" calculation.FormSubgrids: %v", err)
		}
		n := len(sub.X)
		sub.DeltaX[0] = sub.DeltaX[1]
		sub.DeltaX[n-1] = sub.DeltaX[1]
		sub.Volumes[0] = sub.Volumes[1]
		sub.Volumes[n-1] = sub.Volumes[1]
		sub.Points[0].Volume = sub.Volumes[0]
		sub.Points[n-1].Volume = sub.Volumes[n-1]
		c.Subgrids[l] = sub
	}
	return nil
}

// MoleFractions evaluates the defect occupation profile on each species
// subgrid from the converged potential.
func (c *Calculation) MoleFractions() error {
	if c.Phi == nil {
		return fmt.Errorf(" calculation.MoleFractions: no potential; solve first")
	}
	mf := make(map[string][]float64, len(c.SiteLabels))
	for _, l := range c.SiteLabels {
		sub, ok := c.Subgrids[l]
		if !ok {
			return fmt.Errorf(" calculation.MoleFractions: no subgrid for %s", l)
		}
		mf[l] = c.Grid.SubgridProbabilities(sub, c.Phi, c.Temp)
	}
	c.MF = mf
	return nil
}

// SpaceChargeRegion returns the positions on grid g where the potential,
// referenced to g's first position, exceeds the limit (sign Positive) or
// falls below it (sign Negative).
func (c *Calculation) SpaceChargeRegion(g *grid.Grid, sign string, scrLimit float64) ([]float64, error) {
	if c.Phi == nil {
		return nil, fmt.Errorf(" calculation.SpaceChargeRegion: no potential; solve first")
	}
	phiOn := c.Grid.Interpolate(c.Phi, g.X)
	var scr []float64
	for i, x := range g.X {
		d := phiOn[i] - phiOn[0]
		switch sign {
		case Positive:
			if d > scrLimit {
				scr = append(scr, x)
			}
		case Negative:
			if d < scrLimit {
				scr = append(scr, x)
			}
		default:
			return nil, fmt.Errorf(" calculation.SpaceChargeRegion: unknown sign %q", sign)
		}
	}
	return scr, nil
}

// subregionSet collects the sites of g lying within [minCutoff, maxCutoff].
func subregionSet(g *grid.Grid, minCutoff, maxCutoff float64) *site.Set {
	var sites []*site.Site
	for _, s := range g.Set.Sites {
		if s.X >= minCutoff && s.X <= maxCutoff {
			sites = append(sites, s)
		}
	}
	return site.NewSet(sites)
}

// findIndex returns the insertion indices of the cutoffs on the grid.
func findIndex(g *grid.Grid, minCutoff, maxCutoff float64) (int, int) {
	return sort.SearchFloat64s(g.X, minCutoff), sort.SearchFloat64s(g.X, maxCutoff)
}

// calculateOffset returns the midpoint distances bridging the averaging
// region's endmost cells to their first neighbours outside it.
func calculateOffset(g *grid.Grid, minCutoff, maxCutoff float64) ([2]float64, error) {
	mi, ma := findIndex(g, minCutoff, maxCutoff)
	if mi < 1 || mi+1 > len(g.X)-1 || ma < 2 || ma > len(g.X)-1 {
		return [2]float64{}, fmt.Errorf(" calculation: averaging region [%g,%g] too close to the grid edge", minCutoff, maxCutoff)
	}
	minOffset := (g.X[mi+1]-g.X[mi])/2. + (g.X[mi]-g.X[mi-1])/2.
	maxOffset := (g.X[ma]-g.X[ma-1])/2. + (g.X[ma-1]-g.X[ma-2])/2.
	return [2]float64{minOffset, maxOffset}, nil
}

// calculateAverage integrates a gridded property over (minCutoff,
// maxCutoff] weighted by the midpoint spacings, the end weights bridging
// to the first positions outside the region.
func calculateAverage(g *grid.Grid, minCutoff, maxCutoff float64, prop []float64) (float64, error) {
	mi, ma := findIndex(g, minCutoff, maxCutoff)
	if ma-mi-1 < 2 {
		return 0., fmt.Errorf(" calculation: averaging region [%g,%g] spans %d grid points, need at least 2", minCutoff, maxCutoff, ma-mi-1)
	}
	offsets, err := calculateOffset(g, minCutoff, maxCutoff)
	if err != nil {
		return 0., err
	}
	dx := grid.DeltaXFromGrid(g.X[mi+1:ma], offsets)
	num, den := 0., 0.
	for k, w := range dx {
		num += prop[mi+1+k] * w
		den += w
	}
	return num / den, nil
}
