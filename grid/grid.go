// Package grid defines the one-dimensional computational grid built from
// defect site positions, and the mapping of site statistics onto it.
package grid

import (
	"fmt"
	"sort"

	"github.com/j-m-dean/goscses/site"
)

// Point is one grid point and the sites located on it.
type Point struct {
	X      float64 // [m]
	Volume float64 // [m³]
	Sites  []*site.Site
}

// AverageSiteEnergy averages the defect segregation energies across the
// sites sharing this point, per defect. method is 'mean' or 'min', the
// latter appropriate for low-temperature calculations.
func (p *Point) AverageSiteEnergy(method string) ([]float64, error) {
	if len(p.Sites) == 0 {
		return nil, nil
	}
	n := len(p.Sites[0].Defects)
	for _, s := range p.Sites[1:] {
		if len(s.Defects) != n {
			return nil, fmt.Errorf(" grid.AverageSiteEnergy: ragged defect count at x=%g", p.X)
		}
	}
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		switch method {
		case "mean":
			sum := 0.
			for _, s := range p.Sites {
				sum += s.Defects[j].Energy
			}
			out[j] = sum / float64(len(p.Sites))
		case "min":
			min := p.Sites[0].Defects[j].Energy
			for _, s := range p.Sites[1:] {
				if e := s.Defects[j].Energy; e < min {
					min = e
				}
			}
			out[j] = min
		default:
			return nil, fmt.Errorf(" grid.AverageSiteEnergy: unknown method %q", method)
		}
	}
	return out, nil
}

// Grid is the 1D grid of unique site positions.
type Grid struct {
	X         []float64  // grid positions, ascending [m]
	DeltaX    []float64  // midpoint-to-midpoint widths [m]
	Volumes   []float64  // cell volumes [m³]
	Limits    [2]float64 // boundary half-cell widths [m]
	LapLimits [2]float64 // boundary spacings for the Laplacian [m]
	B, C      float64    // cell cross-section [m]
	Points    []*Point
	Set       *site.Set
}

// DeltaXFromGrid returns the distance between consecutive cell midpoints,
// the end cells taking the supplied boundary widths.
func DeltaXFromGrid(x []float64, limits [2]float64) []float64 {
	dx := make([]float64, len(x))
	for i := 1; i < len(x)-1; i++ {
		dx[i] = (x[i+1] - x[i-1]) / 2.
	}
	dx[0] = limits[0]
	dx[len(x)-1] = limits[1]
	return dx
}

// New builds a grid over the unique positions of the given sites.
func New(set *site.Set, limits, lapLimits [2]float64, b, c float64) (*Grid, error) {
	xs := set.UniqueX()
	if len(xs) < 2 {
		return nil, fmt.Errorf(" grid.New: %d unique site positions, need at least 2", len(xs))
	}
	g := &Grid{
		X:         xs,
		DeltaX:    DeltaXFromGrid(xs, limits),
		Limits:    limits,
		LapLimits: lapLimits,
		B:         b,
		C:         c,
		Set:       set,
	}
	g.Volumes = make([]float64, len(xs))
	g.Points = make([]*Point, len(xs))
	for i := range xs {
		g.Volumes[i] = g.DeltaX[i] * b * c
		g.Points[i] = &Point{X: xs[i], Volume: g.Volumes[i]}
	}
	for _, s := range set.Sites {
		i := g.ClosestIndex(s.X)
		g.Points[i].Sites = append(g.Points[i].Sites, s)
	}
	return g, nil
}

// ClosestIndex returns the index of the grid position closest to x.
func (g *Grid) ClosestIndex(x float64) int {
	return ClosestIndex(g.X, x)
}

// ClosestIndex returns the index of the closest value in ascending xs.
func ClosestIndex(xs []float64, x float64) int {
	i := sort.SearchFloat64s(xs, x)
	if i == 0 {
		return 0
	}
	if i == len(xs) {
		return len(xs) - 1
	}
	if x-xs[i-1] <= xs[i]-x {
		return i - 1
	}
	return i
}

// ValueAtX reads a gridded property at the grid point closest to x.
func (g *Grid) ValueAtX(prop []float64, x float64) float64 {
	return prop[g.ClosestIndex(x)]
}

// Interpolate maps a gridded property onto the given positions by
// closest-point lookup.
func (g *Grid) Interpolate(prop []float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = g.ValueAtX(prop, x)
	}
	return out
}

// Subgrid builds a grid over the sites of one label. Its end limits are
// taken from its own first and last spacings.
func (g *Grid) Subgrid(label string) (*Grid, error) {
	sub := g.Set.Subset(label)
	xs := sub.UniqueX()
	if len(xs) < 2 {
		return nil, fmt.Errorf(" grid.Subgrid %s: %d unique site positions, need at least 2", label, len(xs))
	}
	limits := [2]float64{xs[1] - xs[0], xs[len(xs)-1] - xs[len(xs)-2]}
	return New(sub, limits, limits, g.B, g.C)
}

// ChargeDensity returns the volumetric charge density [C/m³] at each
// grid point for the given potential.
func (g *Grid) ChargeDensity(phi []float64, temp float64) []float64 {
	rho := make([]float64, len(g.X))
	for i, pt := range g.Points {
		q := 0.
		for _, s := range pt.Sites {
			q += s.Charge(phi[i], temp)
		}
		rho[i] = q / pt.Volume
	}
	return rho
}

// SubgridProbabilities returns the mean defect occupation probability at
// each point of subgrid sub, the potential being read from this grid.
func (g *Grid) SubgridProbabilities(sub *Grid, phi []float64, temp float64) []float64 {
	p := make([]float64, len(sub.X))
	for i, pt := range sub.Points {
		if len(pt.Sites) == 0 {
			continue
		}
		phiX := phi[g.ClosestIndex(pt.X)]
		sum := 0.
		for _, s := range pt.Sites {
			sum += s.MeanProbability(phiX, temp)
		}
		p[i] = sum / float64(len(pt.Sites))
	}
	return p
}

// SubgridDefectDensities returns the defect number density [m⁻³] at each
// point of subgrid sub, the potential being read from this grid.
func (g *Grid) SubgridDefectDensities(sub *Grid, phi []float64, temp float64) []float64 {
	n := make([]float64, len(sub.X))
	for i, pt := range sub.Points {
		phiX := phi[g.ClosestIndex(pt.X)]
		occ := 0.
		for _, s := range pt.Sites {
			occ += s.Occupancy(phiX, temp)
		}
		n[i] = occ / sub.Volumes[i]
	}
	return n
}
