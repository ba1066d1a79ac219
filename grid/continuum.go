package grid

import (
	"fmt"

	"github.com/j-m-dean/goscses/defect"
	"github.com/j-m-dean/goscses/site"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// FormContinuum resamples the site-explicit structure onto a regular
// n-point grid over [xmin, xmax]. Segregation energies are linearly
// interpolated between the explicit site positions and the occupation
// scaling of each resampled site family is reduced to
// n(explicit)/n(points), preserving the total defect content.
func FormContinuum(set *site.Set, xmin, xmax float64, n int, b, c float64) (*Grid, error) {
	if n < 3 {
		return nil, fmt.Errorf(" grid.FormContinuum: %d grid points, need at least 3", n)
	}
	if xmax <= xmin {
		return nil, fmt.Errorf(" grid.FormContinuum: empty range [%g,%g]", xmin, xmax)
	}
	xs := floats.Span(make([]float64, n), xmin, xmax)
	h := xs[1] - xs[0]

	var sites []*site.Site
	for _, label := range set.Labels() {
		sub := set.Subset(label)
		ux := sub.UniqueX()
		if len(ux) < 2 {
			return nil, fmt.Errorf(" grid.FormContinuum %s: %d unique site positions, need at least 2", label, len(ux))
		}
		first := sub.Sites[0]
		nd := len(first.Defects)
		for _, s := range sub.Sites[1:] {
			if len(s.Defects) != nd {
				return nil, fmt.Errorf(" grid.FormContinuum %s: ragged defect count", label)
			}
		}
		scaling := make([]float64, nd)
		for j := range scaling {
			scaling[j] = float64(sub.Len()) / float64(n)
		}

		// per-defect energy profiles averaged over coincident sites
		profiles := make([]interp.PiecewiseLinear, nd)
		for j := 0; j < nd; j++ {
			es := make([]float64, len(ux))
			for k, x := range ux {
				sum, cnt := 0., 0
				for _, s := range sub.Sites {
					if s.X == x {
						sum += s.Defects[j].Energy
						cnt++
					}
				}
				es[k] = sum / float64(cnt)
			}
			if err := profiles[j].Fit(ux, es); err != nil {
				return nil, fmt.Errorf(" grid.FormContinuum %s: %v", label, err)
			}
		}

		species := speciesOf(first)
		for _, x := range xs {
			energies := make([]float64, nd)
			for j := 0; j < nd; j++ {
				energies[j] = profiles[j].Predict(x)
			}
			st, err := site.NewScaled(label, x, species, energies, scaling, 0.)
			if err != nil {
				return nil, fmt.Errorf(" grid.FormContinuum %s: %v", label, err)
			}
			sites = append(sites, st)
		}
	}

	cs := site.NewSet(sites)
	cs.SortByX()
	return New(cs, [2]float64{h, h}, [2]float64{h, h}, b, c)
}

func speciesOf(s *site.Site) []*defect.Species {
	sp := make([]*defect.Species, len(s.Defects))
	for i, d := range s.Defects {
		sp[i] = d.Species
	}
	return sp
}
