package prep

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
	"github.com/maseology/mmio"
	"github.com/mroth/weightedrand"
	"gonum.org/v1/gonum/floats"
)

// GenerateSpec declares a synthetic sites data file: per site family a
// regular lattice of planes across the window, each defect species
// carrying a Gaussian segregation energy well centred on the boundary
// core.
type GenerateSpec struct {
	XMin, XMax float64 // window [m]
	X0         float64 // boundary core position [m]
	Occupancy  float64 // fraction of planes kept; 0 or 1 keeps all
	Seed       int64   // 0 seeds from the clock
	Sites      []GenerateSite
}

// GenerateSite is one site family of a synthetic structure.
type GenerateSite struct {
	Label   string
	Valence float64
	N       int     // planes across the window
	Offset  float64 // lattice phase shift [m]
	Defects []GenerateDefect
}

// GenerateDefect is one defect species' energy well on a site family.
type GenerateDefect struct {
	Label string
	Depth float64 // well depth at the core [eV]; negative binds the defect
	Width float64 // Gaussian width [m]
}

// Generate builds the site data a GenerateSpec describes, thinning the
// planes at random when a partial occupancy is set.
func Generate(spec *GenerateSpec) ([]*SiteData, error) {
	if spec.XMax <= spec.XMin {
		return nil, fmt.Errorf(" prep.Generate: window [%g,%g]", spec.XMin, spec.XMax)
	}
	if len(spec.Sites) == 0 {
		return nil, fmt.Errorf(" prep.Generate: no site families declared")
	}

	rng := rand.New(mrg63k3a.New())
	if spec.Seed != 0 {
		rng.Seed(spec.Seed)
	} else {
		rng.Seed(time.Now().UnixNano())
	}

	var chooser *weightedrand.Chooser
	if spec.Occupancy > 0. && spec.Occupancy < 1. {
		keep := uint(math.Round(spec.Occupancy * 1000.))
		var err error
		chooser, err = weightedrand.NewChooser(
			weightedrand.NewChoice(true, keep),
			weightedrand.NewChoice(false, 1000-keep),
		)
		if err != nil {
			return nil, fmt.Errorf(" prep.Generate: %v", err)
		}
	}

	var data []*SiteData
	for _, fam := range spec.Sites {
		if fam.N < 2 {
			return nil, fmt.Errorf(" prep.Generate %s: %d planes, need at least 2", fam.Label, fam.N)
		}
		for _, d := range fam.Defects {
			if d.Depth != 0. && d.Width <= 0. {
				return nil, fmt.Errorf(" prep.Generate %s: defect %s well width %g", fam.Label, d.Label, d.Width)
			}
		}
		for _, x := range floats.Span(make([]float64, fam.N), spec.XMin, spec.XMax) {
			x += fam.Offset
			if chooser != nil && !chooser.PickSource(rng).(bool) {
				continue
			}
			dd := make([]DefectData, len(fam.Defects))
			for j, d := range fam.Defects {
				g := x - spec.X0
				e := 0.
				if d.Depth != 0. {
					e = d.Depth * math.Exp(-g*g/(2.*d.Width*d.Width))
				}
				dd[j] = DefectData{Label: d.Label, Energy: e}
			}
			data = append(data, &SiteData{Label: fam.Label, Valence: fam.Valence, X: x, Defects: dd})
		}
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].X < data[j].X })
	return data, nil
}

// WriteSitesFile renders site data into a sites data file.
func WriteSitesFile(fp string, data []*SiteData) error {
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf(" prep.WriteSitesFile %v", err)
	}
	defer tw.Close()
	for _, sd := range data {
		tw.WriteLine(sd.InputString())
	}
	return nil
}
