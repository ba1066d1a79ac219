package prep

import (
	"errors"
	"fmt"
	"math"

	"github.com/j-m-dean/goscses/defect"
	"github.com/j-m-dean/goscses/phys"
	"github.com/j-m-dean/goscses/site"
)

// ErrUnknownLabel reports a defect label with no declared species.
var ErrUnknownLabel = errors.New("prep: unknown defect species label")

// Boundary-core segregation energy models.
const (
	CoreAll       = "all"
	CoreSingle    = "single"
	CoreMultiSite = "multi-site"
)

// BuildSites turns parsed site data into the solver's site set, one
// site per input line. With siteCharge false the host site valences are
// zeroed, leaving the defects as the only charge carriers. The core
// model reshapes the segregation energies: all keeps them as given,
// single keeps only the minimum-energy site per defect species, and
// multi-site zeroes energies within kB T of zero.
func BuildSites(data []*SiteData, species map[string]*defect.Species, siteCharge bool, coreModel string, temp float64) (*site.Set, error) {
	energies := make([][]float64, len(data))
	for i, sd := range data {
		energies[i] = make([]float64, len(sd.Defects))
		for j, d := range sd.Defects {
			energies[i][j] = d.Energy
		}
	}

	switch coreModel {
	case CoreAll:
	case CoreSingle:
		type seat struct{ i, j int }
		minAt := make(map[string]seat)
		for i, sd := range data {
			for j, d := range sd.Defects {
				if at, ok := minAt[d.Label]; !ok || d.Energy < energies[at.i][at.j] {
					minAt[d.Label] = seat{i, j}
				}
			}
		}
		for i, sd := range data {
			for j, d := range sd.Defects {
				if minAt[d.Label] != (seat{i, j}) {
					energies[i][j] = 0.
				}
			}
		}
	case CoreMultiSite:
		kT := phys.BoltzmannEV * temp
		for i := range energies {
			for j := range energies[i] {
				if math.Abs(energies[i][j]) < kT {
					energies[i][j] = 0.
				}
			}
		}
	default:
		return nil, fmt.Errorf(" prep.BuildSites: unknown core model %q", coreModel)
	}

	sites := make([]*site.Site, len(data))
	for i, sd := range data {
		sps := make([]*defect.Species, len(sd.Defects))
		for j, d := range sd.Defects {
			sp, ok := species[d.Label]
			if !ok {
				return nil, fmt.Errorf(" prep.BuildSites: %w: %s", ErrUnknownLabel, d.Label)
			}
			sps[j] = sp
		}
		valence := sd.Valence
		if !siteCharge {
			valence = 0.
		}
		s, err := site.NewScaled(sd.Label, sd.X, sps, energies[i], nil, valence)
		if err != nil {
			return nil, fmt.Errorf(" prep.BuildSites: %v", err)
		}
		sites[i] = s
	}
	return site.NewSet(sites), nil
}
