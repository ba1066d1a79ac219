package prep

import (
	"fmt"
	"sort"
)

// Grain-boundary geometries. A single system has a boundary at one end
// of the window; a double system mirrors the lower end.
const (
	SystemSingle = "single"
	SystemDouble = "double"
)

// StructureData holds the sites inside the calculation window plus the
// pair immediately outside it, from which the grid boundary terms
// derive.
type StructureData struct {
	Sites    []*SiteData
	Adjacent [2]*SiteData // last site below the window, first at or above it
	XLimits  [2]float64
	System   string
	SiteX    []float64 // unique inner site positions, ascending
}

// NewStructureData splits sorted parsed sites at the window bounds.
// A site on each side of the window must remain outside it.
func NewStructureData(data []*SiteData, xmin, xmax float64, system string) (*StructureData, error) {
	if system != SystemSingle && system != SystemDouble {
		return nil, fmt.Errorf(" prep.NewStructureData: unknown system %q", system)
	}
	xs := make([]float64, len(data))
	for i, sd := range data {
		xs[i] = sd.X
	}
	il := sort.SearchFloat64s(xs, xmin)
	iu := sort.SearchFloat64s(xs, xmax)
	if il < 1 || iu >= len(data) {
		return nil, fmt.Errorf(" prep.NewStructureData: window [%g,%g] must leave a site outside each bound", xmin, xmax)
	}
	s := &StructureData{
		Sites:    data[il:iu],
		Adjacent: [2]*SiteData{data[il-1], data[iu]},
		XLimits:  [2]float64{xmin, xmax},
		System:   system,
	}
	for _, sd := range s.Sites {
		if n := len(s.SiteX); n == 0 || s.SiteX[n-1] != sd.X {
			s.SiteX = append(s.SiteX, sd.X)
		}
	}
	if len(s.SiteX) < 2 {
		return nil, fmt.Errorf(" prep.NewStructureData: %d unique site positions inside [%g,%g], need at least 2", len(s.SiteX), xmin, xmax)
	}
	return s, nil
}

// Limits returns the end cell widths of the grid, midpoint-to-midpoint
// across the boundary-adjacent sites.
func (s *StructureData) Limits() [2]float64 {
	minOff := (s.SiteX[1] - s.Adjacent[0].X) / 2.
	maxOff := (s.Adjacent[1].X - s.SiteX[len(s.SiteX)-2]) / 2.
	if s.System == SystemDouble {
		return [2]float64{minOff, minOff}
	}
	return [2]float64{minOff, maxOff}
}

// LaplacianLimits returns the end spacings of the Poisson stencil, the
// distances from the end sites to their outside neighbours.
func (s *StructureData) LaplacianLimits() [2]float64 {
	minOff := s.SiteX[0] - s.Adjacent[0].X
	if s.System == SystemDouble {
		return [2]float64{minOff, minOff}
	}
	return [2]float64{minOff, s.Adjacent[1].X - s.SiteX[len(s.SiteX)-1]}
}
