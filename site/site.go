// Package site models the crystallographic sites available to defect
// segregation, and ordered collections of them.
package site

import (
	"fmt"

	"github.com/j-m-dean/goscses/defect"
	"github.com/j-m-dean/goscses/phys"
)

// Site is one crystallographic site at position X hosting a set of
// competing defects.
type Site struct {
	Label   string
	X       float64 // [m]
	Valence float64 // intrinsic site charge number; zero unless site charges are enabled
	Scaling []float64
	Defects []*defect.AtSite
}

// New builds a site hosting one defect per species/energy pair, with
// unit occupation scaling and no intrinsic site charge.
func New(label string, x float64, species []*defect.Species, energies []float64) (*Site, error) {
	return NewScaled(label, x, species, energies, nil, 0.)
}

// NewScaled builds a site with explicit per-defect occupation scaling
// and an intrinsic site charge. A nil scaling defaults to ones.
func NewScaled(label string, x float64, species []*defect.Species, energies, scaling []float64, valence float64) (*Site, error) {
	if len(species) != len(energies) {
		return nil, fmt.Errorf(" site.New %s: %d defect species for %d energies", label, len(species), len(energies))
	}
	if scaling == nil {
		scaling = make([]float64, len(species))
		for i := range scaling {
			scaling[i] = 1.
		}
	} else if len(scaling) != len(species) {
		return nil, fmt.Errorf(" site.New %s: %d defect species for %d scaling factors", label, len(species), len(scaling))
	}
	defects := make([]*defect.AtSite, len(species))
	for i, sp := range species {
		defects[i] = &defect.AtSite{Species: sp, Energy: energies[i]}
	}
	return &Site{
		Label:   label,
		X:       x,
		Valence: valence,
		Scaling: scaling,
		Defects: defects,
	}, nil
}

// DefectWithLabel returns the hosted defect of the given species label.
func (s *Site) DefectWithLabel(label string) (*defect.AtSite, error) {
	for _, d := range s.Defects {
		if d.Label == label {
			return d, nil
		}
	}
	return nil, fmt.Errorf(" site %s: no defect labelled %s", s.Label, label)
}

// Energies lists the segregation energies of the hosted defects.
func (s *Site) Energies() []float64 {
	e := make([]float64, len(s.Defects))
	for i, d := range s.Defects {
		e[i] = d.Energy
	}
	return e
}

// MeanEnergy returns the mean segregation energy across the hosted defects.
func (s *Site) MeanEnergy() float64 {
	sum := 0.
	for _, d := range s.Defects {
		sum += d.Energy
	}
	return sum / float64(len(s.Defects))
}

// Probabilities returns the equilibrium occupation probability of each
// hosted defect at potential phi [V]. Mobile defects compete for the
// site; fixed defects hold their bulk mole fraction.
func (s *Site) Probabilities(phi, temp float64) []float64 {
	den := 1.
	for _, d := range s.Defects {
		if !d.Fixed {
			den += d.ExcessWeight(phi, temp)
		}
	}
	p := make([]float64, len(s.Defects))
	for i, d := range s.Defects {
		if d.Fixed {
			p[i] = d.MoleFraction
		} else {
			p[i] = d.OccupationWeight(phi, temp) / den
		}
	}
	return p
}

// MeanProbability returns the mean of the defect occupation
// probabilities at this site.
func (s *Site) MeanProbability(phi, temp float64) float64 {
	p := s.Probabilities(phi, temp)
	sum := 0.
	for _, pi := range p {
		sum += pi
	}
	return sum / float64(len(p))
}

// Occupancy returns the summed defect occupation at this site.
func (s *Site) Occupancy(phi, temp float64) float64 {
	sum := 0.
	for _, pi := range s.Probabilities(phi, temp) {
		sum += pi
	}
	return sum
}

// Charge returns the site charge [C] at potential phi [V]: the intrinsic
// site charge plus the expected defect charge, scaled per defect.
func (s *Site) Charge(phi, temp float64) float64 {
	q := s.Valence
	for i, p := range s.Probabilities(phi, temp) {
		q += p * s.Defects[i].Valence * s.Scaling[i]
	}
	return q * phys.FundamentalCharge
}
