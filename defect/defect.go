// Package defect describes the point-defect species partaking in
// space-charge formation and their site-occupation statistics.
package defect

import (
	"math"

	"github.com/j-m-dean/goscses/phys"
)

// Species is one defect species, e.g. an oxygen vacancy or a dopant.
type Species struct {
	Label        string
	Valence      float64 // formal charge number z
	MoleFraction float64 // bulk site fraction
	Mobility     float64 // [m²/Vs]
	Fixed        bool    // immobile; held at the bulk mole fraction
}

// NewSpecies returns a mobile species.
func NewSpecies(label string, valence, moleFraction, mobility float64) *Species {
	return &Species{Label: label, Valence: valence, MoleFraction: moleFraction, Mobility: mobility}
}

// NewFixedSpecies returns an immobile species, e.g. a Mott-Schottky dopant.
func NewFixedSpecies(label string, valence, moleFraction float64) *Species {
	return &Species{Label: label, Valence: valence, MoleFraction: moleFraction, Fixed: true}
}

// AtSite is a species segregated to a particular site, carrying that
// site's segregation energy.
type AtSite struct {
	*Species
	Energy float64 // segregation energy [eV]
}

// PotentialEnergy returns the defect potential energy z*phi + dE [eV]
// at electrostatic potential phi [V].
func (a *AtSite) PotentialEnergy(phi float64) float64 {
	return phi*a.Valence + a.Energy
}

// Boltzmann returns the Boltzmann factor exp(-(z*phi+dE)/kT).
func (a *AtSite) Boltzmann(phi, temp float64) float64 {
	return math.Exp(-a.PotentialEnergy(phi) / (phys.BoltzmannEV * temp))
}

// ExcessWeight returns x*(B-1), the defect's contribution to the
// site-exclusion denominator.
func (a *AtSite) ExcessWeight(phi, temp float64) float64 {
	return a.MoleFraction * (a.Boltzmann(phi, temp) - 1.)
}

// OccupationWeight returns x*B, the defect's unnormalised occupation.
func (a *AtSite) OccupationWeight(phi, temp float64) float64 {
	return a.MoleFraction * a.Boltzmann(phi, temp)
}
