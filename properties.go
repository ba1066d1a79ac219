package goscses

import (
	"fmt"
	"math"

	"github.com/j-m-dean/goscses/num"
	"github.com/j-m-dean/goscses/phys"
)

// MottSchottkyPhi recovers the space-charge potential the Mott-Schottky
// analysis would infer from the perpendicular grain-boundary resistivity
// ratio, for a mobile defect of the given valence. The ratio enters
// through the lower branch of the Lambert W function, which requires
// r > 1.36.
func (c *Calculation) MottSchottkyPhi(valence float64) (float64, error) {
	if c.PerpendicularResistivityRatio < 1.36 {
		return 0., fmt.Errorf(" calculation.MottSchottkyPhi: perpendicular resistivity ratio %.4g below 1.36, outside the Mott-Schottky regime", c.PerpendicularResistivityRatio)
	}
	w, err := num.LambertWm1(-1. / (2. * c.PerpendicularResistivityRatio))
	if err != nil {
		return 0., fmt.Errorf(" calculation.MottSchottkyPhi: %v", err)
	}
	c.MSPhi = -w * phys.BoltzmannEV * c.Temp / valence
	return c.MSPhi, nil
}

// CalculateDebyeLength evaluates the Debye screening length from the
// average bulk mobile defect density, all terms in SI units.
func (c *Calculation) CalculateDebyeLength() error {
	if c.avgBulkMobileDefectDensity <= 0. {
		return fmt.Errorf(" calculation.CalculateDebyeLength: no bulk mobile defect density recorded; compute a resistivity ratio first")
	}
	kT := phys.EVToJoules(phys.BoltzmannEV * c.Temp)
	e := phys.FundamentalCharge
	c.DebyeLength = math.Sqrt(c.Dielectric * phys.VacuumPermittivity * kT / (2. * e * e * c.avgBulkMobileDefectDensity))
	return nil
}

// CalculateSpaceChargeWidth estimates the space-charge layer width from
// the Debye length and the peak potential, for a defect of the given
// valence.
func (c *Calculation) CalculateSpaceChargeWidth(valence float64) error {
	if c.DebyeLength <= 0. {
		return fmt.Errorf(" calculation.CalculateSpaceChargeWidth: Debye length not set")
	}
	peak := 0.
	for _, p := range c.Phi {
		if math.Abs(p) > math.Abs(peak) {
			peak = p
		}
	}
	arg := peak * valence / (phys.BoltzmannEV * c.Temp)
	if arg < 0. {
		return fmt.Errorf(" calculation.CalculateSpaceChargeWidth: potential %.4g and valence %g of opposite sign", peak, valence)
	}
	c.SpaceChargeWidth = 2. * c.DebyeLength * math.Sqrt(arg)
	return nil
}

// ActivationEnergies converts grain-boundary resistivity ratios over a
// set of temperatures into per-temperature activation energies [eV] by
// differentiating the Arrhenius form ln(1/r) against 1/T. The end
// temperatures have no centred difference and come back NaN.
func ActivationEnergies(ratios, temps []float64) ([]float64, error) {
	if len(ratios) != len(temps) {
		return nil, fmt.Errorf(" goscses.ActivationEnergies: %d ratios for %d temperatures", len(ratios), len(temps))
	}
	if len(temps) < 3 {
		return nil, fmt.Errorf(" goscses.ActivationEnergies: need at least 3 temperatures, got %d", len(temps))
	}
	x := make([]float64, len(temps))
	y := make([]float64, len(temps))
	for i := range temps {
		x[i] = 1. / temps[i]
		y[i] = math.Log(1. / ratios[i])
	}
	d := num.DiffCentral(x, y)
	ea := make([]float64, len(temps))
	ea[0] = math.NaN()
	ea[len(ea)-1] = math.NaN()
	for i, s := range d {
		ea[i+1] = -s * phys.BoltzmannEV
	}
	return ea, nil
}
