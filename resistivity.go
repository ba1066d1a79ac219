package goscses

import (
	"fmt"
	"math"

	"github.com/j-m-dean/goscses/grid"
	"github.com/j-m-dean/goscses/phys"
)

// MobileDefectConductivities compares the conductivity of one species
// across the space-charge region against a bulk window of equal width.
//
// The space-charge region is detected on the species subgrid, a bulk
// window of the same width is opened at BulkXMin, and each region is
// treated as its sites' resistors: in series perpendicular to the
// boundary, in parallel along it. The returned values are the
// space-charge to bulk ratios of the two effective conductivities.
// With mobilityScaling the point conductivities carry the volume
// exclusion blocking term (1-x) in both regions. An immobile species
// returns zero ratios.
func (c *Calculation) MobileDefectConductivities(sign string, scrLimit float64, speciesLabel string, mobilityScaling bool) (float64, float64, error) {
	sub, ok := c.Subgrids[speciesLabel]
	if !ok {
		return 0., 0., fmt.Errorf(" calculation.MobileDefectConductivities: no subgrid for %s; form subgrids first", speciesLabel)
	}
	d := sub.Set.Sites[0].Defects[0]
	if d.Mobility == 0. {
		return 0., 0., nil
	}

	scr, err := c.SpaceChargeRegion(sub, sign, scrLimit)
	if err != nil {
		return 0., 0., err
	}
	if len(scr) < 2 {
		return 0., 0., fmt.Errorf(" calculation.MobileDefectConductivities: no space-charge region detected for %s", speciesLabel)
	}
	minX, maxX := scr[0], scr[len(scr)-1]

	scrLimits, err := calculateOffset(sub, minX, maxX)
	if err != nil {
		return 0., 0., err
	}
	scrGrid, err := grid.New(subregionSet(sub, minX, maxX), scrLimits, scrLimits, c.Grid.B, c.Grid.C)
	if err != nil {
		return 0., 0., fmt.Errorf(" calculation.MobileDefectConductivities: %v", err)
	}
	width := scrGrid.X[len(scrGrid.X)-1] - scrGrid.X[0]

	bulkXMax := c.BulkXMin + width
	bulkLimits, err := calculateOffset(sub, c.BulkXMin, bulkXMax)
	if err != nil {
		return 0., 0., err
	}
	bulkGrid, err := grid.New(subregionSet(sub, c.BulkXMin, bulkXMax), bulkLimits, bulkLimits, c.Grid.B, c.Grid.C)
	if err != nil {
		return 0., 0., fmt.Errorf(" calculation.MobileDefectConductivities: bulk window [%g,%g]: %v", c.BulkXMin, bulkXMax, err)
	}
	c.BulkLimits = bulkLimits

	sigmaSCR := c.pointConductivities(scrGrid, d.Valence, d.Mobility, mobilityScaling)
	sigmaBulk := c.pointConductivities(bulkGrid, d.Valence, d.Mobility, mobilityScaling)

	perpSCR, parSCR := regionConductivities(scrGrid.DeltaX, sigmaSCR)
	perpBulk, parBulk := regionConductivities(bulkGrid.DeltaX, sigmaBulk)

	// bulk density retained for the Debye length
	nBulk := c.Grid.SubgridDefectDensities(bulkGrid, c.Phi, c.Temp)
	num, den := 0., 0.
	for i, w := range bulkGrid.DeltaX {
		num += w * nBulk[i]
		den += w
	}
	c.avgBulkMobileDefectDensity = num / den

	return perpSCR / perpBulk, parSCR / parBulk, nil
}

// pointConductivities evaluates sigma = n |z| e mu at each point of g,
// optionally blocked by the volume exclusion term (1-x).
func (c *Calculation) pointConductivities(g *grid.Grid, valence, mobility float64, mobilityScaling bool) []float64 {
	n := c.Grid.SubgridDefectDensities(g, c.Phi, c.Temp)
	sigma := make([]float64, len(n))
	if mobilityScaling {
		mf := c.Grid.SubgridProbabilities(g, c.Phi, c.Temp)
		for i := range sigma {
			sigma[i] = n[i] * math.Abs(valence) * phys.FundamentalCharge * mobility * (1. - mf[i])
		}
		return sigma
	}
	for i := range sigma {
		sigma[i] = n[i] * math.Abs(valence) * phys.FundamentalCharge * mobility
	}
	return sigma
}

// regionConductivities reduces point conductivities over a region to the
// series (perpendicular) and parallel effective conductivities.
func regionConductivities(dx, sigma []float64) (perp, par float64) {
	var w, rSeries, gParallel float64
	for i := range dx {
		w += dx[i]
		rSeries += dx[i] / sigma[i]
		gParallel += sigma[i] * dx[i]
	}
	return w / rSeries, gParallel / w
}

// ResistivityRatio sums the species conductivity ratios and stores the
// reciprocals as the perpendicular and parallel grain-boundary
// resistivity ratios.
func (c *Calculation) ResistivityRatio(sign string, scrLimit float64, mobilityScaling bool) error {
	if len(c.SiteLabels) == 0 {
		return fmt.Errorf(" calculation.ResistivityRatio: no site labels defined; form subgrids first")
	}
	var sumPerp, sumPar float64
	for _, l := range c.SiteLabels {
		perp, par, err := c.MobileDefectConductivities(sign, scrLimit, l, mobilityScaling)
		if err != nil {
			return err
		}
		sumPerp += perp
		sumPar += par
	}
	if sumPerp == 0. || sumPar == 0. {
		return fmt.Errorf(" calculation.ResistivityRatio: no mobile defect species among %v", c.SiteLabels)
	}
	c.PerpendicularResistivityRatio = 1. / sumPerp
	c.ParallelResistivityRatio = 1. / sumPar
	return nil
}
