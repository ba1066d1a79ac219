package goscses

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// setMoleFractions writes one bulk mole fraction per site label into the
// species segregated on that label's sites.
func (c *Calculation) setMoleFractions(labels []string, values []float64) {
	for i, l := range labels {
		for _, sp := range c.Grid.Set.Subset(l).Species() {
			sp.MoleFraction = values[i]
		}
	}
}

// MoleFractionOutput solves the model with the given input bulk mole
// fractions, one per site label in order, and returns the bulk-averaged
// mole fraction each species actually converged to.
func (c *Calculation) MoleFractionOutput(inputs []float64, approximation string) ([]float64, error) {
	if len(inputs) == 0 || len(inputs) > len(c.SiteLabels) {
		return nil, fmt.Errorf(" calculation.MoleFractionOutput: %d mole fractions for %d site labels", len(inputs), len(c.SiteLabels))
	}
	labels := c.SiteLabels[:len(inputs)]
	c.setMoleFractions(labels, inputs)
	if err := c.Solve(approximation, false); err != nil {
		return nil, err
	}
	if err := c.FormSubgrids(labels); err != nil {
		return nil, err
	}
	if err := c.MoleFractions(); err != nil {
		return nil, err
	}
	out := make([]float64, len(labels))
	for i, l := range labels {
		avg, err := calculateAverage(c.Subgrids[l], c.BulkXMin, c.BulkXMax, c.MF[l])
		if err != nil {
			return nil, err
		}
		out[i] = avg
	}
	return out, nil
}

// MoleFractionError returns the root mean square difference between the
// converged bulk mole fractions for the given inputs and the targets.
func (c *Calculation) MoleFractionError(inputs, targets []float64, approximation string) (float64, error) {
	outputs, err := c.MoleFractionOutput(inputs, approximation)
	if err != nil {
		return 0., err
	}
	return objfunc.RMSE(targets, outputs), nil
}

// MoleFractionCorrection searches for input bulk mole fractions whose
// converged bulk averages reproduce the targets. Site exclusion shifts
// the converged average away from the nominal input, so the inputs are
// treated as free parameters on [1e-4,1] and fit by shuffled complex
// evolution, or a Fibonacci line search for a single species. The
// optimum is written back into the defect species and the model left
// solved there.
func (c *Calculation) MoleFractionCorrection(targets []float64, approximation string) ([]float64, error) {
	p := len(targets)
	if p == 0 || p > len(c.SiteLabels) {
		return nil, fmt.Errorf(" calculation.MoleFractionCorrection: %d targets for %d site labels", p, len(c.SiteLabels))
	}

	trans := func(u float64) float64 {
		return mmaths.LogLinearTransform(1e-4, 1., u)
	}
	gen := func(u []float64) float64 {
		mf := make([]float64, p)
		for i := range u {
			mf[i] = trans(u[i])
		}
		of, err := c.MoleFractionError(mf, targets, approximation)
		if err != nil {
			return 1e9
		}
		return of
	}

	var uFinal []float64
	if p == 1 {
		u, _ := glbopt.Fibonacci(gen)
		uFinal = []float64{u}
	} else {
		rng := rand.New(mrg63k3a.New())
		rng.Seed(time.Now().UnixNano())
		uFinal, _ = glbopt.SCE(runtime.GOMAXPROCS(0), p, rng, gen, true)
	}

	opt := make([]float64, p)
	for i := range uFinal {
		opt[i] = trans(uFinal[i])
	}
	if _, err := c.MoleFractionOutput(opt, approximation); err != nil {
		return nil, err
	}
	return opt, nil
}
