package goscses

import (
	"fmt"

	"github.com/j-m-dean/goscses/grid"
	"github.com/j-m-dean/goscses/prep"
	"github.com/j-m-dean/goscses/site"
)

// Domain gathers the staged pieces of a configured calculation.
type Domain struct {
	Config    *Config
	Structure *prep.StructureData
	Set       *site.Set
	Grid      *grid.Grid
	Calc      *Calculation
}

// BuildDomain stages a calculation from a control file: sites data
// (generated first when a generate block is present), the structure
// split at the calculation window, the site set, the grid and the
// calculation over it.
func BuildDomain(cfg *Config, verbose bool) (*Domain, error) {
	step := func(s string) {
		if verbose {
			fmt.Println(s)
		}
	}

	if cfg.Generate != nil {
		step("generating sites data..")
		data, err := prep.Generate(cfg.Generate)
		if err != nil {
			return nil, fmt.Errorf(" BuildDomain: %v", err)
		}
		if cfg.Sites == "" {
			cfg.Sites = cfg.Prfx + "sites.dat"
		}
		if err := prep.WriteSitesFile(cfg.Sites, data); err != nil {
			return nil, fmt.Errorf(" BuildDomain: %v", err)
		}
	}

	step("loading sites data..")
	sd, err := prep.StructureDataFromFile(cfg.Sites, cfg.Domain.XMin, cfg.Domain.XMax, cfg.Domain.System, cfg.Domain.ClusterThreshold)
	if err != nil {
		return nil, fmt.Errorf(" BuildDomain: %v", err)
	}

	step("  building site set..")
	set, err := prep.BuildSites(sd.Sites, cfg.SpeciesMap(), cfg.Solver.SiteCharge, cfg.Solver.CoreModel, cfg.Solver.Temp)
	if err != nil {
		return nil, fmt.Errorf(" BuildDomain: %v", err)
	}

	step("  building grid..")
	g, err := grid.New(set, sd.Limits(), sd.LaplacianLimits(), cfg.Domain.B, cfg.Domain.C)
	if err != nil {
		return nil, fmt.Errorf(" BuildDomain: %v", err)
	}

	c := NewCalculation(g, cfg.Solver.BulkXMin, cfg.Solver.BulkXMax,
		cfg.Solver.Alpha, cfg.Solver.Convergence, cfg.Solver.Dielectric,
		cfg.Solver.Temp, cfg.Solver.BC)
	c.MaxIter = cfg.Solver.MaxIter

	return &Domain{
		Config:    cfg,
		Structure: sd,
		Set:       set,
		Grid:      g,
		Calc:      c,
	}, nil
}

// Run iterates the calculation to self-consistency and evaluates the
// occupation profiles and resistivity ratios. Regime-dependent derived
// properties (Mott-Schottky potential, Debye length, space-charge
// width) are left to the caller.
func (d *Domain) Run(verbose bool) error {
	cfg := d.Config
	if err := d.Calc.FormSubgrids(cfg.Solver.SiteLabels); err != nil {
		return fmt.Errorf(" Domain.Run: %v", err)
	}
	if verbose {
		fmt.Println("solving..")
	}
	if err := d.Calc.Solve(cfg.Solver.Approximation, verbose); err != nil {
		return fmt.Errorf(" Domain.Run: %v", err)
	}
	if err := d.Calc.MoleFractions(); err != nil {
		return fmt.Errorf(" Domain.Run: %v", err)
	}
	if err := d.Calc.ResistivityRatio(cfg.Solver.Sign, cfg.Solver.SCRLimit, cfg.Solver.MobilityScaling); err != nil {
		return fmt.Errorf(" Domain.Run: %v", err)
	}
	return nil
}

// MobileValence returns the charge number of the first mobile species
// declared, the carrier whose depletion the Mott-Schottky properties
// describe.
func (d *Domain) MobileValence() (float64, error) {
	for _, s := range d.Config.Species {
		if !s.Fixed {
			return s.Valence, nil
		}
	}
	return 0., fmt.Errorf(" Domain.MobileValence: no mobile species declared")
}

// NewSweep frames a temperature sweep re-using the domain's site set
// and grid geometry.
func (d *Domain) NewSweep() *Sweep {
	cfg := d.Config
	return &Sweep{
		Set:             d.Set,
		Limits:          d.Structure.Limits(),
		LapLimits:       d.Structure.LaplacianLimits(),
		B:               cfg.Domain.B,
		C:               cfg.Domain.C,
		BulkXMin:        cfg.Solver.BulkXMin,
		BulkXMax:        cfg.Solver.BulkXMax,
		Alpha:           cfg.Solver.Alpha,
		Convergence:     cfg.Solver.Convergence,
		Dielectric:      cfg.Solver.Dielectric,
		BC:              cfg.Solver.BC,
		Approximation:   cfg.Solver.Approximation,
		SiteLabels:      cfg.Solver.SiteLabels,
		Sign:            cfg.Solver.Sign,
		SCRLimit:        cfg.Solver.SCRLimit,
		MobilityScaling: cfg.Solver.MobilityScaling,
		MaxIter:         cfg.Solver.MaxIter,
		NWorkers:        cfg.Sweep.NWorkers,
	}
}
