package goscses

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/j-m-dean/goscses/defect"
	"github.com/j-m-dean/goscses/prep"
	"github.com/j-m-dean/goscses/solver"
)

// Config is a decoded control file. See testdata for a worked example.
type Config struct {
	Prfx  string // output file prefix
	Sites string // sites data file path

	Domain   DomainConfig
	Solver   SolverConfig
	Species  []SpeciesConfig
	Sweep    SweepConfig
	Sample   SampleConfig
	Generate *prep.GenerateSpec // synthetic sites file, in place of an input set
}

// DomainConfig frames the calculation region.
type DomainConfig struct {
	XMin, XMax       float64 // calculation window [m]
	B, C             float64 // cell cross-section edges [m]
	System           string  // single or double boundary
	ClusterThreshold float64 // site clustering distance [m]; 0 takes the default
}

// SolverConfig drives the self-consistent iteration and the derived
// space-charge properties.
type SolverConfig struct {
	Temp            float64 // [K]
	Alpha           float64 // damping factor
	Convergence     float64 // mean squared update tolerance [V²]
	MaxIter         int     // 0 takes the default cap
	Dielectric      float64 // relative permittivity
	BC              string  // dirichlet or periodic
	Approximation   string  // mott-schottky or gouy-chapman
	SiteLabels      []string
	SiteCharge      bool
	CoreModel       string  // all, single or multi-site
	Sign            string  // positive or negative space-charge potential
	SCRLimit        float64 // space-charge region potential cutoff [V]
	MobilityScaling bool
	BulkXMin        float64 // bulk reference window [m]
	BulkXMax        float64
}

// SpeciesConfig declares one defect species.
type SpeciesConfig struct {
	Label        string
	Valence      float64
	MoleFraction float64
	Mobility     float64 // [m²/Vs]
	Fixed        bool
}

// SweepConfig drives a temperature sweep.
type SweepConfig struct {
	TMin, TMax float64 // [K]
	N          int     // temperatures; 0 disables the sweep
	NWorkers   int     // 0 takes GOMAXPROCS
}

// SampleConfig drives Latin hypercube sampling over solver parameters.
type SampleConfig struct {
	N      int // realizations; 0 disables sampling
	Params []Param
}

// LoadConfig decodes and checks a TOML control file.
func LoadConfig(fp string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(fp, &cfg); err != nil {
		return nil, fmt.Errorf(" LoadConfig %v", err)
	}
	cfg.setDefaults()
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Domain.System == "" {
		c.Domain.System = prep.SystemSingle
	}
	if c.Domain.ClusterThreshold == 0. {
		c.Domain.ClusterThreshold = prep.DefaultClusterThreshold
	}
	if c.Solver.Alpha == 0. {
		c.Solver.Alpha = 0.0005
	}
	if c.Solver.Convergence == 0. {
		c.Solver.Convergence = 1e-8
	}
	if c.Solver.BC == "" {
		c.Solver.BC = solver.Dirichlet
	}
	if c.Solver.Approximation == "" {
		c.Solver.Approximation = MottSchottky
	}
	if c.Solver.CoreModel == "" {
		c.Solver.CoreModel = prep.CoreAll
	}
	if c.Solver.Sign == "" {
		c.Solver.Sign = Positive
	}
	if c.Solver.SCRLimit == 0. {
		c.Solver.SCRLimit = 2e-2
	}
}

func (c *Config) check() error {
	if c.Sites == "" && c.Generate == nil {
		return fmt.Errorf(" config: no sites file and no generate block")
	}
	if c.Domain.XMax <= c.Domain.XMin {
		return fmt.Errorf(" config: domain window [%g,%g]", c.Domain.XMin, c.Domain.XMax)
	}
	if c.Domain.B <= 0. || c.Domain.C <= 0. {
		return fmt.Errorf(" config: cell edges b=%g c=%g", c.Domain.B, c.Domain.C)
	}
	if c.Domain.System != prep.SystemSingle && c.Domain.System != prep.SystemDouble {
		return fmt.Errorf(" config: unknown system %q", c.Domain.System)
	}
	if c.Solver.Temp <= 0. {
		return fmt.Errorf(" config: temperature %g", c.Solver.Temp)
	}
	if c.Solver.Dielectric <= 0. {
		return fmt.Errorf(" config: dielectric %g", c.Solver.Dielectric)
	}
	if c.Solver.BC != solver.Dirichlet && c.Solver.BC != solver.Periodic {
		return fmt.Errorf(" config: unknown boundary condition %q", c.Solver.BC)
	}
	if c.Solver.Approximation != MottSchottky && c.Solver.Approximation != GouyChapman {
		return fmt.Errorf(" config: unknown approximation %q", c.Solver.Approximation)
	}
	if c.Solver.Sign != Positive && c.Solver.Sign != Negative {
		return fmt.Errorf(" config: unknown space-charge sign %q", c.Solver.Sign)
	}
	if len(c.Solver.SiteLabels) == 0 {
		return fmt.Errorf(" config: no site labels")
	}
	if c.Solver.BulkXMax <= c.Solver.BulkXMin {
		return fmt.Errorf(" config: bulk window [%g,%g]", c.Solver.BulkXMin, c.Solver.BulkXMax)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf(" config: no defect species")
	}
	seen := make(map[string]bool, len(c.Species))
	for _, s := range c.Species {
		if s.Label == "" {
			return fmt.Errorf(" config: species with no label")
		}
		if seen[s.Label] {
			return fmt.Errorf(" config: duplicate species %s", s.Label)
		}
		seen[s.Label] = true
		if s.MoleFraction <= 0. || s.MoleFraction >= 1. {
			return fmt.Errorf(" config: species %s mole fraction %g", s.Label, s.MoleFraction)
		}
	}
	if c.Sweep.N > 0 {
		if c.Sweep.TMin <= 0. || c.Sweep.TMax <= c.Sweep.TMin {
			return fmt.Errorf(" config: sweep range [%g,%g]", c.Sweep.TMin, c.Sweep.TMax)
		}
	}
	if c.Sample.N > 0 {
		if len(c.Sample.Params) == 0 {
			return fmt.Errorf(" config: sampling with no parameters")
		}
		for _, p := range c.Sample.Params {
			if p.Name == "" {
				return fmt.Errorf(" config: sample parameter with no name")
			}
			if p.Max <= p.Min {
				return fmt.Errorf(" config: sample parameter %s range [%g,%g]", p.Name, p.Min, p.Max)
			}
		}
	}
	return nil
}

// SpeciesMap resolves the declared species by defect label.
func (c *Config) SpeciesMap() map[string]*defect.Species {
	m := make(map[string]*defect.Species, len(c.Species))
	for _, s := range c.Species {
		if s.Fixed {
			m[s.Label] = defect.NewFixedSpecies(s.Label, s.Valence, s.MoleFraction)
		} else {
			m[s.Label] = defect.NewSpecies(s.Label, s.Valence, s.MoleFraction, s.Mobility)
		}
	}
	return m
}
