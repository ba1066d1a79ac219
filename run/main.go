package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"

	"github.com/maseology/mmio"

	"github.com/j-m-dean/goscses"
	"github.com/j-m-dean/goscses/postpro"
)

func main() {
	cfp := flag.String("c", "scses.toml", "control file")
	v := flag.Bool("v", false, "report solver iterations")
	noCharts := flag.Bool("nocharts", false, "skip chart rendering")
	flag.Parse()

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nrun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	cfg, err := goscses.LoadConfig(*cfp)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if dir := filepath.Dir(cfg.Prfx); dir != "." {
		mmio.MakeDir(dir)
	}

	dom, err := goscses.BuildDomain(cfg, true)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := dom.Run(*v); err != nil {
		log.Fatalf("%v", err)
	}

	c := dom.Calc
	fmt.Printf("\nconverged in %d iterations\n", c.NIter)
	fmt.Printf(" perpendicular resistivity ratio: %.6g\n", c.PerpendicularResistivityRatio)
	fmt.Printf(" parallel resistivity ratio:      %.6g\n", c.ParallelResistivityRatio)

	// regime-dependent derived properties
	if z, err := dom.MobileValence(); err == nil {
		if phi, err := c.MottSchottkyPhi(z); err == nil {
			fmt.Printf(" mott-schottky potential:         %.6g V\n", phi)
		} else {
			fmt.Printf(" %v\n", err)
		}
		if err := c.CalculateDebyeLength(); err == nil {
			fmt.Printf(" debye length:                    %.6g m\n", c.DebyeLength)
			if err := c.CalculateSpaceChargeWidth(z); err == nil {
				fmt.Printf(" space-charge width:              %.6g m\n", c.SpaceChargeWidth)
			}
		}
	}

	if err := c.SaveProfiles(cfg.Prfx); err != nil {
		log.Fatalf("%v", err)
	}
	if !*noCharts {
		if err := postpro.SaveProfileCharts(c, cfg.Prfx); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if cfg.Sweep.N > 0 {
		fmt.Printf("\nsweeping %d temperatures over [%g,%g] K..\n", cfg.Sweep.N, cfg.Sweep.TMin, cfg.Sweep.TMax)
		rs := dom.NewSweep().Run(goscses.TempRange(cfg.Sweep.TMin, cfg.Sweep.TMax, cfg.Sweep.N), true)
		if err := rs.Save(cfg.Prfx + "sweep.csv"); err != nil {
			log.Fatalf("%v", err)
		}
		if temps, perp, par, err := rs.ActivationEnergies(); err == nil {
			fmt.Println("    T [K]  Ea_perp [eV]   Ea_par [eV]")
			for i := range temps {
				fmt.Printf(" %8.1f  %12.4g  %12.4g\n", temps[i], perp[i], par[i])
			}
		} else {
			fmt.Printf(" %v\n", err)
		}
		if !*noCharts {
			if err := postpro.SaveArrheniusChart(rs, cfg.Prfx); err != nil {
				fmt.Printf(" %v\n", err)
			}
		}
	}

	if cfg.Sample.N > 0 {
		fmt.Printf("\nsampling %d realizations over %d parameters..\n", cfg.Sample.N, len(cfg.Sample.Params))
		batch, err := dom.NewSweep().SampleSpace(cfg.Sample.Params, cfg.Sample.N, cfg.Solver.Temp, cfg.Prfx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf(" batch %s\n", batch)
	}
}
