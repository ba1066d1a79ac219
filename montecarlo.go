package goscses

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// TemperatureParam names the sampled dimension that overrides the run
// temperature; any other Param name must match a defect species label.
const TemperatureParam = "temperature"

// Param is one sampled dimension of a Monte Carlo run.
type Param struct {
	Name     string
	Min, Max float64
	Log      bool
}

func (p Param) transform(u float64) float64 {
	if p.Log {
		return mmaths.LogLinearTransform(p.Min, p.Max, u)
	}
	return mmaths.LinearTransform(p.Min, p.Max, u)
}

// SampleSpace draws n latin-hypercube samples of the declared
// parameters and evaluates the grain-boundary resistivity ratios at
// each, solving on a fresh copy of the site set every time. temp is the
// run temperature when no temperature parameter is sampled. The u-space
// plan and the results are written to two CSVs sharing a timestamped
// batch prefix, which is returned.
func (s *Sweep) SampleSpace(params []Param, n int, temp float64, outprfx string) (string, error) {
	p := len(params)
	if p == 0 || n < 1 {
		return "", fmt.Errorf(" sweep.SampleSpace: %d parameters, %d samples", p, n)
	}
	for _, pr := range params {
		if pr.Name != TemperatureParam && s.Set.SpeciesWithLabel(pr.Name) == nil {
			return "", fmt.Errorf(" sweep.SampleSpace: no defect species labelled %s", pr.Name)
		}
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, n, p, false)

	batch := outprfx + time.Now().Format("060102150405") // batch number = date
	func() { // save sample space
		lns := make([]string, n)
		for k := 0; k < n; k++ {
			lns[k] = fmt.Sprint(k)
			for j := 0; j < p; j++ {
				lns[k] += fmt.Sprintf(",%f", sp.U[j][k])
			}
		}
		mmio.WriteLines(batch+".samplespace.csv", lns)
	}()

	tw, err := mmio.NewTXTwriter(batch + ".results.csv")
	if err != nil {
		return "", fmt.Errorf(" sweep.SampleSpace: %v", err)
	}
	defer tw.Close()
	hdr := "k"
	for _, pr := range params {
		hdr += "," + pr.Name
	}
	tw.WriteLine(hdr + ",rPerp,rPar,niter,err")

	for k := 0; k < n; k++ {
		set := s.Set.Copy()
		t := temp
		ln := fmt.Sprint(k)
		for j, pr := range params {
			v := pr.transform(sp.U[j][k])
			ln += fmt.Sprintf(",%g", v)
			if pr.Name == TemperatureParam {
				t = v
			} else {
				set.SpeciesWithLabel(pr.Name).MoleFraction = v
			}
		}

		r := s.runSet(set, t)
		if r.Err != nil {
			tw.WriteLine(fmt.Sprintf("%s,,,%d,%v", ln, r.NIter, r.Err))
		} else {
			tw.WriteLine(fmt.Sprintf("%s,%g,%g,%d,", ln, r.Perpendicular, r.Parallel, r.NIter))
		}
		fmt.Print(".")
	}
	fmt.Println()
	return batch, nil
}
