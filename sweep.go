package goscses

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/gosuri/uiprogress"
	"gonum.org/v1/gonum/floats"

	"github.com/j-m-dean/goscses/grid"
	"github.com/j-m-dean/goscses/site"
)

// Sweep runs one space-charge calculation per temperature over a fixed
// site set and collects the grain-boundary resistivity ratios. Each
// temperature solves on its own deep copy of the site set, so the
// temperatures can run concurrently.
type Sweep struct {
	Set               *site.Set
	Limits, LapLimits [2]float64
	B, C              float64 // cell cross-section [m]

	BulkXMin, BulkXMax float64
	Alpha, Convergence float64
	Dielectric         float64
	BC                 string
	Approximation      string
	SiteLabels         []string

	Sign            string
	SCRLimit        float64 // [V]
	MobilityScaling bool

	MaxIter  int // 0 takes the default cap
	NWorkers int // 0 takes GOMAXPROCS
}

// Result is the outcome at one temperature.
type Result struct {
	Temp          float64 // [K]
	Perpendicular float64
	Parallel      float64
	NIter         int
	Err           error
}

// Results is a completed sweep, ordered as the input temperatures.
type Results []Result

// TempRange returns n evenly spaced temperatures spanning [lo, hi].
func TempRange(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Run evaluates the sweep over the given temperatures. A failed
// temperature is reported in its Result and does not stop the others.
func (s *Sweep) Run(temps []float64, showProgress bool) Results {
	nw := s.NWorkers
	if nw < 1 {
		nw = runtime.GOMAXPROCS(0)
	}

	var bar *uiprogress.Bar
	if showProgress {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(temps)).AppendCompleted().PrependElapsed()
	}

	res := make(Results, len(temps))
	sem := make(chan struct{}, nw)
	var wg sync.WaitGroup
	for i, t := range temps {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, t float64) {
			res[i] = s.runOne(t)
			if bar != nil {
				bar.Incr()
			}
			<-sem
			wg.Done()
		}(i, t)
	}
	wg.Wait()

	if showProgress {
		uiprogress.Stop()
	}
	return res
}

func (s *Sweep) runOne(temp float64) Result {
	return s.runSet(s.Set.Copy(), temp)
}

func (s *Sweep) runSet(set *site.Set, temp float64) Result {
	g, err := grid.New(set, s.Limits, s.LapLimits, s.B, s.C)
	if err != nil {
		return Result{Temp: temp, Err: err}
	}
	c := NewCalculation(g, s.BulkXMin, s.BulkXMax, s.Alpha, s.Convergence, s.Dielectric, temp, s.BC)
	c.MaxIter = s.MaxIter
	if err := c.FormSubgrids(s.SiteLabels); err != nil {
		return Result{Temp: temp, Err: err}
	}
	if err := c.Solve(s.Approximation, false); err != nil {
		return Result{Temp: temp, Err: err}
	}
	if err := c.ResistivityRatio(s.Sign, s.SCRLimit, s.MobilityScaling); err != nil {
		return Result{Temp: temp, Err: err}
	}
	return Result{
		Temp:          temp,
		Perpendicular: c.PerpendicularResistivityRatio,
		Parallel:      c.ParallelResistivityRatio,
		NIter:         c.NIter,
	}
}

// Converged drops the temperatures that failed.
func (rs Results) Converged() Results {
	out := make(Results, 0, len(rs))
	for _, r := range rs {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	return out
}

// ActivationEnergies differentiates the converged resistivity ratios in
// Arrhenius form, returning the retained temperatures and the
// perpendicular and parallel activation energies [eV].
func (rs Results) ActivationEnergies() (temps, perp, par []float64, err error) {
	ok := rs.Converged()
	if len(ok) < 3 {
		return nil, nil, nil, fmt.Errorf(" sweep.ActivationEnergies: %d converged temperatures of %d, need at least 3", len(ok), len(rs))
	}
	temps = make([]float64, len(ok))
	rPerp := make([]float64, len(ok))
	rPar := make([]float64, len(ok))
	for i, r := range ok {
		temps[i] = r.Temp
		rPerp[i] = r.Perpendicular
		rPar[i] = r.Parallel
	}
	if perp, err = ActivationEnergies(rPerp, temps); err != nil {
		return nil, nil, nil, err
	}
	if par, err = ActivationEnergies(rPar, temps); err != nil {
		return nil, nil, nil, err
	}
	return temps, perp, par, nil
}
