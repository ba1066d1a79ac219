// Package postpro renders converged space-charge calculations and
// temperature sweeps into charts.
package postpro

import (
	"fmt"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/j-m-dean/goscses"
)

const (
	chartWidth  = 1280
	chartHeight = 720
)

func renderPNG(graph chart.Chart, fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" postpro.renderPNG: %v", err)
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf(" postpro.renderPNG %s: %v", fp, err)
	}
	return nil
}

func nano(xs []float64) []float64 {
	o := make([]float64, len(xs))
	for i, x := range xs {
		o[i] = x * 1e9
	}
	return o
}

// SaveProfileCharts renders the converged potential and charge density
// profiles, and one mole fraction chart carrying a series per site
// label, as PNGs under the given file prefix.
func SaveProfileCharts(c *goscses.Calculation, prfx string) error {
	if c.Phi == nil {
		return fmt.Errorf(" postpro.SaveProfileCharts: no potential; solve first")
	}
	xnm := nano(c.Grid.X)

	phi := chart.Chart{
		Title:  "space-charge potential",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "x [nm]"},
		YAxis:  chart.YAxis{Name: "phi [V]"},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xnm, YValues: c.Phi},
		},
	}
	if err := renderPNG(phi, prfx+"phi.png"); err != nil {
		return err
	}

	rho := chart.Chart{
		Title:  "charge density",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "x [nm]"},
		YAxis:  chart.YAxis{Name: "rho [C/m³]"},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xnm, YValues: c.Rho},
		},
	}
	if err := renderPNG(rho, prfx+"rho.png"); err != nil {
		return err
	}

	var mfSeries []chart.Series
	for _, l := range c.SiteLabels {
		sub, ok := c.Subgrids[l]
		if !ok {
			continue
		}
		mf, ok := c.MF[l]
		if !ok {
			continue
		}
		mfSeries = append(mfSeries, chart.ContinuousSeries{
			Name:    l,
			XValues: nano(sub.X),
			YValues: mf,
		})
	}
	if len(mfSeries) == 0 {
		return nil
	}
	mf := chart.Chart{
		Title:  "site mole fractions",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "x [nm]"},
		YAxis:  chart.YAxis{Name: "mole fraction"},
		Series: mfSeries,
	}
	mf.Elements = []chart.Renderable{chart.Legend(&mf)}
	return renderPNG(mf, prfx+"mf.png")
}

// SaveArrheniusChart renders the converged sweep ratios in Arrhenius
// form, ln(1/r) against 1000/T, one series per transport direction.
func SaveArrheniusChart(rs goscses.Results, prfx string) error {
	var xs, perp, par []float64
	for _, r := range rs.Converged() {
		if r.Perpendicular <= 0. || r.Parallel <= 0. {
			continue
		}
		xs = append(xs, 1000./r.Temp)
		perp = append(perp, math.Log(1./r.Perpendicular))
		par = append(par, math.Log(1./r.Parallel))
	}
	if len(xs) < 2 {
		return fmt.Errorf(" postpro.SaveArrheniusChart: %d usable temperatures, need at least 2", len(xs))
	}

	graph := chart.Chart{
		Title:  "grain-boundary resistivity ratios",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "1000/T [1/K]"},
		YAxis:  chart.YAxis{Name: "ln(1/r)"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "perpendicular", XValues: xs, YValues: perp},
			chart.ContinuousSeries{Name: "parallel", XValues: xs, YValues: par},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(graph, prfx+"arrhenius.png")
}
