package goscses

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/maseology/mmio"
)

func writeFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}

// SaveProfiles writes the converged potential, charge density and
// per-species mole fraction profiles with the given file prefix, as CSV
// next to float32 little-endian binary dumps.
func (c *Calculation) SaveProfiles(prfx string) error {
	if c.Phi == nil {
		return fmt.Errorf(" calculation.SaveProfiles: no potential; solve first")
	}

	tw, err := mmio.NewTXTwriter(prfx + "profiles.csv")
	if err != nil {
		return fmt.Errorf(" calculation.SaveProfiles: %v", err)
	}
	defer tw.Close()
	tw.WriteLine("x,phi,rho")
	for i, x := range c.Grid.X {
		tw.WriteLine(fmt.Sprintf("%g,%g,%g", x, c.Phi[i], c.Rho[i]))
	}

	for _, l := range c.SiteLabels {
		sub, ok := c.Subgrids[l]
		if !ok {
			continue
		}
		mf, ok := c.MF[l]
		if !ok {
			continue
		}
		twl, err := mmio.NewTXTwriter(fmt.Sprintf("%s%s.mf.csv", prfx, l))
		if err != nil {
			return fmt.Errorf(" calculation.SaveProfiles: %v", err)
		}
		twl.WriteLine("x,mf")
		for i, x := range sub.X {
			twl.WriteLine(fmt.Sprintf("%g,%g", x, mf[i]))
		}
		twl.Close()
	}

	if err := writeFloats(prfx+"x.bin", c.Grid.X); err != nil {
		return err
	}
	if err := writeFloats(prfx+"phi.bin", c.Phi); err != nil {
		return err
	}
	return writeFloats(prfx+"rho.bin", c.Rho)
}

// Save writes a sweep's resistivity ratios per temperature as CSV.
func (rs Results) Save(fp string) error {
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf(" sweep.Save: %v", err)
	}
	defer tw.Close()
	tw.WriteLine("temp,rPerp,rPar,niter,err")
	for _, r := range rs {
		if r.Err != nil {
			tw.WriteLine(fmt.Sprintf("%g,,,%d,%v", r.Temp, r.NIter, r.Err))
		} else {
			tw.WriteLine(fmt.Sprintf("%g,%g,%g,%d,", r.Temp, r.Perpendicular, r.Parallel, r.NIter))
		}
	}
	return nil
}
