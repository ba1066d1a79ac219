package goscses

import (
	"math"
	"testing"

	"github.com/j-m-dean/goscses/phys"
	"github.com/j-m-dean/goscses/solver"
	"github.com/stretchr/testify/require"
)

func TestMottSchottkyPhi(t *testing.T) {
	c := NewCalculation(neutralGrid(t, 5), 0., 0., 0.5, 1e-12, 55., testTemp, solver.Dirichlet)
	c.PerpendicularResistivityRatio = 10.

	phi, err := c.MottSchottkyPhi(2.)
	require.NoError(t, err)
	require.Equal(t, phi, c.MSPhi)
	require.Greater(t, phi, 0.)

	// the recovered potential satisfies w e^w = -1/(2r) on the lower branch
	w := -phi * 2. / (phys.BoltzmannEV * testTemp)
	require.Less(t, w, -1.)
	require.InDelta(t, -1./20., w*math.Exp(w), 1e-12)
}

func TestMottSchottkyPhiOutsideRegime(t *testing.T) {
	c := NewCalculation(neutralGrid(t, 5), 0., 0., 0.5, 1e-12, 55., testTemp, solver.Dirichlet)
	c.PerpendicularResistivityRatio = 1.2
	_, err := c.MottSchottkyPhi(2.)
	require.Error(t, err)
}

func TestCalculateDebyeLength(t *testing.T) {
	c := NewCalculation(neutralGrid(t, 5), 0., 0., 0.5, 1e-12, 55., testTemp, solver.Dirichlet)

	require.Error(t, c.CalculateDebyeLength()) // no bulk density yet

	c.avgBulkMobileDefectDensity = 4e26
	require.NoError(t, c.CalculateDebyeLength())
	kT := phys.EVToJoules(phys.BoltzmannEV * testTemp)
	e := phys.FundamentalCharge
	want := math.Sqrt(55. * phys.VacuumPermittivity * kT / (2. * e * e * 4e26))
	require.InEpsilon(t, want, c.DebyeLength, 1e-12)
}

func TestCalculateSpaceChargeWidth(t *testing.T) {
	c := NewCalculation(neutralGrid(t, 5), 0., 0., 0.5, 1e-12, 55., testTemp, solver.Dirichlet)

	require.Error(t, c.CalculateSpaceChargeWidth(2.)) // Debye length not set

	c.DebyeLength = 5e-10
	c.Phi = []float64{0., 0.05, 0.2, 0.05, 0.}
	require.NoError(t, c.CalculateSpaceChargeWidth(2.))
	want := 2. * 5e-10 * math.Sqrt(0.2*2./(phys.BoltzmannEV*testTemp))
	require.InEpsilon(t, want, c.SpaceChargeWidth, 1e-12)

	// a negative peak cannot deplete a positive carrier
	c.Phi = []float64{0., -0.05, -0.2, -0.05, 0.}
	require.Error(t, c.CalculateSpaceChargeWidth(2.))
}

func TestActivationEnergies(t *testing.T) {
	temps := []float64{600., 700., 800., 900., 1000.}
	const ea = 0.5
	ratios := make([]float64, len(temps))
	for i, temp := range temps {
		ratios[i] = math.Exp(ea / (phys.BoltzmannEV * temp))
	}

	got, err := ActivationEnergies(ratios, temps)
	require.NoError(t, err)
	require.Len(t, got, len(temps))
	require.True(t, math.IsNaN(got[0]))
	require.True(t, math.IsNaN(got[len(got)-1]))
	for _, v := range got[1 : len(got)-1] {
		require.InDelta(t, ea, v, 1e-10)
	}
}

func TestActivationEnergiesArgChecks(t *testing.T) {
	_, err := ActivationEnergies([]float64{1., 2.}, []float64{600., 700., 800.})
	require.Error(t, err)
	_, err = ActivationEnergies([]float64{1., 2.}, []float64{600., 700.})
	require.Error(t, err)
}
