package site_test

import (
	"math"
	"testing"

	"github.com/j-m-dean/goscses/defect"
	"github.com/j-m-dean/goscses/phys"
	"github.com/j-m-dean/goscses/site"
	"github.com/stretchr/testify/require"
)

func testSpecies(n int) []*defect.Species {
	all := []*defect.Species{
		defect.NewSpecies("a", -2., 0.15, 0.1),
		defect.NewSpecies("b", -1., 0.25, 0.2),
		defect.NewSpecies("c", 0., 0.35, 0.3),
		defect.NewSpecies("d", 1., 0.45, 0.4),
		defect.NewSpecies("e", 2., 0.55, 0.5),
	}
	return all[:n]
}

func TestSiteNew(t *testing.T) {
	s, err := site.New("A", 1.5, testSpecies(2), []float64{-0.2, 0.2})
	require.NoError(t, err)
	require.Equal(t, "A", s.Label)
	require.Equal(t, 1.5, s.X)
	require.Equal(t, []float64{1., 1.}, s.Scaling)
	require.Zero(t, s.Valence)
	require.Equal(t, []float64{-0.2, 0.2}, s.Energies())
}

func TestSiteNewScaled(t *testing.T) {
	s, err := site.NewScaled("B", 1.5, testSpecies(2), []float64{-0.2, 0.2}, []float64{0.5, 0.4}, -2.)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0.4}, s.Scaling)
	require.Equal(t, -2., s.Valence)
}

func TestSiteNewLengthChecks(t *testing.T) {
	_, err := site.New("A", 1.5, testSpecies(1), []float64{-0.2, 0.2})
	require.Error(t, err)

	_, err = site.NewScaled("A", 1.5, testSpecies(2), []float64{-0.2, 0.2}, []float64{0.5}, 0.)
	require.Error(t, err)
}

func TestDefectWithLabel(t *testing.T) {
	s, err := site.New("A", 1.5, testSpecies(2), []float64{-0.2, 0.2})
	require.NoError(t, err)

	d, err := s.DefectWithLabel("b")
	require.NoError(t, err)
	require.Equal(t, s.Defects[1], d)

	_, err = s.DefectWithLabel("banana")
	require.Error(t, err)
}

func TestProbabilitiesSingleMobile(t *testing.T) {
	const temp = 773.15
	sp := defect.NewSpecies("Vo", 2., 0.05, 1e-10)
	s, err := site.New("A", 0., []*defect.Species{sp}, []float64{-0.3})
	require.NoError(t, err)

	// p = xB/(1 + x(B-1))
	b := math.Exp(0.3 / (phys.BoltzmannEV * temp))
	want := 0.05 * b / (1. + 0.05*(b-1.))
	p := s.Probabilities(0., temp)
	require.Len(t, p, 1)
	require.InEpsilon(t, want, p[0], 1e-12)

	// zero potential energy recovers the bulk mole fraction
	s2, err := site.New("A", 0., []*defect.Species{sp}, []float64{0.})
	require.NoError(t, err)
	require.InDelta(t, 0.05, s2.Probabilities(0., temp)[0], 1e-14)

	// deep wells saturate
	s3, err := site.New("A", 0., []*defect.Species{sp}, []float64{-5.})
	require.NoError(t, err)
	require.InDelta(t, 1., s3.Probabilities(0., temp)[0], 1e-9)
}

func TestProbabilitiesFixedDefect(t *testing.T) {
	const temp = 773.15
	mobile := defect.NewSpecies("Vo", 2., 0.05, 1e-10)
	dopant := defect.NewFixedSpecies("Gd", -1., 0.2)
	s, err := site.New("A", 0., []*defect.Species{mobile, dopant}, []float64{-0.3, -0.8})
	require.NoError(t, err)

	p := s.Probabilities(0.1, temp)
	require.Equal(t, 0.2, p[1], "fixed defect holds its bulk mole fraction")

	// the fixed defect contributes nothing to the exclusion denominator
	b := mobile.MoleFraction * math.Exp(-(0.1*2.-0.3)/(phys.BoltzmannEV*temp))
	den := 1. + b - mobile.MoleFraction
	require.InEpsilon(t, b/den, p[0], 1e-12)
}

func TestSiteCharge(t *testing.T) {
	const temp = 773.15
	sp := defect.NewSpecies("Vo", 2., 0.05, 1e-10)
	s, err := site.NewScaled("A", 0., []*defect.Species{sp}, []float64{0.}, []float64{0.5}, -1.)
	require.NoError(t, err)

	// p = 0.05 at zero potential energy
	want := (-1. + 0.05*2.*0.5) * phys.FundamentalCharge
	require.InEpsilon(t, want, s.Charge(0., temp), 1e-12)
}

func TestSetSubsetLabelsAndCopy(t *testing.T) {
	sp := testSpecies(2)
	s1, _ := site.New("A", 0., sp[:1], []float64{-0.2})
	s2, _ := site.New("B", 1., sp[1:], []float64{0.1})
	s3, _ := site.New("A", 2., sp[:1], []float64{0.})
	set := site.NewSet([]*site.Site{s1, s2, s3})

	require.Equal(t, []string{"A", "B"}, set.Labels())
	require.Equal(t, 2, set.Subset("A").Len())
	require.Equal(t, []float64{0., 1., 2.}, set.UniqueX())

	cp := set.Copy()
	require.Equal(t, set.Len(), cp.Len())
	// shared species stay shared within the copy, detached from the original
	require.Same(t, cp.Sites[0].Defects[0].Species, cp.Sites[2].Defects[0].Species)
	require.NotSame(t, set.Sites[0].Defects[0].Species, cp.Sites[0].Defects[0].Species)

	cp.Sites[0].Defects[0].MoleFraction = 0.9
	require.Equal(t, 0.15, set.Sites[0].Defects[0].MoleFraction)
}

func TestSetSortByX(t *testing.T) {
	sp := testSpecies(1)
	s1, _ := site.New("A", 2., sp, []float64{0.})
	s2, _ := site.New("A", -1., sp, []float64{0.})
	s3, _ := site.New("A", 0.5, sp, []float64{0.})
	set := site.NewSet([]*site.Site{s1, s2, s3})
	set.SortByX()
	require.Equal(t, []float64{-1., 0.5, 2.}, []float64{set.Sites[0].X, set.Sites[1].X, set.Sites[2].X})
}
