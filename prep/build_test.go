package prep_test

import (
	"testing"

	"github.com/j-m-dean/goscses/defect"
	"github.com/j-m-dean/goscses/prep"
	"github.com/stretchr/testify/require"
)

func testSpecies() map[string]*defect.Species {
	return map[string]*defect.Species{
		"B": defect.NewSpecies("B", 2., 0.05, 1e-8),
		"C": defect.NewFixedSpecies("C", -1., 0.2),
	}
}

func buildData() []*prep.SiteData {
	return []*prep.SiteData{
		{Label: "A", Valence: -2., X: 1e-9, Defects: []prep.DefectData{{Label: "B", Energy: -0.5}}},
		{Label: "A", Valence: -2., X: 2e-9, Defects: []prep.DefectData{{Label: "B", Energy: -1.0}}},
		{Label: "A", Valence: -2., X: 3e-9, Defects: []prep.DefectData{{Label: "B", Energy: 0.03}}},
	}
}

func TestBuildSites(t *testing.T) {
	set, err := prep.BuildSites(buildData(), testSpecies(), false, prep.CoreAll, 773.15)
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())
	for i, want := range []float64{-0.5, -1.0, 0.03} {
		require.Equal(t, want, set.Sites[i].Defects[0].Energy)
		require.Equal(t, "B", set.Sites[i].Defects[0].Label)
		require.Equal(t, 0., set.Sites[i].Valence) // site charges disabled
	}
}

func TestBuildSitesSiteCharge(t *testing.T) {
	set, err := prep.BuildSites(buildData(), testSpecies(), true, prep.CoreAll, 773.15)
	require.NoError(t, err)
	for _, s := range set.Sites {
		require.Equal(t, -2., s.Valence)
	}
}

func TestBuildSitesCoreSingle(t *testing.T) {
	set, err := prep.BuildSites(buildData(), testSpecies(), false, prep.CoreSingle, 773.15)
	require.NoError(t, err)
	// only the minimum-energy seat of each species survives
	for i, want := range []float64{0., -1.0, 0.} {
		require.Equal(t, want, set.Sites[i].Defects[0].Energy)
	}
}

func TestBuildSitesCoreSinglePerSpecies(t *testing.T) {
	data := []*prep.SiteData{
		{Label: "A", Valence: 0., X: 1e-9, Defects: []prep.DefectData{{Label: "B", Energy: -0.2}, {Label: "C", Energy: -0.9}}},
		{Label: "A", Valence: 0., X: 2e-9, Defects: []prep.DefectData{{Label: "B", Energy: -0.7}, {Label: "C", Energy: -0.1}}},
	}
	set, err := prep.BuildSites(data, testSpecies(), false, prep.CoreSingle, 773.15)
	require.NoError(t, err)
	require.Equal(t, []float64{0., -0.9}, set.Sites[0].Energies())
	require.Equal(t, []float64{-0.7, 0.}, set.Sites[1].Energies())
}

func TestBuildSitesCoreMultiSite(t *testing.T) {
	// kT at 1000 K is 0.0862 eV; sub-thermal wells flatten out
	set, err := prep.BuildSites(buildData(), testSpecies(), false, prep.CoreMultiSite, 1000.)
	require.NoError(t, err)
	for i, want := range []float64{-0.5, -1.0, 0.} {
		require.Equal(t, want, set.Sites[i].Defects[0].Energy)
	}
}

func TestBuildSitesUnknownLabel(t *testing.T) {
	data := []*prep.SiteData{
		{Label: "A", Valence: 0., X: 1e-9, Defects: []prep.DefectData{{Label: "Z", Energy: -0.5}}},
	}
	_, err := prep.BuildSites(data, testSpecies(), false, prep.CoreAll, 773.15)
	require.ErrorIs(t, err, prep.ErrUnknownLabel)
}

func TestBuildSitesUnknownCoreModel(t *testing.T) {
	_, err := prep.BuildSites(buildData(), testSpecies(), false, "shell", 773.15)
	require.Error(t, err)
}
