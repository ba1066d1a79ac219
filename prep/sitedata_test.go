package prep_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/j-m-dean/goscses/prep"
	"github.com/stretchr/testify/require"
)

func TestParseSiteData(t *testing.T) {
	sd, err := prep.ParseSiteData("A -2.0 1.2345e-9 B +1.0 C -0.5")
	require.NoError(t, err)
	require.Equal(t, "A", sd.Label)
	require.Equal(t, -2.0, sd.Valence)
	require.Equal(t, 1.2345e-9, sd.X)
	require.Len(t, sd.Defects, 2)
	require.Equal(t, prep.DefectData{Label: "B", Energy: 1.0}, sd.Defects[0])
	require.Equal(t, prep.DefectData{Label: "C", Energy: -0.5}, sd.Defects[1])
}

func TestParseSiteDataUnderscoreLabels(t *testing.T) {
	sd, err := prep.ParseSiteData("V_O +2.0 0.0 V_O -0.1")
	require.NoError(t, err)
	require.Equal(t, "V_O", sd.Label)
	require.Equal(t, 2.0, sd.Valence)
	require.Equal(t, "V_O", sd.Defects[0].Label)
}

func TestParseSiteDataInvalid(t *testing.T) {
	for _, line := range []string{
		"B +1.0 -0.234 D +0.5 E", // trailing defect label with no energy
		"A -2.0 1.0e-9",          // no defects at all
		"A x 1.0e-9 B +1.0",      // non-numeric valence
		"-2.0 1.0e-9 B +1.0",     // missing site label
		"",
	} {
		require.False(t, prep.ValidSiteDataLine(line), line)
		_, err := prep.ParseSiteData(line)
		require.ErrorIs(t, err, prep.ErrInputFormat, line)
	}
}

func TestInputStringRoundTrip(t *testing.T) {
	in := "A -2.0 1.2345e-9 B +1.0 C -0.5"
	sd, err := prep.ParseSiteData(in)
	require.NoError(t, err)
	back, err := prep.ParseSiteData(sd.InputString())
	require.NoError(t, err)
	require.Equal(t, sd, back)
}

func TestSitesDataFromFile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "sites.dat")
	require.NoError(t, os.WriteFile(fp, []byte(
		"A -2.0 1.0e-9 B +1.0\n"+
			"A -2.0 5.0e-10 B +0.5\n"+
			"C +1.0 2.0e-9 D -0.25 E -0.5\n"+
			"\n"+
			"F +1.0 3.0e-9 G +0.1\n"+ // on the upper bound, excluded
			"A -2.0 4.0e-9 B +0.0\n"), 0644))

	data, err := prep.SitesDataFromFile(fp, 0., 3.0e-9, prep.DefaultClusterThreshold)
	require.NoError(t, err)
	require.Len(t, data, 3)
	// sorted ascending by position
	require.Equal(t, 5.0e-10, data[0].X)
	require.Equal(t, 1.0e-9, data[1].X)
	require.Equal(t, 2.0e-9, data[2].X)
	require.Equal(t, "C", data[2].Label)
}

func TestSitesDataFromFileInvalidLine(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "sites.dat")
	require.NoError(t, os.WriteFile(fp, []byte(
		"A -2.0 1.0e-9 B +1.0\n"+
			"B +1.0 -0.234 D +0.5 E\n"), 0644))

	_, err := prep.SitesDataFromFile(fp, -1., 1., prep.DefaultClusterThreshold)
	require.Error(t, err)
	require.ErrorIs(t, err, prep.ErrInputFormat)
}

func TestSitesDataFromFileMissing(t *testing.T) {
	_, err := prep.SitesDataFromFile(filepath.Join(t.TempDir(), "nope.dat"), -1., 1., prep.DefaultClusterThreshold)
	require.Error(t, err)
}

func TestClusterSimilarSites(t *testing.T) {
	data := sitesAt(t, 1.0e-10, 1.9e-10, 3.0e-10, 3.9e-10)
	prep.ClusterSimilarSites(data, 1e-10)
	for i, want := range []float64{1.45e-10, 1.45e-10, 3.45e-10, 3.45e-10} {
		require.InDelta(t, want, data[i].X, 1e-25)
	}
}

func TestClusterSimilarSitesPreservesOrder(t *testing.T) {
	data := sitesAt(t, 3.9e-10, 1.0e-10, 3.0e-10, 1.9e-10)
	prep.ClusterSimilarSites(data, 1e-10)
	for i, want := range []float64{3.45e-10, 1.45e-10, 3.45e-10, 1.45e-10} {
		require.InDelta(t, want, data[i].X, 1e-25)
	}
}

func TestClusterSimilarSitesNoCluster(t *testing.T) {
	data := sitesAt(t, 1.0e-10, 3.0e-10)
	prep.ClusterSimilarSites(data, 1e-10)
	require.Equal(t, 1.0e-10, data[0].X)
	require.Equal(t, 3.0e-10, data[1].X)
}

func TestClusterSimilarSitesSingleSite(t *testing.T) {
	data := sitesAt(t, 1.0e-10)
	prep.ClusterSimilarSites(data, 1e-10)
	require.Equal(t, 1.0e-10, data[0].X)
}

func sitesAt(t *testing.T, xs ...float64) []*prep.SiteData {
	t.Helper()
	data := make([]*prep.SiteData, len(xs))
	for i, x := range xs {
		data[i] = &prep.SiteData{
			Label: "A", Valence: -2., X: x,
			Defects: []prep.DefectData{{Label: "B", Energy: -0.5}},
		}
	}
	return data
}
