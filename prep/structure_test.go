package prep_test

import (
	"testing"

	"github.com/j-m-dean/goscses/prep"
	"github.com/stretchr/testify/require"
)

func TestNewStructureData(t *testing.T) {
	data := sitesAt(t, 0.5, 1., 2., 3., 4., 5.)

	sd, err := prep.NewStructureData(data, 0.75, 4.25, prep.SystemSingle)
	require.NoError(t, err)
	require.Len(t, sd.Sites, 4)
	require.Equal(t, 0.5, sd.Adjacent[0].X)
	require.Equal(t, 5.0, sd.Adjacent[1].X)
	require.Equal(t, []float64{1., 2., 3., 4.}, sd.SiteX)
}

func TestStructureDataLimits(t *testing.T) {
	data := sitesAt(t, 0.5, 1., 2., 3., 4., 5.)

	single, err := prep.NewStructureData(data, 0.75, 4.25, prep.SystemSingle)
	require.NoError(t, err)
	// half the gap from the first interior plane to its outer neighbours
	require.Equal(t, [2]float64{0.75, 1.0}, single.Limits())
	require.Equal(t, [2]float64{0.5, 1.0}, single.LaplacianLimits())

	double, err := prep.NewStructureData(data, 0.75, 4.25, prep.SystemDouble)
	require.NoError(t, err)
	require.Equal(t, [2]float64{0.75, 0.75}, double.Limits())
	require.Equal(t, [2]float64{0.5, 0.5}, double.LaplacianLimits())
}

func TestNewStructureDataCoincidentSites(t *testing.T) {
	// two site families sharing planes collapse to unique positions
	data := sitesAt(t, 0.5, 1., 1., 2., 2., 3., 3., 4., 4., 5.)
	sd, err := prep.NewStructureData(data, 0.75, 4.25, prep.SystemSingle)
	require.NoError(t, err)
	require.Len(t, sd.Sites, 8)
	require.Equal(t, []float64{1., 2., 3., 4.}, sd.SiteX)
}

func TestNewStructureDataWindowErrors(t *testing.T) {
	data := sitesAt(t, 0.5, 1., 2., 3., 4., 5.)

	// no site below the lower bound
	_, err := prep.NewStructureData(data, 0.25, 4.25, prep.SystemSingle)
	require.Error(t, err)

	// no site above the upper bound
	_, err = prep.NewStructureData(data, 0.75, 5.5, prep.SystemSingle)
	require.Error(t, err)

	_, err = prep.NewStructureData(data, 0.75, 4.25, "triple")
	require.Error(t, err)
}
