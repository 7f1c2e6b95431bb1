package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var testPrimordial = Primordial{AmplitudeS: 2.097e-9, SpectralIndex: 0.9652, PivotScale: 0.05}

func TestPowerAtRedshift_UnitTransfer(t *testing.T) {
	d, err := NewDataset(unitFile([]string{"d_cdm", "t_cdm", "d_b", "phi"}))
	require.NoError(t, err)

	tab, err := d.PowerAtRedshift(3, testPrimordial)
	require.NoError(t, err)
	require.Equal(t, []string{"k", "d_cdm", "d_b", MergedTitle}, tab.Columns)

	rows, cols := tab.Dims()
	require.Equal(t, len(testKs), rows)
	for i, k := range testKs {
		want := testPrimordial.AmplitudeS * math.Pow(k/testPrimordial.PivotScale, testPrimordial.SpectralIndex-1) * k * 2 * math.Pi * math.Pi
		require.Equal(t, k, tab.At(i, 0))
		for j := 1; j < cols; j++ {
			require.InEpsilon(t, want, tab.At(i, j), 1e-14)
		}
	}
}

func TestPowerAtRedshift_SquaresTransfer(t *testing.T) {
	d, err := NewDataset(defaultFile())
	require.NoError(t, err)

	z := testRedshifts[2]
	tab, err := d.PowerAtRedshift(z, testPrimordial)
	require.NoError(t, err)
	require.Equal(t, []string{"k", "d_cdm", "d_b", "d_g", MergedTitle}, tab.Columns)

	g := d.FindTitle("d_g")
	col, _ := tab.ColumnByName("d_g")
	for i, k := range testKs {
		tk := d.Transfer(g, i, 2)
		want := testPrimordial.AmplitudeS * tk * tk * math.Pow(k/testPrimordial.PivotScale, testPrimordial.SpectralIndex-1) * k * 2 * math.Pi * math.Pi
		require.InEpsilon(t, want, col[i], 1e-14)
	}
}

func TestPowerAtRedshift_Errors(t *testing.T) {
	d, err := NewDataset(defaultFile())
	require.NoError(t, err)

	tab, err := d.PowerAtRedshift(101, testPrimordial)
	require.Nil(t, tab)
	require.ErrorIs(t, err, ErrOutOfDomain)

	_, err = d.PowerAtRedshift(0, Primordial{AmplitudeS: 1, SpectralIndex: 1})
	require.Error(t, err)
}

func TestResamplePower(t *testing.T) {
	power, err := NewTableBuilder(4).
		Add("k", []float64{1e-3, 1e-2, 1e-1, 1}).
		Add("d_cdm", []float64{1e3, 1e4, 1e3, 1e1}).
		Build()
	require.NoError(t, err)

	out, err := ResamplePower(power, []float64{1e-3, math.Sqrt(1e-5), 1})
	require.NoError(t, err)
	require.Equal(t, []string{"k", "d_cdm"}, out.Columns)
	require.InEpsilon(t, 1e3, out.At(0, 1), 1e-12)
	// Geometric midpoint in k gives the geometric mean in P.
	require.InEpsilon(t, math.Sqrt(1e3*1e4), out.At(1, 1), 1e-12)
	require.InEpsilon(t, 1e1, out.At(2, 1), 1e-12)

	_, err = ResamplePower(power, []float64{1e-4})
	require.ErrorIs(t, err, ErrOutOfDomain)

	_, err = ResamplePower(power, nil)
	require.Error(t, err)

	bad, err := NewTableBuilder(2).Add("z", []float64{1, 2}).Build()
	require.NoError(t, err)
	_, err = ResamplePower(bad, []float64{1.5})
	require.Error(t, err)
}
