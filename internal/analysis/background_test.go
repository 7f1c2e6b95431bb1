package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/classex_explore_go/internal/parser"
)

func TestBackground_DropsZeroSpecies(t *testing.T) {
	d, err := NewDataset(defaultFile())
	require.NoError(t, err)

	tab, err := d.Background()
	require.NoError(t, err)

	// t_b has an all-zero history; d_cdm, d_b, d_g and d_cb_merge remain.
	want := []string{
		"z", "conformal_time", "growth_factor_D", "growth_rate_f",
		"growth_rate_f_prime", "Hubble_rate", "Hubble_rate_prime",
		"Omega_m", "Omega_r", "d_cdm", "d_b", "d_g", MergedTitle,
	}
	require.Equal(t, want, tab.Columns)

	rows, cols := tab.Dims()
	require.Equal(t, len(testLogTaus), rows)
	require.Equal(t, 9+4, cols)

	hubble, ok := tab.ColumnByName("Hubble_rate")
	require.True(t, ok)
	require.Equal(t, []float64{50, 2, 0.2, 0.1, 0.07}, hubble)

	cdm, _ := tab.ColumnByName("d_cdm")
	require.Equal(t, defaultOmegas()[0], cdm)
}

func TestBackground_MissingSeries(t *testing.T) {
	p := defaultFile()
	delete(p.Background, parser.OmegaRadiationName)
	d, err := NewDataset(p)
	require.NoError(t, err)

	tab, err := d.Background()
	require.Nil(t, tab)
	require.ErrorIs(t, err, ErrMissingBackground)
}

func TestCriticalDensity(t *testing.T) {
	d, err := NewDataset(defaultFile())
	require.NoError(t, err)

	rho, err := d.CriticalDensity()
	require.NoError(t, err)
	require.InEpsilon(t, 3*0.07*0.07/(8*math.Pi*4.49233855e-5), rho, 1e-14)

	p := defaultFile()
	delete(p.Background, parser.HubbleRateName)
	d, err = NewDataset(p)
	require.NoError(t, err)
	_, err = d.CriticalDensity()
	require.ErrorIs(t, err, ErrMissingBackground)
}
