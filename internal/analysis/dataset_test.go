package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset_MergesCDMAndBaryons(t *testing.T) {
	p := defaultFile()
	d, err := NewDataset(p)
	require.NoError(t, err)

	require.Equal(t, []string{"d_cdm", "d_b", "t_b", "d_g", MergedTitle}, d.Titles)
	require.Len(t, p.Titles, 4, "input titles untouched")

	m := d.FindTitle(MergedTitle)
	c, b := d.FindTitle(CDMTitle), d.FindTitle(BaryonTitle)
	wc := 0.26 / (0.26 + 0.05)
	wb := 0.05 / (0.26 + 0.05)
	for i := range testKs {
		for j := range testLogTaus {
			want := wc*d.Transfer(c, i, j) + wb*d.Transfer(b, i, j)
			require.InDelta(t, want, d.Transfer(m, i, j), 1e-12)
		}
	}

	omegaCB := d.Omegas(m)
	omegaC, omegaB := d.Omegas(c), d.Omegas(b)
	for j := range omegaCB {
		require.Equal(t, omegaC[j]+omegaB[j], omegaCB[j])
	}
}

func TestNewDataset_MergeConditions(t *testing.T) {
	d, err := NewDataset(defaultFile(), WithMergedSpecies(false))
	require.NoError(t, err)
	require.Equal(t, -1, d.FindTitle(MergedTitle))

	d, err = NewDataset(unitFile([]string{"d_cdm", "t_cdm"}))
	require.NoError(t, err)
	require.Equal(t, -1, d.FindTitle(MergedTitle))

	p := defaultFile()
	p.Omegas[len(testLogTaus)-1] = 0   // d_cdm today
	p.Omegas[2*len(testLogTaus)-1] = 0 // d_b today
	d, err = NewDataset(p)
	require.NoError(t, err)
	require.Equal(t, -1, d.FindTitle(MergedTitle))
}

func TestNewDataset_Validation(t *testing.T) {
	p := defaultFile()
	p.Wavenumbers[2] = p.Wavenumbers[1]
	_, err := NewDataset(p)
	require.Error(t, err)

	p = defaultFile()
	p.Redshifts[3] = 20
	_, err = NewDataset(p)
	require.Error(t, err)

	p = defaultFile()
	p.Transfer = p.Transfer[:10]
	_, err = NewDataset(p)
	require.Error(t, err)

	_, err = NewDataset(nil)
	require.Error(t, err)
}

func TestDataset_ConformalTimes(t *testing.T) {
	d, err := NewDataset(defaultFile())
	require.NoError(t, err)
	for j, lt := range testLogTaus {
		assert.Equal(t, math.Exp(lt), d.ConformalTimes[j])
	}
	zMin, zMax := d.Timeline().Domain()
	assert.Equal(t, 0.0, zMin)
	assert.Equal(t, 100.0, zMax)

	tau, err := d.Timeline().ConformalTime(1)
	require.NoError(t, err)
	assert.Equal(t, math.Exp(6), tau)
}

func TestDataset_Surface(t *testing.T) {
	d, err := NewDataset(defaultFile())
	require.NoError(t, err)

	s, err := d.Surface("d_b")
	require.NoError(t, err)
	f := d.FindTitle("d_b")
	for i, k := range testKs {
		for j, lt := range testLogTaus {
			v, err := s.At(lt, k)
			require.NoError(t, err)
			require.Equal(t, d.Transfer(f, i, j), v)
		}
	}

	_, err = d.Surface("nope")
	require.True(t, errors.Is(err, ErrUnknownFunction))
}

func TestSurface_OutsideGrid(t *testing.T) {
	d, err := NewDataset(defaultFile())
	require.NoError(t, err)
	s, err := d.Surface("d_cdm")
	require.NoError(t, err)

	// Grid: ln(tau) in [2, 7], k in [1e-4, 1].
	for _, pt := range [][2]float64{{7, 50}, {100, 0.1}, {1.5, 1e-3}, {4, 1e-5}} {
		_, err := s.At(pt[0], pt[1])
		require.ErrorIs(t, err, ErrOutOfDomain, "lt=%g k=%g", pt[0], pt[1])
		var de *DomainError
		require.True(t, errors.As(err, &de))
	}

	values, err := s.AtTime(-50, testKs)
	require.ErrorIs(t, err, ErrOutOfDomain)
	require.Nil(t, values)

	_, err = s.AtTime(4, []float64{1e-3, 2})
	require.ErrorIs(t, err, ErrOutOfDomain)

	values, err = s.AtWavenumber(testLogTaus, 5)
	require.ErrorIs(t, err, ErrOutOfDomain)
	require.Nil(t, values)

	_, err = s.AtWavenumber([]float64{3, 8}, 1e-2)
	require.ErrorIs(t, err, ErrOutOfDomain)

	// Grid corners are inside.
	v, err := s.At(7, 1)
	require.NoError(t, err)
	require.Equal(t, d.Transfer(d.FindTitle("d_cdm"), len(testKs)-1, len(testLogTaus)-1), v)
}

func TestDataset_DecreasingTimeAxis(t *testing.T) {
	p := defaultFile()
	// Store the time axis backwards: redshift then increases with index.
	nt := len(testLogTaus)
	reverse := func(xs []float64) {
		for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
	reverse(p.Redshifts)
	reverse(p.LogConformalTimes)
	for start := 0; start < len(p.Transfer); start += nt {
		reverse(p.Transfer[start : start+nt])
	}

	d, err := NewDataset(p, WithMergedSpecies(false))
	require.NoError(t, err)
	tab, err := d.PerturbAtRedshift(10)
	require.NoError(t, err)
	// d_cdm: value(0, i) + 0.5 * lt, lt(z=10) = 4.
	for i := range testKs {
		require.Equal(t, float64(10+i)+0.5*4, tab.At(i, 1))
	}
}
