package analysis

import (
	"fmt"
	"math"

	"github.com/user/classex_explore_go/internal/interpolate"
)

// PowerAtRedshift computes the linear power spectrum of every density
// function ("d_" titles) at redshift z:
//
//	P(k) = A_s T(k,z)^2 (k/k_pivot)^(n_s-1) k 2 pi^2
//
// An older form, A_s T^2 (k/k_pivot)^n_s, circulated in earlier tooling and
// is not used. Columns are "k" followed by the included titles.
func (d *Dataset) PowerAtRedshift(z float64, prim Primordial) (*Table, error) {
	if err := prim.Validate(); err != nil {
		return nil, err
	}
	lt, err := d.timeline.LogConformalTime(z)
	if err != nil {
		return nil, err
	}

	ks := d.Wavenumbers
	primordial := make([]float64, len(ks))
	for i, k := range ks {
		primordial[i] = prim.AmplitudeS * math.Pow(k/prim.PivotScale, prim.SpectralIndex-1) * k * 2 * math.Pi * math.Pi
	}

	b := NewTableBuilder(len(ks)).Add("k", ks)
	for f, s := range d.surfaces {
		if !IsDensity(d.Titles[f]) {
			continue
		}
		tk, err := s.AtTime(lt, ks)
		if err != nil {
			return nil, err
		}
		pk := make([]float64, len(ks))
		for i := range ks {
			pk[i] = tk[i] * tk[i] * primordial[i]
		}
		b.Add(d.Titles[f], pk)
	}
	return b.Build()
}

// ResamplePower interpolates a power spectrum table onto the wavenumbers ks
// by log-log linear interpolation. Every target must lie inside the
// wavenumber range of the table.
func ResamplePower(power *Table, ks []float64) (*Table, error) {
	if err := checkPowerTable(power); err != nil {
		return nil, err
	}
	if len(ks) == 0 {
		return nil, fmt.Errorf("no target wavenumbers")
	}
	src := power.Col(0)
	lo, hi := src[0], src[len(src)-1]
	for _, k := range ks {
		if err := checkDomain("k", k, lo, hi); err != nil {
			return nil, err
		}
	}

	_, cols := power.Dims()
	b := NewTableBuilder(len(ks)).Add(power.Columns[0], ks)
	for j := 1; j < cols; j++ {
		out, err := interpolate.LogLog(src, power.Col(j), ks)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", power.Columns[j], err)
		}
		b.Add(power.Columns[j], out)
	}
	return b.Build()
}

func checkPowerTable(power *Table) error {
	if power == nil {
		return fmt.Errorf("power spectrum table is nil")
	}
	rows, _ := power.Dims()
	if len(power.Columns) == 0 || power.Columns[0] != "k" {
		return fmt.Errorf("power spectrum table must start with a 'k' column")
	}
	if rows < 2 {
		return fmt.Errorf("power spectrum table needs at least 2 rows, got %d", rows)
	}
	return nil
}
