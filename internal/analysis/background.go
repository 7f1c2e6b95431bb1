package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/user/classex_explore_go/internal/parser"
)

// GravitationalConstant in Mpc^3 / (1e10 M_sun) / Gyr^2.
const GravitationalConstant = 4.49233855e-5

// backgroundColumns pairs the stored background series with their table
// column names, in table order.
var backgroundColumns = []struct {
	series string
	column string
}{
	{parser.GrowthFactorName, "growth_factor_D"},
	{parser.GrowthRateName, "growth_rate_f"},
	{parser.GrowthRatePrimeName, "growth_rate_f_prime"},
	{parser.HubbleRateName, "Hubble_rate"},
	{parser.HubbleRatePrimeName, "Hubble_rate_prime"},
	{parser.OmegaMatterName, "Omega_m"},
	{parser.OmegaRadiationName, "Omega_r"},
}

// Background tabulates the background cosmology at every time sample:
// redshift, conformal time, the seven background series and the density
// fraction of every species whose history is not identically zero.
func (d *Dataset) Background() (*Table, error) {
	b := NewTableBuilder(len(d.LogConformalTimes)).
		Add("z", d.Redshifts).
		Add("conformal_time", d.ConformalTimes)
	for _, bc := range backgroundColumns {
		series, ok := d.background[bc.series]
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrMissingBackground, bc.series)
		}
		b.Add(bc.column, series)
	}
	for f, omega := range d.omegas {
		if floats.Max(omega) == 0 && floats.Min(omega) == 0 {
			continue
		}
		b.Add(d.Titles[f], omega)
	}
	return b.Build()
}

// CriticalDensity returns 3 H^2 / (8 pi G) using the Hubble rate of the last
// time sample, in 1e10 M_sun / Mpc^3.
func (d *Dataset) CriticalDensity() (float64, error) {
	hubble, ok := d.background[parser.HubbleRateName]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrMissingBackground, parser.HubbleRateName)
	}
	h := hubble[len(hubble)-1]
	return 3 * h * h / (8 * math.Pi * GravitationalConstant), nil
}
