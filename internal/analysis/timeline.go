package analysis

import (
	"fmt"
	"math"

	"github.com/user/classex_explore_go/internal/interpolate"
)

// Timeline maps redshift to log conformal time by piecewise-linear
// interpolation through the sampled pairs.
type Timeline struct {
	fn *interpolate.Linear
}

// NewTimeline builds the redshift to log conformal time mapping. Redshifts
// must be strictly monotonic in either direction.
func NewTimeline(redshifts, logConformalTimes []float64) (*Timeline, error) {
	fn, err := interpolate.NewLinear(redshifts, logConformalTimes)
	if err != nil {
		return nil, fmt.Errorf("redshift to time mapping: %w", err)
	}
	return &Timeline{fn: fn}, nil
}

// Domain returns the smallest and largest sampled redshift.
func (tl *Timeline) Domain() (zMin, zMax float64) { return tl.fn.Domain() }

// LogConformalTime returns ln(tau) at redshift z.
func (tl *Timeline) LogConformalTime(z float64) (float64, error) {
	lo, hi := tl.fn.Domain()
	if err := checkDomain("z", z, lo, hi); err != nil {
		return 0, err
	}
	return tl.fn.Eval(z), nil
}

// ConformalTime returns tau at redshift z.
func (tl *Timeline) ConformalTime(z float64) (float64, error) {
	lt, err := tl.LogConformalTime(z)
	if err != nil {
		return 0, err
	}
	return math.Exp(lt), nil
}
