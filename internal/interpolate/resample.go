package interpolate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogSpace returns n points spaced evenly in ln x between lo and hi,
// inclusive. Both bounds must be positive.
func LogSpace(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, ErrTooFewPoints
	}
	if !(lo > 0) || !(hi > 0) {
		return nil, fmt.Errorf("interpolate: logarithmic bounds must be positive, got [%g, %g]", lo, hi)
	}
	out := floats.LogSpan(make([]float64, n), lo, hi)
	// Pin the end points so the resampled grid never strays outside [lo, hi]
	// through exp/log round-off.
	out[0], out[n-1] = lo, hi
	return out, nil
}

// LogLog resamples ys, tabulated at the positive abscissae xs, onto targets
// by linear interpolation of ln y against ln x. When ys contains a value
// that is not strictly positive its logarithm is undefined, so the column
// is interpolated linearly in y against ln x instead.
func LogLog(xs, ys, targets []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d abscissae, %d ordinates", ErrLengthMismatch, len(xs), len(ys))
	}
	lnX := make([]float64, len(xs))
	for i, x := range xs {
		if !(x > 0) {
			return nil, fmt.Errorf("interpolate: abscissa %d is not positive (%g)", i, x)
		}
		lnX[i] = math.Log(x)
	}

	positive := true
	for _, y := range ys {
		if !(y > 0) {
			positive = false
			break
		}
	}
	lnY := ys
	if positive {
		lnY = make([]float64, len(ys))
		for i, y := range ys {
			lnY[i] = math.Log(y)
		}
	}

	lin, err := NewLinear(lnX, lnY)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(targets))
	for i, t := range targets {
		v := lin.Eval(math.Log(t))
		if positive {
			v = math.Exp(v)
		}
		out[i] = v
	}
	return out, nil
}
