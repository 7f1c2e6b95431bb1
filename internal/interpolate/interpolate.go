/*Package interpolate implements the one- and two-dimensional interpolators
used to evaluate tabulated perturbation data between its sample points.

All interpolators here are interpolating rather than approximating: evaluated
at an original node they return the stored value exactly.
*/
package interpolate

import (
	"errors"
	"fmt"
	"sort"

	ginterp "gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewPoints is returned when an axis has fewer than two samples.
	ErrTooFewPoints = errors.New("interpolate: at least two points are required")
	// ErrNotMonotonic is returned when an axis is not strictly monotonic.
	ErrNotMonotonic = errors.New("interpolate: abscissae must be strictly monotonic")
	// ErrLengthMismatch is returned when paired slices differ in length.
	ErrLengthMismatch = errors.New("interpolate: length mismatch")
)

// Interpolator is a 1D interpolator.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequence of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
}

// BiInterpolator is a 2D interpolator.
type BiInterpolator interface {
	Eval(x, y float64) float64
	EvalAll(xs, ys []float64, out ...[]float64) []float64

	EvalAllX(x float64, ys []float64, out ...[]float64) []float64
	EvalAllY(xs []float64, y float64, out ...[]float64) []float64
}

var (
	_ Interpolator   = &Linear{}
	_ BiInterpolator = &BiLinear{}
)

// Direction reports whether xs is strictly increasing (+1), strictly
// decreasing (-1) or neither (0).
func Direction(xs []float64) int {
	if len(xs) < 2 {
		return 0
	}
	dir := 1
	if xs[1] < xs[0] {
		dir = -1
	}
	for i := 1; i < len(xs); i++ {
		d := xs[i] - xs[i-1]
		if (dir > 0 && !(d > 0)) || (dir < 0 && !(d < 0)) {
			return 0
		}
	}
	return dir
}

// Linear is a piecewise-linear interpolator. Abscissae may be supplied in
// either strictly increasing or strictly decreasing order.
type Linear struct {
	pl     ginterp.PiecewiseLinear
	lo, hi float64
}

// NewLinear fits a piecewise-linear interpolant through (xs[i], ys[i]).
func NewLinear(xs, ys []float64) (*Linear, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d abscissae, %d ordinates", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, ErrTooFewPoints
	}

	dir := Direction(xs)
	if dir == 0 {
		return nil, ErrNotMonotonic
	}
	sx, sy := xs, ys
	if dir < 0 {
		sx, sy = reversed(xs), reversed(ys)
	}

	l := &Linear{lo: sx[0], hi: sx[len(sx)-1]}
	if err := l.pl.Fit(sx, sy); err != nil {
		return nil, fmt.Errorf("interpolate: fit failed: %w", err)
	}
	return l, nil
}

// Domain returns the closed interval covered by the abscissae.
func (l *Linear) Domain() (lo, hi float64) { return l.lo, l.hi }

// Contains reports whether x lies inside the sampled domain.
func (l *Linear) Contains(x float64) bool { return x >= l.lo && x <= l.hi }

// Eval evaluates the interpolant at x. Outside the domain the value at the
// nearest end point is returned; callers that must not clamp check Contains.
func (l *Linear) Eval(x float64) float64 { return l.pl.Predict(x) }

// EvalAll evaluates the interpolant at every element of xs.
func (l *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	res := output(len(xs), out)
	for i, x := range xs {
		res[i] = l.Eval(x)
	}
	return res
}

// BiLinear is a bilinear interpolator over a rectilinear grid. The grid
// values are read from z with z.At(iy, ix): rows follow the y axis and
// columns follow the x axis. Both axes must be strictly increasing.
type BiLinear struct {
	xs, ys []float64
	z      mat.Matrix
}

// NewBiLinear creates a bilinear interpolator. z must have len(ys) rows and
// len(xs) columns.
func NewBiLinear(xs, ys []float64, z mat.Matrix) (*BiLinear, error) {
	if len(xs) < 2 || len(ys) < 2 {
		return nil, ErrTooFewPoints
	}
	if Direction(xs) != 1 || Direction(ys) != 1 {
		return nil, fmt.Errorf("%w: grid axes must be increasing", ErrNotMonotonic)
	}
	r, c := z.Dims()
	if r != len(ys) || c != len(xs) {
		return nil, fmt.Errorf("%w: grid is %dx%d, axes are %dx%d", ErrLengthMismatch, r, c, len(ys), len(xs))
	}
	return &BiLinear{xs: xs, ys: ys, z: z}, nil
}

// Contains reports whether (x, y) lies inside the grid.
func (bi *BiLinear) Contains(x, y float64) bool {
	return x >= bi.xs[0] && x <= bi.xs[len(bi.xs)-1] &&
		y >= bi.ys[0] && y <= bi.ys[len(bi.ys)-1]
}

// Eval evaluates the interpolant at (x, y). Points outside the grid are
// linearly extrapolated from the edge cell; callers that must stay on the
// grid check Contains first.
func (bi *BiLinear) Eval(x, y float64) float64 {
	ix, tx := cell(bi.xs, x)
	iy, ty := cell(bi.ys, y)
	return bi.blend(ix, tx, iy, ty)
}

// EvalAll evaluates the interpolant at the points (xs[i], ys[i]).
func (bi *BiLinear) EvalAll(xs, ys []float64, out ...[]float64) []float64 {
	if len(xs) != len(ys) {
		panic("interpolate: EvalAll called with slices of different length")
	}
	res := output(len(xs), out)
	for i := range xs {
		res[i] = bi.Eval(xs[i], ys[i])
	}
	return res
}

// EvalAllX evaluates the interpolant at a fixed x for every y in ys.
func (bi *BiLinear) EvalAllX(x float64, ys []float64, out ...[]float64) []float64 {
	res := output(len(ys), out)
	ix, tx := cell(bi.xs, x)
	for i, y := range ys {
		iy, ty := cell(bi.ys, y)
		res[i] = bi.blend(ix, tx, iy, ty)
	}
	return res
}

// EvalAllY evaluates the interpolant at a fixed y for every x in xs.
func (bi *BiLinear) EvalAllY(xs []float64, y float64, out ...[]float64) []float64 {
	res := output(len(xs), out)
	iy, ty := cell(bi.ys, y)
	for i, x := range xs {
		ix, tx := cell(bi.xs, x)
		res[i] = bi.blend(ix, tx, iy, ty)
	}
	return res
}

// blend combines the four corners of cell (ix, iy). Terms with a zero weight
// are skipped so that node values come back bit-for-bit and non-finite
// neighbours do not leak into them.
func (bi *BiLinear) blend(ix int, tx float64, iy int, ty float64) float64 {
	v := 0.0
	add := func(w float64, r, c int) {
		if w != 0 {
			v += w * bi.z.At(r, c)
		}
	}
	add((1-tx)*(1-ty), iy, ix)
	add(tx*(1-ty), iy, ix+1)
	add((1-tx)*ty, iy+1, ix)
	add(tx*ty, iy+1, ix+1)
	return v
}

// cell returns the index i of the segment [xs[i], xs[i+1]] used for x and
// the fractional position of x within it.
func cell(xs []float64, x float64) (int, float64) {
	n := len(xs)
	i := sort.SearchFloat64s(xs, x) - 1
	switch {
	case i < 0:
		i = 0
	case i > n-2:
		i = n - 2
	}
	if x == xs[i+1] {
		return i, 1
	}
	return i, (x - xs[i]) / (xs[i+1] - xs[i])
}

func output(n int, out [][]float64) []float64 {
	if len(out) > 0 && len(out[0]) >= n {
		return out[0][:n]
	}
	return make([]float64, n)
}

func reversed(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}
