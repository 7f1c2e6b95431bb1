package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDirection(t *testing.T) {
	assert.Equal(t, 1, Direction([]float64{1, 2, 3}))
	assert.Equal(t, -1, Direction([]float64{3, 2, 1}))
	assert.Equal(t, 0, Direction([]float64{1, 1, 2}))
	assert.Equal(t, 0, Direction([]float64{1, 3, 2}))
	assert.Equal(t, 0, Direction([]float64{1}))
}

func TestLinear_ExactAtNodes(t *testing.T) {
	xs := []float64{0, 0.5, 2, 3.25}
	ys := []float64{1.5, -2, 7.125, 0.1}
	l, err := NewLinear(xs, ys)
	require.NoError(t, err)
	for i := range xs {
		require.Equal(t, ys[i], l.Eval(xs[i]))
	}
	require.InDelta(t, (1.5-2)/2, l.Eval(0.25), 1e-15)

	lo, hi := l.Domain()
	require.Equal(t, 0.0, lo)
	require.Equal(t, 3.25, hi)
	require.True(t, l.Contains(3.25))
	require.False(t, l.Contains(3.3))
}

func TestLinear_Decreasing(t *testing.T) {
	// Redshift falls as conformal time grows.
	zs := []float64{100, 10, 1, 0}
	lt := []float64{1, 3, 6, 7}
	l, err := NewLinear(zs, lt)
	require.NoError(t, err)
	for i := range zs {
		require.Equal(t, lt[i], l.Eval(zs[i]))
	}
	require.InDelta(t, 6.5, l.Eval(0.5), 1e-15)
	lo, hi := l.Domain()
	require.Equal(t, 0.0, lo)
	require.Equal(t, 100.0, hi)

	// Input slices are left untouched.
	require.Equal(t, []float64{100, 10, 1, 0}, zs)
}

func TestLinear_Errors(t *testing.T) {
	_, err := NewLinear([]float64{1}, []float64{1})
	require.ErrorIs(t, err, ErrTooFewPoints)
	_, err = NewLinear([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, ErrLengthMismatch)
	_, err = NewLinear([]float64{1, 2, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, ErrNotMonotonic)
}

func TestBiLinear_RoundTripAtNodes(t *testing.T) {
	xs := []float64{-3, -1, 0.5, 2}
	ys := []float64{1e-4, 1e-2, 1, 10, 100}
	z := mat.NewDense(len(ys), len(xs), nil)
	for r := range ys {
		for c := range xs {
			z.Set(r, c, math.Sin(float64(3*r+c))*math.Pi)
		}
	}
	bi, err := NewBiLinear(xs, ys, z)
	require.NoError(t, err)

	for r, y := range ys {
		for c, x := range xs {
			require.Equal(t, z.At(r, c), bi.Eval(x, y), "node (%d,%d)", r, c)
		}
	}

	col := bi.EvalAllX(xs[2], ys)
	require.Equal(t, mat.Col(nil, 2, z), col)

	row := bi.EvalAllY(xs, ys[3])
	require.Equal(t, mat.Row(nil, 3, z), row)
}

func TestBiLinear_PlaneIsReproduced(t *testing.T) {
	xs := []float64{0, 1, 3}
	ys := []float64{0, 2, 5, 6}
	plane := func(x, y float64) float64 { return 2*x - 0.5*y + 1 }
	z := mat.NewDense(len(ys), len(xs), nil)
	for r, y := range ys {
		for c, x := range xs {
			z.Set(r, c, plane(x, y))
		}
	}
	bi, err := NewBiLinear(xs, ys, z)
	require.NoError(t, err)

	px := []float64{0.3, 2.2, 1.7}
	py := []float64{5.5, 0.1, 3.3}
	got := bi.EvalAll(px, py)
	for i := range px {
		require.InDelta(t, plane(px[i], py[i]), got[i], 1e-12)
	}
	require.True(t, bi.Contains(3, 6))
	require.False(t, bi.Contains(3.1, 6))
}

func TestBiLinear_Errors(t *testing.T) {
	z := mat.NewDense(2, 2, nil)
	_, err := NewBiLinear([]float64{0, 1}, []float64{0, 1, 2}, z)
	require.ErrorIs(t, err, ErrLengthMismatch)
	_, err = NewBiLinear([]float64{1, 0}, []float64{0, 1}, z)
	require.ErrorIs(t, err, ErrNotMonotonic)
}

func TestLogLog_PowerLawIsExact(t *testing.T) {
	xs := []float64{1e-3, 1e-2, 1e-1, 1}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 4 * math.Pow(x, -1.5)
	}
	targets := []float64{2e-3, 5e-2, 1}
	got, err := LogLog(xs, ys, targets)
	require.NoError(t, err)
	for i, x := range targets {
		require.InEpsilon(t, 4*math.Pow(x, -1.5), got[i], 1e-12)
	}
}

func TestLogLog_NonPositiveFallsBackToLinear(t *testing.T) {
	xs := []float64{1, math.E}
	ys := []float64{0, 2}
	got, err := LogLog(xs, ys, []float64{math.Sqrt(math.E)})
	require.NoError(t, err)
	require.InDelta(t, 1.0, got[0], 1e-12)
}

func TestLogSpace(t *testing.T) {
	ks, err := LogSpace(1e-4, 1e2, 7)
	require.NoError(t, err)
	require.Len(t, ks, 7)
	require.Equal(t, 1e-4, ks[0])
	require.Equal(t, 1e2, ks[6])
	require.InEpsilon(t, 1e-1, ks[3], 1e-12)

	_, err = LogSpace(0, 1, 4)
	require.Error(t, err)
	_, err = LogSpace(1, 2, 1)
	require.ErrorIs(t, err, ErrTooFewPoints)
}
