package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/user/classex_explore_go/internal/interpolate"
)

// DefaultSigmaSamples is the size of the logarithmic wavenumber grid the
// power spectrum is resampled onto before integration.
const DefaultSigmaSamples = 100000

// topHatSeriesLimit is the |x| below which the window uses its Taylor series.
const topHatSeriesLimit = 1e-3

type sigmaOptions struct {
	samples int
}

// SigmaOption configures SigmaR.
type SigmaOption func(*sigmaOptions)

// WithSamples sets the number of points of the integration grid.
func WithSamples(n int) SigmaOption {
	return func(o *sigmaOptions) { o.samples = n }
}

// TopHat is the Fourier transform of a spherical top-hat of unit volume,
// W(x) = 3 (sin x - x cos x) / x^3, with W(0) = 1.
func TopHat(x float64) float64 {
	if math.Abs(x) < topHatSeriesLimit {
		return 1 - x*x/10
	}
	return 3 / (x * x * x) * (math.Sin(x) - x*math.Cos(x))
}

// SigmaR computes the rms density fluctuation in spheres of radius R (Mpc)
// for every power spectrum column of power:
//
//	sigma_R^2 = integral dk k^2 P(k) W(kR)^2 / (2 pi^2)
//
// The spectrum is first resampled log-log onto a logarithmic grid spanning
// its wavenumber range; the integral uses the trapezoidal rule.
func SigmaR(power *Table, radius float64, opts ...SigmaOption) ([]SigmaResult, error) {
	o := sigmaOptions{samples: DefaultSigmaSamples}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkPowerTable(power); err != nil {
		return nil, err
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("smoothing radius must be positive and finite, got %g", radius)
	}
	if o.samples < 2 {
		return nil, fmt.Errorf("integration grid needs at least 2 samples, got %d", o.samples)
	}

	src := power.Col(0)
	ks, err := interpolate.LogSpace(src[0], src[len(src)-1], o.samples)
	if err != nil {
		return nil, err
	}

	// k^2 W(kR)^2 / (2 pi^2) is shared by every column.
	kernel := make([]float64, len(ks))
	for i, k := range ks {
		w := TopHat(k * radius)
		kernel[i] = k * k * w * w / (2 * math.Pi * math.Pi)
	}

	_, cols := power.Dims()
	results := make([]SigmaResult, 0, cols-1)
	integrand := make([]float64, len(ks))
	for j := 1; j < cols; j++ {
		pk, err := interpolate.LogLog(src, power.Col(j), ks)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", power.Columns[j], err)
		}
		for i := range ks {
			integrand[i] = kernel[i] * pk[i]
		}
		variance := integrate.Trapezoidal(ks, integrand)
		results = append(results, SigmaResult{
			Title:    power.Columns[j],
			Radius:   radius,
			Variance: variance,
			Sigma:    math.Sqrt(variance),
		})
	}
	return results, nil
}
