package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/user/classex_explore_go/internal/interpolate"
	"github.com/user/classex_explore_go/internal/parser"
)

// Titles with a special role in the dataset.
const (
	CDMTitle    = "d_cdm"
	BaryonTitle = "d_b"
	MergedTitle = "d_cb_merge"

	// DensityPrefix marks density perturbation functions.
	DensityPrefix = "d_"
)

type options struct {
	logger *slog.Logger
	merge  bool
}

// Option configures NewDataset.
type Option func(*options)

// WithLogger sets the logger used for load-time diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMergedSpecies controls synthesis of the combined cold dark matter and
// baryon function. It is enabled by default.
func WithMergedSpecies(enabled bool) Option {
	return func(o *options) { o.merge = enabled }
}

// Dataset is the in-memory perturbation data of one file. It is immutable
// once NewDataset returns and every query is a pure function of it.
type Dataset struct {
	Wavenumbers       []float64
	Redshifts         []float64
	LogConformalTimes []float64
	ConformalTimes    []float64
	Titles            []string

	transfer   [][]float64 // per function, row-major k x tau as stored
	omegas     [][]float64 // per function, per time sample
	background map[string][]float64
	timeline   *Timeline
	surfaces   []*Surface
	logger     *slog.Logger
}

// NewDataset validates the raw arrays of p and builds the query structures.
// When both d_cdm and d_b are present a d_cb_merge function is appended,
// weighted by the present-day density fractions. p is not modified.
func NewDataset(p *parser.PerturbFile, opts ...Option) (*Dataset, error) {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		merge:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if p == nil {
		return nil, fmt.Errorf("perturbation data is nil")
	}

	nk, nt, nf := p.KSize(), p.TauSize(), p.NumFunctions()
	if nk < 2 || nt < 2 {
		return nil, fmt.Errorf("need at least 2 wavenumbers and 2 time samples, got %d and %d", nk, nt)
	}
	if len(p.Redshifts) != nt {
		return nil, fmt.Errorf("%d redshifts for %d time samples", len(p.Redshifts), nt)
	}
	if len(p.Transfer) != nf*nk*nt || len(p.Omegas) != nf*nt {
		return nil, fmt.Errorf("array sizes do not match %d functions x %d wavenumbers x %d times", nf, nk, nt)
	}
	if interpolate.Direction(p.Wavenumbers) != 1 || !(p.Wavenumbers[0] > 0) {
		return nil, fmt.Errorf("wavenumbers must be positive and strictly increasing")
	}
	if interpolate.Direction(p.LogConformalTimes) == 0 {
		return nil, fmt.Errorf("log conformal times must be strictly monotonic")
	}

	timeline, err := NewTimeline(p.Redshifts, p.LogConformalTimes)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Wavenumbers:       clone(p.Wavenumbers),
		Redshifts:         clone(p.Redshifts),
		LogConformalTimes: clone(p.LogConformalTimes),
		ConformalTimes:    make([]float64, nt),
		Titles:            append([]string(nil), p.Titles...),
		transfer:          make([][]float64, nf),
		omegas:            make([][]float64, nf),
		background:        make(map[string][]float64, len(p.Background)),
		timeline:          timeline,
		logger:            o.logger,
	}
	for j, lt := range d.LogConformalTimes {
		d.ConformalTimes[j] = math.Exp(lt)
	}
	for f := 0; f < nf; f++ {
		d.transfer[f] = clone(p.Transfer[f*nk*nt : (f+1)*nk*nt])
		d.omegas[f] = clone(p.Omegas[f*nt : (f+1)*nt])
	}
	for name, series := range p.Background {
		d.background[name] = clone(series)
	}

	if o.merge {
		d.mergeCDMBaryons()
	}

	d.surfaces = make([]*Surface, len(d.Titles))
	for f, title := range d.Titles {
		s, err := newSurface(title, d.LogConformalTimes, d.Wavenumbers, d.transfer[f])
		if err != nil {
			return nil, fmt.Errorf("function '%s': %w", title, err)
		}
		d.surfaces[f] = s
	}

	zMin, zMax := timeline.Domain()
	d.logger.Debug("dataset loaded",
		"path", p.Path,
		"k_size", nk,
		"tau_size", nt,
		"functions", len(d.Titles),
		"z_min", zMin,
		"z_max", zMax)
	return d, nil
}

// mergeCDMBaryons appends the density-weighted combination of d_cdm and d_b.
func (d *Dataset) mergeCDMBaryons() {
	c, b := d.FindTitle(CDMTitle), d.FindTitle(BaryonTitle)
	if c < 0 || b < 0 || d.FindTitle(MergedTitle) >= 0 {
		return
	}
	today := len(d.LogConformalTimes) - 1
	omegaC, omegaB := d.omegas[c][today], d.omegas[b][today]
	if omegaC+omegaB == 0 {
		d.logger.Warn("skipping cdm+baryon merge: present-day density fractions are zero")
		return
	}
	wc := omegaC / (omegaC + omegaB)
	wb := omegaB / (omegaC + omegaB)

	merged := make([]float64, len(d.transfer[c]))
	for i := range merged {
		merged[i] = wc*d.transfer[c][i] + wb*d.transfer[b][i]
	}
	omegaCB := make([]float64, len(d.omegas[c]))
	for j := range omegaCB {
		omegaCB[j] = d.omegas[c][j] + d.omegas[b][j]
	}

	d.Titles = append(d.Titles, MergedTitle)
	d.transfer = append(d.transfer, merged)
	d.omegas = append(d.omegas, omegaCB)
	d.logger.Debug("merged cdm and baryons", "w_cdm", wc, "w_b", wb)
}

// FindTitle returns the index of title, or -1 if it is absent.
func (d *Dataset) FindTitle(title string) int {
	for i, t := range d.Titles {
		if t == title {
			return i
		}
	}
	return -1
}

// NumFunctions returns the number of functions, including synthesized ones.
func (d *Dataset) NumFunctions() int { return len(d.Titles) }

// Timeline returns the redshift to time mapping.
func (d *Dataset) Timeline() *Timeline { return d.timeline }

// Transfer returns the stored value of function f at wavenumber index i and
// time index j.
func (d *Dataset) Transfer(f, i, j int) float64 {
	return d.transfer[f][i*len(d.LogConformalTimes)+j]
}

// Omegas returns a copy of the density fraction history of function f.
func (d *Dataset) Omegas(f int) []float64 { return clone(d.omegas[f]) }

// Surface returns the interpolating surface of the named function.
func (d *Dataset) Surface(title string) (*Surface, error) {
	f := d.FindTitle(title)
	if f < 0 {
		return nil, fmt.Errorf("%w: '%s' (available: %s)", ErrUnknownFunction, title, strings.Join(d.Titles, ", "))
	}
	return d.surfaces[f], nil
}

// IsDensity reports whether title names a density perturbation.
func IsDensity(title string) bool { return strings.HasPrefix(title, DensityPrefix) }

// Surface is the transfer function of one species over the
// (log conformal time, wavenumber) grid.
type Surface struct {
	Title             string
	LogConformalTimes []float64  // increasing
	Wavenumbers       []float64  // increasing
	Values            mat.Matrix // rows follow Wavenumbers, columns LogConformalTimes

	bi *interpolate.BiLinear
}

// newSurface wraps the row-major k x tau values. The time axis is reversed
// when it is stored in decreasing order.
func newSurface(title string, logTau, ks, values []float64) (*Surface, error) {
	nk, nt := len(ks), len(logTau)
	grid := mat.NewDense(nk, nt, clone(values))
	times := logTau
	if interpolate.Direction(logTau) < 0 {
		times = make([]float64, nt)
		flipped := mat.NewDense(nk, nt, nil)
		for j := 0; j < nt; j++ {
			times[j] = logTau[nt-1-j]
			flipped.SetCol(j, mat.Col(nil, nt-1-j, grid))
		}
		grid = flipped
	}
	bi, err := interpolate.NewBiLinear(times, ks, grid)
	if err != nil {
		return nil, err
	}
	return &Surface{
		Title:             title,
		LogConformalTimes: times,
		Wavenumbers:       ks,
		Values:            grid,
		bi:                bi,
	}, nil
}

// At evaluates the surface at log conformal time lt and wavenumber k. A
// point outside the sampled grid yields a *DomainError.
func (s *Surface) At(lt, k float64) (float64, error) {
	if err := s.checkTime(lt); err != nil {
		return 0, err
	}
	if err := s.checkWavenumber(k); err != nil {
		return 0, err
	}
	return s.bi.Eval(lt, k), nil
}

// AtTime evaluates the surface at log conformal time lt for each of ks.
func (s *Surface) AtTime(lt float64, ks []float64) ([]float64, error) {
	if err := s.checkTime(lt); err != nil {
		return nil, err
	}
	for _, k := range ks {
		if err := s.checkWavenumber(k); err != nil {
			return nil, err
		}
	}
	return s.bi.EvalAllX(lt, ks), nil
}

// AtWavenumber evaluates the surface at wavenumber k for each of lts.
func (s *Surface) AtWavenumber(lts []float64, k float64) ([]float64, error) {
	if err := s.checkWavenumber(k); err != nil {
		return nil, err
	}
	for _, lt := range lts {
		if err := s.checkTime(lt); err != nil {
			return nil, err
		}
	}
	return s.bi.EvalAllY(lts, k), nil
}

func (s *Surface) checkTime(lt float64) error {
	return checkDomain("ln(tau)", lt, s.LogConformalTimes[0], s.LogConformalTimes[len(s.LogConformalTimes)-1])
}

func (s *Surface) checkWavenumber(k float64) error {
	return checkDomain("k", k, s.Wavenumbers[0], s.Wavenumbers[len(s.Wavenumbers)-1])
}

func clone(xs []float64) []float64 {
	return append([]float64(nil), xs...)
}
