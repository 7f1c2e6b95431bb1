package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/classex_explore_go/internal/analysis"
)

// surfaceGrid exposes a transfer-function surface as a plotter.GridXYZ with
// log conformal time on X and log10 k on Y.
type surfaceGrid struct {
	s *analysis.Surface
}

func (g surfaceGrid) Dims() (c, r int) { return len(g.s.LogConformalTimes), len(g.s.Wavenumbers) }
func (g surfaceGrid) Z(c, r int) float64 { return g.s.Values.At(r, c) }
func (g surfaceGrid) X(c int) float64 { return g.s.LogConformalTimes[c] }
func (g surfaceGrid) Y(r int) float64 { return math.Log10(g.s.Wavenumbers[r]) }

// CreateSurfaceHeatmap renders surface over (log conformal time, log10 k)
// and returns the PNG bytes.
func CreateSurfaceHeatmap(surface *analysis.Surface) ([]byte, error) {
	if surface == nil {
		return nil, fmt.Errorf("no surface to plot")
	}
	grid := surfaceGrid{s: surface}
	c, r := grid.Dims()
	if c < 2 || r < 2 {
		return nil, fmt.Errorf("surface '%s' needs at least 2x2 samples, got %dx%d", surface.Title, c, r)
	}

	zMin, zMax := math.Inf(1), math.Inf(-1)
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			z := grid.Z(i, j)
			if math.IsNaN(z) {
				continue
			}
			zMin = math.Min(zMin, z)
			zMax = math.Max(zMax, z)
		}
	}
	if math.IsInf(zMin, 0) {
		return nil, fmt.Errorf("surface '%s' has no finite values", surface.Title)
	}

	heatmap := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	if zMin == zMax {
		heatmap.Min, heatmap.Max = zMin-0.5, zMax+0.5
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (min %.3g, max %.3g)", surface.Title, zMin, zMax)
	p.X.Label.Text = "ln(conformal time)"
	p.Y.Label.Text = "log10(k / Mpc^-1)"
	p.Add(heatmap)

	writer, err := p.WriterTo(vg.Points(800), vg.Points(500), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create heatmap writer: %w", err)
	}
	return pngBytes(writer)
}
