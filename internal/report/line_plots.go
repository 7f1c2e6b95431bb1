package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/classex_explore_go/internal/analysis"
)

var plotColors = []color.Color{
	color.RGBA{R: 255, A: 255},               // Red
	color.RGBA{G: 160, A: 255},               // Green
	color.RGBA{B: 255, A: 255},               // Blue
	color.RGBA{R: 255, G: 165, A: 255},       // Orange
	color.RGBA{R: 128, B: 128, A: 255},       // Purple
	color.RGBA{G: 128, B: 128, A: 255},       // Teal
	color.RGBA{R: 90, G: 90, B: 90, A: 255},  // Grey
	color.RGBA{R: 165, G: 42, B: 42, A: 255}, // Brown
}

// CreateLinePlot draws every column of table against its first column and
// returns the PNG bytes. An axis is logarithmic when all of its values are
// positive.
func CreateLinePlot(table *analysis.Table, title string) ([]byte, error) {
	if table == nil {
		return nil, fmt.Errorf("no table to plot")
	}
	rows, cols := table.Dims()
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("cannot plot a %dx%d table", rows, cols)
	}

	xs := table.Col(0)
	series := make([][]float64, 0, cols-1)
	for j := 1; j < cols; j++ {
		series = append(series, table.Col(j))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = table.Columns[0]
	if len(series) == 1 {
		p.Y.Label.Text = table.Columns[1]
	}
	if allPositive(xs) {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
	}
	if allPositive(series...) {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
	}
	p.Add(plotter.NewGrid())

	for j, ys := range series {
		pts := make(plotter.XYs, rows)
		for i := range pts {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %w", table.Columns[j+1], err)
		}
		line.Color = plotColors[j%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(table.Columns[j+1], line)
	}

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)

	writer, err := p.WriterTo(vg.Points(800), vg.Points(400), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	return pngBytes(writer)
}

func allPositive(columns ...[]float64) bool {
	for _, col := range columns {
		for _, v := range col {
			if !(v > 0) {
				return false
			}
		}
	}
	return true
}
