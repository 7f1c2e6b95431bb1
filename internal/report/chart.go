package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// WriteChart renders doc as a standalone interactive HTML page with one line
// per column, plotted against the first column.
func WriteChart(w io.Writer, doc *Document) error {
	rows, cols := doc.Table.Dims()
	if rows < 2 || cols < 2 {
		return fmt.Errorf("cannot chart a %dx%d table", rows, cols)
	}
	xs := doc.Table.Col(0)

	xType, yType := "value", "value"
	if allPositive(xs) {
		xType = "log"
	}
	ys := make([][]float64, 0, cols-1)
	for j := 1; j < cols; j++ {
		ys = append(ys, doc.Table.Col(j))
	}
	if allPositive(ys...) {
		yType = "log"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: doc.Title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: doc.Table.Columns[0],
			Type: xType,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  yType,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	for j, col := range ys {
		items := make([]opts.LineData, rows)
		for i := range items {
			items[i].Value = []interface{}{xs[i], col[i]}
		}
		line.AddSeries(doc.Table.Columns[j+1], items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
