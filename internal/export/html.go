package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// maxChartPoints bounds the samples handed to the browser.
const maxChartPoints = 2000

func stride(n int) int {
	if n <= maxChartPoints {
		return 1
	}
	return (n + maxChartPoints - 1) / maxChartPoints
}

func timeChart(title, subtitle, unit string, t, ys []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "t (s)",
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  unit,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	step := stride(len(t))
	xs := make([]string, 0, len(t)/step+1)
	data := make([]opts.LineData, 0, len(t)/step+1)
	for k := 0; k < len(t); k += step {
		xs = append(xs, fmt.Sprintf("%.4g", t[k]))
		data = append(data, opts.LineData{Value: ys[k]})
	}
	line.SetXAxis(xs).AddSeries(title, data)
	return line
}

func ivChart(title string, v, i []float64) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "I-V",
			Subtitle: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "V",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "A",
			Scale: opts.Bool(true),
		}),
	)

	step := stride(len(v))
	data := make([]opts.ScatterData, 0, len(v)/step+1)
	for k := 0; k < len(v); k += step {
		data = append(data, opts.ScatterData{Value: []float64{v[k], i[k]}, SymbolSize: 3})
	}
	scatter.AddSeries("I(V)", data)
	return scatter
}

// HTML writes a standalone echarts page with voltage, current and state
// against time and the I-V loop.
func HTML(w io.Writer, doc Document) error {
	res := doc.Result
	title := doc.Title
	if title == "" {
		title = doc.Model
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		ivChart(title, res.Voltage, res.Current),
		timeChart("voltage", title, "V", res.Time, res.Voltage),
		timeChart("current", title, "A", res.Time, res.Current),
		timeChart("state", title, "x", res.Time, res.State),
	)
	return page.Render(w)
}
