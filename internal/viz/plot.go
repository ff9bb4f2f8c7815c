package viz

import (
	"github.com/guptarohit/asciigraph"
)

// TimePlot renders a line chart of ys with asciigraph. Non-finite values are
// skipped; a series with no finite values renders as an empty string.
func TimePlot(ys []float64, caption string, w, h int) string {
	data := make([]float64, 0, len(ys))
	for _, v := range ys {
		if finite(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return ""
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(max(h, 2)),
		asciigraph.Width(max(w, 2)),
		asciigraph.Caption(caption),
	)
}

// MultiPlot overlays several equally long series in distinct colors.
func MultiPlot(series [][]float64, caption string, w, h int) string {
	var data [][]float64
	for _, s := range series {
		row := make([]float64, 0, len(s))
		for _, v := range s {
			if finite(v) {
				row = append(row, v)
			}
		}
		if len(row) > 1 {
			data = append(data, row)
		}
	}
	if len(data) == 0 {
		return ""
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(max(h, 2)),
		asciigraph.Width(max(w, 2)),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow),
	)
}
