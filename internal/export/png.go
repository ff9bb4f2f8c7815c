package export

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for k := range xs {
		if math.IsNaN(ys[k]) || math.IsInf(ys[k], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[k], Y: ys[k]})
	}
	return pts
}

// PNG writes the I-V loop as a raster image.
func PNG(w io.Writer, doc Document) error {
	res := doc.Result

	p := plot.New()
	p.Title.Text = "I-V " + doc.Title
	if doc.Title == "" {
		p.Title.Text = "I-V " + doc.Model
	}
	p.X.Label.Text = "voltage (V)"
	p.Y.Label.Text = "current (A)"
	p.Add(plotter.NewGrid())

	pts := xys(res.Voltage, res.Current)
	if len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = color.RGBA{R: 0x19, G: 0x87, B: 0xc7, A: 0xff}
		p.Add(line)
	}

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
