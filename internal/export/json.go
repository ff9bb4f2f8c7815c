package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/memsim/internal/integrators"
	"github.com/san-kum/memsim/internal/sim"
)

type jsonDocument struct {
	Model   string             `json:"model"`
	Preset  string             `json:"preset,omitempty"`
	Config  sim.Config         `json:"config"`
	Points  int                `json:"points"`
	Stats   integrators.Stats  `json:"stats"`
	Metrics map[string]float64 `json:"metrics"`
	Time    []*float64         `json:"time"`
	Voltage []*float64         `json:"voltage"`
	Current []*float64         `json:"current"`
	State   []*float64         `json:"state"`
}

// finite maps non-finite values to JSON null.
func finite(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i := range xs {
		if !math.IsNaN(xs[i]) && !math.IsInf(xs[i], 0) {
			out[i] = &xs[i]
		}
	}
	return out
}

func JSON(w io.Writer, doc Document) error {
	res := doc.Result
	metrics := make(map[string]float64, len(res.Metrics))
	for k, v := range res.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			metrics[k] = v
		}
	}

	data := jsonDocument{
		Model:   doc.Model,
		Preset:  doc.Preset,
		Config:  doc.Config,
		Points:  res.Len(),
		Stats:   res.Stats,
		Metrics: metrics,
		Time:    finite(res.Time),
		Voltage: finite(res.Voltage),
		Current: finite(res.Current),
		State:   finite(res.State),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
