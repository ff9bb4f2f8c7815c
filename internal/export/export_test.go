package export

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/memsim/internal/integrators"
	"github.com/san-kum/memsim/internal/sim"
)

func loop(n int) *sim.Result {
	res := &sim.Result{
		Time:    make([]float64, n),
		Voltage: make([]float64, n),
		Current: make([]float64, n),
		State:   make([]float64, n),
		Stats:   integrators.Stats{Steps: 40, Accepted: 38, Rejected: 2, Evaluations: 242},
		Metrics: map[string]float64{"hysteresis_area": 1.5e-6},
	}
	for k := range res.Time {
		t := float64(k) / float64(n-1)
		x := 0.5 + 0.4*math.Sin(2*math.Pi*t-1)
		v := math.Sin(2 * math.Pi * t)
		res.Time[k] = t
		res.Voltage[k] = v
		res.State[k] = x
		res.Current[k] = v / (100*x + 16e3*(1-x))
	}
	return res
}

func doc(n int) Document {
	return Document{Title: "test loop", Model: "hp_labs", Preset: "hp_sine", Result: loop(n)}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"json":        FormatJSON,
		"CSV":         FormatCSV,
		"out/run.svg": FormatSVG,
		"report.html": FormatHTML,
		"loop.PNG":    FormatPNG,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("run.xlsx")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	d := doc(50)
	d.Result.State[3] = math.NaN()
	d.Result.Metrics["resistance_ratio"] = math.Inf(1)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, d))

	var out struct {
		Model   string             `json:"model"`
		Preset  string             `json:"preset"`
		Points  int                `json:"points"`
		Stats   integrators.Stats  `json:"stats"`
		Metrics map[string]float64 `json:"metrics"`
		Time    []float64          `json:"time"`
		State   []*float64         `json:"state"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "hp_labs", out.Model)
	assert.Equal(t, "hp_sine", out.Preset)
	assert.Equal(t, 50, out.Points)
	assert.Equal(t, d.Result.Stats, out.Stats)
	assert.Equal(t, d.Result.Time, out.Time)
	assert.Nil(t, out.State[3])
	require.NotNil(t, out.State[4])
	assert.Equal(t, d.Result.State[4], *out.State[4])
	assert.NotContains(t, out.Metrics, "resistance_ratio")
	assert.Contains(t, out.Metrics, "hysteresis_area")
}

func TestCSVRoundTrip(t *testing.T) {
	res := loop(101)

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, res))
	assert.True(t, strings.HasPrefix(buf.String(), "time,voltage,current,state\n"))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, res.Time, back.Time)
	assert.Equal(t, res.Voltage, back.Voltage)
	assert.Equal(t, res.Current, back.Current)
	assert.Equal(t, res.State, back.State)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("time,voltage,current,state\n0,1,2\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("time,voltage,current,state\n0,1,x,3\n"))
	assert.Error(t, err)
}

func TestSVG(t *testing.T) {
	res := loop(200)

	var iv bytes.Buffer
	require.NoError(t, SVG(&iv, res, PlotIV, 400, 300))
	assert.Contains(t, iv.String(), `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300"`)
	assert.Equal(t, 1, strings.Count(iv.String(), "<path"))

	var tm bytes.Buffer
	require.NoError(t, SVG(&tm, res, PlotTime, 400, 300))
	assert.Equal(t, 3, strings.Count(tm.String(), "<path"))

	assert.Error(t, SVG(&bytes.Buffer{}, res, "polar", 400, 300))
}

func TestSVGFlatTrace(t *testing.T) {
	res := loop(10)
	for k := range res.Current {
		res.Current[k] = 0
	}

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, res, PlotIV, 100, 100))
	assert.NotContains(t, buf.String(), "NaN")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, doc(5000)))

	out := buf.String()
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "test loop")
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, doc(300)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, f := range Formats() {
		path := filepath.Join(dir, "run."+string(f))
		require.NoError(t, WriteFile(path, doc(64)), f)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), f)
	}

	assert.Error(t, WriteFile(filepath.Join(dir, "run.txt"), doc(64)))
}
