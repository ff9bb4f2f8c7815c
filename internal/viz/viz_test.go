package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/memsim/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got := c.Grid[0][0]; got != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", got)
	}
	if got := c.Grid[0][1]; got != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", got)
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet disagrees with Set")
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("Clear left a pixel set")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	for _, p := range [][2]int{{0, 0}, {10, 10}, {19, 19}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("pixel %v not set", p)
		}
	}
}

func TestPolylineCorners(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Polyline([]float64{-1, 1}, []float64{-2, 2})

	if !c.IsSet(0, c.PixelHeight()-1) {
		t.Error("minimum should map to the bottom-left pixel")
	}
	if !c.IsSet(c.PixelWidth()-1, 0) {
		t.Error("maximum should map to the top-right pixel")
	}
}

func TestPolylineSkipsNonFinite(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Polyline([]float64{0, math.NaN(), 1}, []float64{0, 1, math.Inf(1)})
	if !c.IsSet(0, c.PixelHeight()/2) && !c.IsSet(0, c.PixelHeight()-1) {
		t.Error("finite point was not drawn")
	}
}

func TestCurveDegenerate(t *testing.T) {
	out := Curve([]float64{1, 1, 1}, []float64{2, 2, 2}, 4, 2)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("want 2 rows, got %q", out)
	}
	if Curve(nil, nil, 4, 2) == "" {
		t.Error("empty curve should still render a blank canvas")
	}
}

func TestTimePlot(t *testing.T) {
	if TimePlot([]float64{math.NaN()}, "x", 20, 4) != "" {
		t.Error("all-NaN series should render empty")
	}
	out := TimePlot([]float64{0, 1, 0, -1, 0}, "V(t)", 20, 4)
	if !strings.Contains(out, "V(t)") {
		t.Errorf("caption missing:\n%s", out)
	}
}

func TestSparkline(t *testing.T) {
	if got := SparklineChart(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	got := []rune(SparklineChart([]float64{0, 1, 2, 3}, 4))
	if len(got) != 4 || got[0] != '▁' || got[3] != '█' {
		t.Errorf("sparkline = %q", string(got))
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0000"},
		{1.5, "1.5000"},
		{2e-6, "2.0000e-06"},
		{1e6, "1.0000e+06"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func testResult(n int) *sim.Result {
	r := &sim.Result{
		Time:    make([]float64, n),
		Voltage: make([]float64, n),
		Current: make([]float64, n),
		State:   make([]float64, n),
		Metrics: map[string]float64{"peak_current": 1},
	}
	for k := range n {
		tk := float64(k) / float64(n-1)
		r.Time[k] = tk
		r.Voltage[k] = math.Sin(2 * math.Pi * tk)
		r.State[k] = 0.5 + 0.1*tk
		r.Current[k] = r.Voltage[k] / (1 + r.State[k])
	}
	return r
}

func press(v Viewer, key string) Viewer {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := v.Update(msg)
	return m.(Viewer)
}

func TestViewerTraces(t *testing.T) {
	v := NewViewer("hp_sine", testResult(100))
	if v.Trace() != TraceIV {
		t.Fatalf("initial trace = %v", v.Trace())
	}
	v = press(v, "tab")
	if v.Trace() != TraceVoltage {
		t.Errorf("after tab = %v", v.Trace())
	}
	v = press(v, "4")
	if v.Trace() != TraceState {
		t.Errorf("after 4 = %v", v.Trace())
	}
	v = press(v, "tab")
	if v.Trace() != TraceIV {
		t.Errorf("tab should wrap, got %v", v.Trace())
	}
}

func TestViewerZoomPan(t *testing.T) {
	v := NewViewer("run", testResult(100))

	v = press(v, "+")
	lo, hi := v.Window()
	if hi-lo != 50 || lo != 25 {
		t.Fatalf("zoomed window = [%d,%d)", lo, hi)
	}

	v = press(v, "right")
	lo, hi = v.Window()
	if lo != 37 || hi != 87 {
		t.Errorf("panned window = [%d,%d)", lo, hi)
	}

	for range 10 {
		v = press(v, "right")
	}
	lo, hi = v.Window()
	if hi != 100 || hi-lo != 50 {
		t.Errorf("pan past end = [%d,%d)", lo, hi)
	}

	for range 10 {
		v = press(v, "+")
	}
	lo, hi = v.Window()
	if hi-lo != minWindow {
		t.Errorf("zoom floor = %d, want %d", hi-lo, minWindow)
	}

	v = press(v, "0")
	lo, hi = v.Window()
	if lo != 0 || hi != 100 {
		t.Errorf("reset window = [%d,%d)", lo, hi)
	}
}

func TestViewerQuit(t *testing.T) {
	v := NewViewer("run", testResult(10))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewerView(t *testing.T) {
	v := NewViewer("hp_sine", testResult(200))
	for _, key := range []string{"1", "2", "3", "4"} {
		v = press(v, key)
		out := v.View()
		if !strings.Contains(out, "HP_SINE") {
			t.Errorf("trace %s: title missing", key)
		}
		if !strings.Contains(out, "peak_current") {
			t.Errorf("trace %s: metrics missing", key)
		}
	}

	empty := NewViewer("none", &sim.Result{})
	if !strings.Contains(empty.View(), "empty result") {
		t.Error("empty result not reported")
	}
}

func TestSummary(t *testing.T) {
	r := testResult(10)
	r.Stats.Truncated = true
	out := Summary("hp_sine", r)
	for _, want := range []string{"hp_sine", "peak_current", "steps", "step limit reached"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}
