package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/memsim/internal/metrics"
	"github.com/san-kum/memsim/internal/sim"
)

// Trace selects what the viewer plots.
type Trace int

const (
	TraceIV Trace = iota
	TraceVoltage
	TraceCurrent
	TraceState
	numTraces
)

var traceNames = [numTraces]string{"I-V loop", "voltage", "current", "state"}

func (t Trace) String() string {
	if t < 0 || t >= numTraces {
		return "unknown"
	}
	return traceNames[t]
}

const minWindow = 8

// Viewer is a bubbletea model for browsing one simulation result. It keeps
// a visible sample window [lo, hi) that can be zoomed and panned.
type Viewer struct {
	title         string
	res           *sim.Result
	trace         Trace
	lo, hi        int
	theme         int
	styles        Styles
	width, height int
}

func NewViewer(title string, res *sim.Result) Viewer {
	return Viewer{
		title:  title,
		res:    res,
		hi:     res.Len(),
		styles: DefaultStyles(),
		width:  100,
		height: 30,
	}
}

// Window returns the visible sample range.
func (v Viewer) Window() (lo, hi int) { return v.lo, v.hi }

func (v Viewer) Trace() Trace { return v.trace }

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "tab":
		v.trace = (v.trace + 1) % numTraces
	case "shift+tab":
		v.trace = (v.trace + numTraces - 1) % numTraces
	case "1", "2", "3", "4":
		v.trace = Trace(msg.String()[0] - '1')
	case "+", "=":
		v.zoom(0.5)
	case "-", "_":
		v.zoom(2)
	case "left", "h":
		v.pan(-1)
	case "right", "l":
		v.pan(1)
	case "0":
		v.lo, v.hi = 0, v.res.Len()
	case "t":
		v.theme = (v.theme + 1) % len(Themes)
		v.styles = Themes[v.theme].Styles()
	}
	return v, nil
}

// zoom scales the window width by f around its center.
func (v *Viewer) zoom(f float64) {
	n := v.res.Len()
	width := int(float64(v.hi-v.lo) * f)
	width = max(min(width, n), min(minWindow, n))
	center := (v.lo + v.hi) / 2
	v.lo = center - width/2
	v.hi = v.lo + width
	v.clampWindow()
}

// pan shifts the window by a quarter of its width.
func (v *Viewer) pan(dir int) {
	shift := max((v.hi-v.lo)/4, 1) * dir
	v.lo += shift
	v.hi += shift
	v.clampWindow()
}

func (v *Viewer) clampWindow() {
	n := v.res.Len()
	if v.lo < 0 {
		v.hi -= v.lo
		v.lo = 0
	}
	if v.hi > n {
		v.lo -= v.hi - n
		v.hi = n
	}
	v.lo = max(v.lo, 0)
}

func (v Viewer) View() string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(strings.ToUpper(v.title)) + "  " + s.Subtle.Render(v.trace.String()) + "\n")
	if v.res.Len() == 0 {
		b.WriteString(s.Warning.Render("empty result") + "\n")
		return b.String()
	}
	b.WriteString(s.Subtle.Render(fmt.Sprintf("t ∈ [%s, %s]  samples %d..%d of %d",
		FormatValue(v.res.Time[v.lo]), FormatValue(v.res.Time[v.hi-1]), v.lo, v.hi, v.res.Len())) + "\n")

	plotW := max(v.width-48, 20)
	plotH := max(v.height-10, 6)
	plot := s.Plot.Render(v.plot(plotW, plotH))
	panel := s.Panel.Render(v.panel())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, plot, panel) + "\n")
	b.WriteString(s.Hints("tab", "trace", "+/-", "zoom", "h/l", "pan", "0", "reset", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

func (v Viewer) plot(w, h int) string {
	r := v.res
	lo, hi := v.lo, v.hi
	switch v.trace {
	case TraceIV:
		return Curve(r.Voltage[lo:hi], r.Current[lo:hi], w/2, h) + "V →  I ↑"
	case TraceVoltage:
		return TimePlot(r.Voltage[lo:hi], "V(t)", w, h)
	case TraceCurrent:
		return TimePlot(r.Current[lo:hi], "I(t)", w, h)
	default:
		return TimePlot(r.State[lo:hi], "x(t)", w, h)
	}
}

func (v Viewer) panel() string {
	s := v.styles
	r := v.res
	var b strings.Builder

	b.WriteString(s.Title.Render("WINDOW") + "\n")
	b.WriteString(s.Metrics(metrics.Summarize(
		r.Time[v.lo:v.hi], r.Voltage[v.lo:v.hi], r.Current[v.lo:v.hi], r.State[v.lo:v.hi])))
	b.WriteString("\n" + s.Title.Render("SOLVER") + "\n")
	b.WriteString(Stats(s, r))
	b.WriteString("\n" + SparklineChart(r.State, 24) + "\n")
	return b.String()
}

// Stats renders the solver counters of a result.
func Stats(s Styles, r *sim.Result) string {
	st := r.Stats
	var b strings.Builder
	b.WriteString(s.MetricLabel.Render("steps") + s.MetricValue.Render(fmt.Sprint(st.Steps)) + "\n")
	b.WriteString(s.MetricLabel.Render("rejected") + s.MetricValue.Render(fmt.Sprint(st.Rejected)) + "\n")
	b.WriteString(s.MetricLabel.Render("evaluations") + s.MetricValue.Render(fmt.Sprint(st.Evaluations)) + "\n")
	if st.Truncated {
		b.WriteString(s.Warning.Render("step limit reached") + "\n")
	}
	return b.String()
}

// Summary renders a title, the metrics table and solver counters of a result.
func Summary(title string, r *sim.Result) string {
	s := DefaultStyles()
	var b strings.Builder
	b.WriteString(s.Title.Render(title) + "\n")
	b.WriteString(s.Separator(36) + "\n")
	b.WriteString(s.Metrics(r.Metrics))
	b.WriteString(s.Separator(36) + "\n")
	b.WriteString(Stats(s, r))
	return b.String()
}

// RunViewer opens the viewer full-screen and blocks until it is closed.
func RunViewer(title string, res *sim.Result) error {
	_, err := tea.NewProgram(NewViewer(title, res), tea.WithAltScreen()).Run()
	return err
}
