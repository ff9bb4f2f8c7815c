package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color scheme for the terminal views.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "default",
		Primary: lipgloss.Color("#00cccc"),
		Accent:  lipgloss.Color("#ff88ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ffaa00"),
	},
	{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
	},
	{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	},
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	KeyHint     lipgloss.Style
	Key         lipgloss.Style
	Warning     lipgloss.Style
	Plot        lipgloss.Style
	Panel       lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Subtle:      lipgloss.NewStyle().Foreground(t.Muted),
		MetricLabel: lipgloss.NewStyle().Foreground(t.Muted).Width(18),
		MetricValue: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		KeyHint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Key:         lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Warning:     lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Plot:        lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2),
	}
}

// DefaultStyles uses the first theme.
func DefaultStyles() Styles { return Themes[0].Styles() }

// Metrics renders a name/value table in sorted name order.
func (s Styles) Metrics(m map[string]float64) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		b.WriteString(s.MetricLabel.Render(k) + s.MetricValue.Render(FormatValue(m[k])) + "\n")
	}
	return b.String()
}

// Hints renders alternating key/description pairs.
func (s Styles) Hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.Key.Render(pairs[i])+s.KeyHint.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Separator is a muted horizontal rule.
func (s Styles) Separator(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Subtle.Render(strings.Repeat("─", width))
}

// SparklineChart renders a one-row sparkline of values sampled to width.
func SparklineChart(values []float64, width int) string {
	if width < 1 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := finiteRange(values)
	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if !finite(v) {
			b.WriteRune(' ')
			continue
		}
		idx := int(scale(v, lo, hi) * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// FormatValue prints v compactly, switching to exponent form for very large
// or very small magnitudes.
func FormatValue(v float64) string {
	a := math.Abs(v)
	if v != 0 && (a < 1e-3 || a >= 1e5) {
		return fmt.Sprintf("%.4e", v)
	}
	return fmt.Sprintf("%.4f", v)
}
