package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
)

// WaterfallBar is one laid-out bridge step.
type WaterfallBar struct {
	Name   string
	Kind   string // base, increase or decrease
	Start  float64
	Height float64
	Label  string
}

// WaterfallChart draws bridge steps as horizontal floating bars.
type WaterfallChart struct {
	Title      string
	Bars       []WaterfallBar
	Width      int
	Min, Max   float64
	NameWidth  int
	LabelWidth int
}

// NewWaterfallChart creates a chart over the [min, max] value domain.
func NewWaterfallChart(title string, min, max float64) *WaterfallChart {
	return &WaterfallChart{
		Title:      title,
		Width:      60,
		Min:        min,
		Max:        max,
		NameWidth:  22,
		LabelWidth: 10,
	}
}

// AddBar appends a step.
func (w *WaterfallChart) AddBar(b WaterfallBar) *WaterfallChart {
	w.Bars = append(w.Bars, b)
	return w
}

// WithWidth sets the total chart width.
func (w *WaterfallChart) WithWidth(width int) *WaterfallChart {
	w.Width = width
	return w
}

// column maps a value onto the bar track, clamped to it.
func (w *WaterfallChart) column(v float64, track int) int {
	if w.Max <= w.Min {
		return 0
	}
	c := int(math.Round((v - w.Min) / (w.Max - w.Min) * float64(track)))
	if c < 0 {
		return 0
	}
	if c > track {
		return track
	}
	return c
}

func barStyle(kind string) lipgloss.Style {
	switch kind {
	case "increase":
		return lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	case "decrease":
		return lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorInfo)
}

// Render returns the styled chart
func (w *WaterfallChart) Render() string {
	if len(w.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	track := w.Width - w.NameWidth - w.LabelWidth - 4
	if track < 10 {
		track = 10
	}

	var content strings.Builder
	if w.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(w.Title))
		content.WriteString("\n\n")
	}

	nameStyle := lipgloss.NewStyle().Width(w.NameWidth).Foreground(tuistyles.ColorForeground)
	labelStyle := lipgloss.NewStyle().Width(w.LabelWidth).Align(lipgloss.Right).Bold(true)
	for _, b := range w.Bars {
		from := w.column(b.Start, track)
		to := w.column(b.Start+b.Height, track)
		filled := to - from
		if filled < 1 && b.Height > 0 {
			filled = 1
		}
		if from+filled > track {
			from = track - filled
		}

		content.WriteString(nameStyle.Render(truncate(b.Name, w.NameWidth-1)))
		content.WriteString("│")
		content.WriteString(strings.Repeat(" ", from))
		content.WriteString(barStyle(b.Kind).Render(strings.Repeat("█", filled)))
		content.WriteString(strings.Repeat(" ", track-from-filled))
		content.WriteString(labelStyle.Render(b.Label))
		content.WriteString("\n")
	}

	axis := tuistyles.MetricLabelStyle
	content.WriteString(strings.Repeat(" ", w.NameWidth))
	content.WriteString("└" + strings.Repeat("─", track))
	content.WriteString("\n")
	content.WriteString(strings.Repeat(" ", w.NameWidth+1))
	lo, hi := formatChartValue(w.Min), formatChartValue(w.Max)
	gap := track - len(lo) - len(hi)
	if gap < 1 {
		gap = 1
	}
	content.WriteString(axis.Render(lo + strings.Repeat(" ", gap) + hi))

	return content.String()
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
