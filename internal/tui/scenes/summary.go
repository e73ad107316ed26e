// Package scenes renders the dashboard tabs from pipeline view models.
package scenes

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rxdash/internal/pipeline"
	"github.com/rgehrsitz/rxdash/internal/tui/components"
	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

// fallbackNotice is shown when a view was built from default data.
const fallbackNotice = "No data for this selection; showing the default series."

// SummaryModel renders the summary tab: a line chart per scenario and the
// value table below it.
type SummaryModel struct {
	view   pipeline.ViewModel
	width  int
	height int
}

// NewSummaryModel creates a new summary scene model
func NewSummaryModel() *SummaryModel {
	return &SummaryModel{width: 80, height: 24}
}

// SetView replaces the rendered view model.
func (m *SummaryModel) SetView(v pipeline.ViewModel) {
	m.view = v
}

// SetSize updates the scene dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the scene
func (m *SummaryModel) View() string {
	v := m.view
	if v.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			tuistyles.TitleStyle.Render(v.Title),
			"",
			tuistyles.InfoStyle.Render("No data for the current selection"),
		)
	}

	metric := v.Metric
	chart := components.NewASCIIChart(v.Title).
		WithLabels(v.Labels).
		WithSize(max(40, m.width-4), chartHeight(m.height)).
		WithDomain(v.YDomain.Min.InexactFloat64(), v.YDomain.Max.InexactFloat64()).
		WithFormatter(func(f float64) string {
			return unit.Format(metric, decimal.NewFromFloat(f))
		})

	colors := tuistyles.ChartColors()
	for i, r := range v.Rows {
		chart.AddSeries(r.Label, Points(r.Values), colors[i%len(colors)])
	}

	header := append([]string{"Scenario"}, v.Labels...)
	table := components.NewDataTable(header...)
	for _, r := range v.Rows {
		table.AddRow(append([]string{r.Label}, r.Cells...)...)
	}

	parts := []string{chart.Render(), "", table.Render()}
	if v.UsedFallback {
		parts = append(parts, tuistyles.SubtitleStyle.Render(fallbackNotice))
	}
	return strings.Join(parts, "\n")
}

// Points converts view values to chart points; "no data" becomes NaN.
func Points(values []decimal.NullDecimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if !v.Valid {
			out[i] = math.NaN()
			continue
		}
		out[i] = v.Decimal.InexactFloat64()
	}
	return out
}

// chartHeight leaves room for the table under the chart.
func chartHeight(height int) int {
	h := height / 3
	if h < 6 {
		return 6
	}
	if h > 14 {
		return 14
	}
	return h
}
