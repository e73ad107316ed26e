package components

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
)

func TestASCIIChart(t *testing.T) {
	chart := NewASCIIChart("Net Revenue").
		WithLabels([]string{"Jan-25", "Feb-25", "Mar-25"}).
		WithSize(40, 6).
		WithDomain(0, 40).
		AddSeries("Jun'25", []float64{26, 24, 27}, tuistyles.ColorChartLine1).
		AddSeries("Nov'25", []float64{26, math.NaN(), 27}, tuistyles.ColorChartLine2)

	out := chart.Render()
	assert.Contains(t, out, "Net Revenue")
	assert.Contains(t, out, "Jan-25")
	assert.Contains(t, out, "40")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "●")
}

func TestASCIIChart_NoData(t *testing.T) {
	empty := NewASCIIChart("t").AddSeries("a", []float64{math.NaN()}, tuistyles.ColorChartLine1)
	assert.Contains(t, empty.Render(), "No data to display")
	assert.Contains(t, NewASCIIChart("t").Render(), "No data to display")
}

func TestASCIIChart_DerivedDomain(t *testing.T) {
	chart := NewASCIIChart("").WithSize(30, 4).AddSeries("flat", []float64{5, 5}, tuistyles.ColorChartLine1)
	minVal, maxVal := chart.bounds()
	assert.Equal(t, 4.0, minVal)
	assert.Equal(t, 6.0, maxVal)

	// An inverted domain is ignored.
	chart.WithDomain(10, 0)
	assert.False(t, chart.hasDomain)
}

func TestWaterfallChart(t *testing.T) {
	chart := NewWaterfallChart("Bridge", 0, 290).WithWidth(80).
		AddBar(WaterfallBar{Name: "Jun'25", Kind: "base", Start: 0, Height: 224.4, Label: "$224.4"}).
		AddBar(WaterfallBar{Name: "Inventory & Pricing Adjustments", Kind: "decrease", Start: 257.9, Height: 5.4, Label: "-$5.4"})

	out := chart.Render()
	lines := strings.Split(out, "\n")
	assert.Contains(t, out, "$224.4")
	assert.Contains(t, out, "-$5.4")
	assert.Contains(t, out, "Inventory & Pricing")
	assert.NotContains(t, out, "Adjustments")
	assert.Contains(t, lines[len(lines)-1], "290")

	assert.Equal(t, 0, chart.column(-10, 50))
	assert.Equal(t, 50, chart.column(500, 50))
	assert.Contains(t, NewWaterfallChart("", 0, 10).Render(), "No data to display")
}

func TestDataTable(t *testing.T) {
	table := NewDataTable("Scenario", "Jan-25").AddRow("Jun'25", "$26").AddRow("Nov'25", "$27").WithHighlight(0)
	out := table.Render()
	assert.Contains(t, out, "Scenario")
	assert.Contains(t, out, "$27")

	assert.Contains(t, NewDataTable("Scenario").Render(), "No data for the current selection")
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Nov'25", "$257.9").WithTrend(true, "+$33.5").WithNote("vs Jun'25")
	out := card.Render()
	assert.Contains(t, out, "$257.9")
	assert.Contains(t, out, "▲ +$33.5")
	assert.Contains(t, out, "vs Jun'25")

	grid := MetricGrid([]*MetricCard{card, NewMetricCard("Change", "14.9%")}, 2)
	assert.Contains(t, grid, "14.9%")
	assert.Empty(t, MetricGrid(nil, 2))
}

func TestScenarioCard(t *testing.T) {
	card := NewScenarioCard("Jun'25").WithSubtitle("Actuals till Sep'25").WithBody("body").AddHighlight("1L only").SetSelected(true)
	out := card.Render()
	assert.Contains(t, out, "Jun'25")
	assert.Contains(t, out, "Actuals till Sep'25")
	assert.Contains(t, out, "• 1L only")

	assert.Contains(t, ScenarioList(nil), "No scenarios selected")
}
