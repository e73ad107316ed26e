package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
)

// DataSeries is one scenario line. NaN points are gaps.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws scenario lines over the horizon labels.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	ShowLegend bool
	YMin, YMax float64
	hasDomain  bool
	FormatY    func(float64) string
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Series:     []*DataSeries{},
		Labels:     []string{},
		Width:      60,
		Height:     12,
		ShowLegend: true,
		FormatY:    formatChartValue,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithDomain fixes the Y axis instead of deriving it from the points.
func (c *ASCIIChart) WithDomain(min, max float64) *ASCIIChart {
	if max > min {
		c.YMin, c.YMax, c.hasDomain = min, max, true
	}
	return c
}

// WithFormatter sets the Y axis label format.
func (c *ASCIIChart) WithFormatter(f func(float64) string) *ASCIIChart {
	if f != nil {
		c.FormatY = f
	}
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasPoints() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.bounds()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

func (c *ASCIIChart) hasPoints() bool {
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !math.IsNaN(p) {
				return true
			}
		}
	}
	return false
}

// bounds returns the fixed domain, or the point range padded by 10%.
func (c *ASCIIChart) bounds() (float64, float64) {
	if c.hasDomain {
		return c.YMin, c.YMax
	}

	globalMin := math.Inf(1)
	globalMax := math.Inf(-1)
	for _, series := range c.Series {
		for _, point := range series.Points {
			if math.IsNaN(point) {
				continue
			}
			globalMin = math.Min(globalMin, point)
			globalMax = math.Max(globalMax, point)
		}
	}

	padding := (globalMax - globalMin) * 0.1
	if padding == 0 {
		padding = 1
	}
	return globalMin - padding, globalMax + padding
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	yAxisWidth := 10
	chartWidth := c.Width - yAxisWidth - 3
	if chartWidth < 2 {
		chartWidth = 2
	}
	height := c.Height
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	row := func(v float64) int {
		return height - 1 - int(math.Round((v-minVal)/(maxVal-minVal)*float64(height-1)))
	}
	col := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(float64(i) / float64(n-1) * float64(chartWidth-1))
	}

	for seriesIdx, series := range c.Series {
		pointChar := c.getSeriesChar(seriesIdx)
		prev := -1
		for i, point := range series.Points {
			if math.IsNaN(point) {
				prev = -1
				continue
			}
			x, y := col(i, len(series.Points)), row(point)
			if prev >= 0 {
				c.drawLine(grid, col(prev, len(series.Points)), row(series.Points[prev]), x, y, '·')
			}
			if y >= 0 && y < height {
				grid[y][x] = pointChar
			}
			prev = i
		}
	}

	var output strings.Builder
	yAxisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	for i, r := range grid {
		yValue := maxVal - (float64(i)/float64(height-1))*(maxVal-minVal)
		label := ""
		if i == 0 || i == height-1 || i == (height-1)/2 {
			label = c.FormatY(yValue)
		}
		output.WriteString(yAxisStyle.Render(label))
		output.WriteString(" │ ")
		output.WriteString(string(r))
		output.WriteString("\n")
	}

	output.WriteString(strings.Repeat(" ", yAxisWidth))
	output.WriteString(" └")
	output.WriteString(strings.Repeat("─", chartWidth+1))

	if len(c.Labels) > 0 {
		output.WriteString("\n")
		output.WriteString(c.renderXAxisLabels(yAxisWidth, chartWidth))
	}

	return output.String()
}

// getSeriesChar returns the character to use for a series
func (c *ASCIIChart) getSeriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points using Bresenham's algorithm without
// overwriting plotted points.
func (c *ASCIIChart) drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	x, y := x0, y0
	for {
		if x >= 0 && x < len(grid[0]) && y >= 0 && y < len(grid) && grid[y][x] == ' ' {
			grid[y][x] = char
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels places up to six labels under their columns.
func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, chartWidth int) string {
	maxLabels := 6
	step := (len(c.Labels) + maxLabels - 1) / maxLabels
	if step == 0 {
		step = 1
	}

	line := []rune(strings.Repeat(" ", chartWidth+12))
	next := 0
	for i := 0; i < len(c.Labels); i += step {
		x := 0
		if len(c.Labels) > 1 {
			x = int(float64(i) / float64(len(c.Labels)-1) * float64(chartWidth-1))
		}
		if x < next {
			continue
		}
		for j, r := range c.Labels[i] {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
		next = x + len([]rune(c.Labels[i])) + 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + labelStyle.Render(strings.TrimRight(string(line), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	var items []string

	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(c.getSeriesChar(i)))
		name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(series.Name)
		items = append(items, fmt.Sprintf("%s %s", symbol, name))
	}

	legendStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return legendStyle.Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue is the default Y axis format.
func formatChartValue(value float64) string {
	if math.Abs(value) >= 1000 {
		return fmt.Sprintf("%.0fK", value/1000)
	}
	return fmt.Sprintf("%.0f", value)
}

// abs returns absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
