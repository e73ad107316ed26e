package scenes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rxdash/internal/pipeline"
	"github.com/rgehrsitz/rxdash/internal/tui/components"
	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
)

// AssumptionsModel renders one card of assumption lines per scenario.
type AssumptionsModel struct {
	view  pipeline.AssumptionsView
	width int
}

// NewAssumptionsModel creates a new assumptions scene model
func NewAssumptionsModel() *AssumptionsModel {
	return &AssumptionsModel{width: 80}
}

// SetView replaces the rendered view model.
func (m *AssumptionsModel) SetView(v pipeline.AssumptionsView) {
	m.view = v
}

// SetSize updates the scene dimensions
func (m *AssumptionsModel) SetSize(width, height int) {
	m.width = width
}

// View renders the scene
func (m *AssumptionsModel) View() string {
	v := m.view

	cards := make([]*components.ScenarioCard, 0, len(v.Groups))
	for _, g := range v.Groups {
		header := append([]string{"Metric", "LoT", "Regime"}, v.Labels...)
		table := components.NewDataTable(header...).WithLeadColumns(3)
		var actuals []string
		for _, l := range g.Lines {
			table.AddRow(append([]string{l.MetricLabel, l.LoT, l.Regime}, l.Cells...)...)
			if l.ActualsTill != "" && !contains(actuals, l.ActualsTill) {
				actuals = append(actuals, l.ActualsTill)
			}
		}
		card := components.NewScenarioCard(g.Label).
			WithSubtitle(strings.Join(actuals, ", ")).
			WithBody(table.Render())
		cards = append(cards, card)
	}

	parts := []string{tuistyles.TitleStyle.Render(v.Title), "", components.ScenarioList(cards)}
	if v.UsedFallback {
		parts = append(parts, tuistyles.SubtitleStyle.Render(fallbackNotice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
