package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
)

// ScenarioCard frames the content of one scenario, such as its assumption
// lines, under the scenario name.
type ScenarioCard struct {
	Name       string
	Subtitle   string
	Body       string
	Highlights []string
	IsSelected bool
	Width      int
}

// NewScenarioCard creates a new scenario card
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{Name: name}
}

// WithSubtitle sets the muted line under the name.
func (s *ScenarioCard) WithSubtitle(subtitle string) *ScenarioCard {
	s.Subtitle = subtitle
	return s
}

// WithBody sets the pre-rendered card content.
func (s *ScenarioCard) WithBody(body string) *ScenarioCard {
	s.Body = body
	return s
}

// AddHighlight adds a bullet under the body.
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width; 0 sizes it to the content.
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled scenario card
func (s *ScenarioCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(s.Name))
	content.WriteString("\n")

	if s.Subtitle != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(s.Subtitle))
		content.WriteString("\n")
	}
	if s.Body != "" {
		content.WriteString(s.Body)
		content.WriteString("\n")
	}
	if len(s.Highlights) > 0 {
		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		for _, h := range s.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if s.Width > 0 {
		cardStyle = cardStyle.Width(s.Width)
	}

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// ScenarioList stacks cards vertically.
func ScenarioList(cards []*ScenarioCard) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios selected")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
