package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sensitivityPlaceholder is the body of the sensitivity tab.
const sensitivityPlaceholder = "Coming soon - sensitivity analysis charts and data will appear here."

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentTab {
	case TabSummary:
		content = m.summaryModel.View()
	case TabAssumptions:
		content = m.assumptionsModel.View()
	case TabWaterfall:
		content = m.waterfallModel.View()
	case TabSensitivity:
		content = BorderStyle.Render(sensitivityPlaceholder)
	default:
		content = "Unknown view"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, filter bar and status bar
func (m Model) renderApp(content string) string {
	sections := []string{m.renderTitleBar()}
	if bar := m.renderFilterBar(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, content)
	if m.notice != "" {
		sections = append(sections, NoticeStyle.Render(m.notice))
	}
	sections = append(sections, m.renderStatusBar())

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTitleBar renders the application title and the tab row
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("RxDash - Brand Forecast Dashboard")

	tabs := make([]string, len(Tabs))
	for i, t := range Tabs {
		if t == m.currentTab {
			tabs[i] = ActiveTabStyle.Render(t.String())
		} else {
			tabs[i] = TabStyle.Render(t.String())
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

// renderFilterBar renders the filter fields of the current tab with the
// focused one highlighted
func (m Model) renderFilterBar() string {
	v, ok := m.currentTab.Variant()
	if !ok {
		return ""
	}
	s := m.states[m.currentTab]

	fields := FieldsFor(v)
	items := make([]string, len(fields))
	for i, f := range fields {
		text := fmt.Sprintf("%s: %s", f.Label, FieldDisplay(s, f.Key))
		if i == m.focus[m.currentTab] {
			items[i] = SelectedItemStyle.Render("▸ " + text)
		} else {
			items[i] = MetricLabelStyle.Render("  " + text)
		}
	}

	return BorderStyle.Width(max(20, m.width-4)).Render(wrapItems(items, m.width-8))
}

// wrapItems joins items with separators, breaking lines at width.
func wrapItems(items []string, width int) string {
	var lines []string
	line := ""
	for _, it := range items {
		if line != "" && lipgloss.Width(line)+lipgloss.Width(it)+2 > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += "  "
		}
		line += it
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the key help
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(m.width).Render(m.help.View(m.keys))
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := BorderStyle.Render(fmt.Sprintf("⠋ %s", message))
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(), content)
}

// renderError renders an error message
func (m Model) renderError() string {
	hint := "Press any key to continue..."
	if m.engine == nil {
		hint = "Press q to quit."
	}
	content := ErrorStyle.Render(fmt.Sprintf("Error: %s\n\n%s", m.err.Error(), hint))
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(), content)
}

// Helper function
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
