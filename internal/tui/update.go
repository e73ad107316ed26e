package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/pipeline"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.summaryModel.SetSize(msg.Width, msg.Height)
		m.assumptionsModel.SetSize(msg.Width, msg.Height)
		m.waterfallModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		return m.applyConfig(msg)

	case ExportCompleteMsg:
		m.exporting = false
		if msg.Err != nil {
			m.notice = fmt.Sprintf("Export failed: %v", msg.Err)
		} else {
			m.notice = fmt.Sprintf("Exported %d views to %s", msg.Views, msg.Path)
		}
		return m, nil
	}

	return m, nil
}

// applyConfig builds the engine and the configured initial states.
func (m Model) applyConfig(msg ConfigLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.config = msg.Config

	m.engine = pipeline.NewEngine(msg.Catalog, msg.Config.Policy())
	m.engine.SetCacheSize(msg.Config.CacheSize)

	for _, t := range Tabs {
		v, ok := t.Variant()
		if !ok {
			continue
		}
		s, err := msg.Config.InitialState(v)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.states[t] = s
	}
	m.currentTab = tabFor(msg.Config.Variant)
	m.refresh()
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key dismisses an error once the dashboard is usable.
	if m.err != nil {
		if m.engine != nil {
			m.err = nil
		}
		return m, nil
	}
	if m.engine == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextTab):
		m.currentTab = Tabs[(int(m.currentTab)+1)%len(Tabs)]

	case key.Matches(msg, m.keys.PrevTab):
		m.currentTab = Tabs[(int(m.currentTab)+len(Tabs)-1)%len(Tabs)]

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)

	case key.Matches(msg, m.keys.Left):
		return m.cycle(-1)

	case key.Matches(msg, m.keys.Right):
		return m.cycle(1)

	case key.Matches(msg, m.keys.ToggleJun):
		return m.dispatch(filter.ToggleScenario{ID: domain.ScenarioJun25})

	case key.Matches(msg, m.keys.ToggleNov):
		return m.dispatch(filter.ToggleScenario{ID: domain.ScenarioNov25})

	case key.Matches(msg, m.keys.Reset):
		return m.dispatch(filter.Reset{})

	case key.Matches(msg, m.keys.Drilldown):
		if m.currentTab == TabWaterfall {
			m.waterfallModel.Drilldown = !m.waterfallModel.Drilldown
		}

	case key.Matches(msg, m.keys.Export):
		if m.exporting {
			return m, nil
		}
		m.exporting = true
		m.notice = "Exporting to " + m.exportPath + "..."
		return m, exportCmd(m.exportPath, m.exportDocuments())
	}

	return m, nil
}

// moveFocus moves the filter bar focus of the current tab, wrapping.
func (m Model) moveFocus(delta int) {
	v, ok := m.currentTab.Variant()
	if !ok {
		return
	}
	n := len(FieldsFor(v))
	m.focus[m.currentTab] = ((m.focus[m.currentTab]+delta)%n + n) % n
}

// cycle steps the focused field of the current tab.
func (m Model) cycle(delta int) (tea.Model, tea.Cmd) {
	v, ok := m.currentTab.Variant()
	if !ok {
		return m, nil
	}
	field := FieldsFor(v)[m.focus[m.currentTab]]
	s, err := CycleField(m.states[m.currentTab], field.Key, delta)
	return m.commit(s, err)
}

// dispatch applies an action to the current tab's state.
func (m Model) dispatch(a filter.Action) (tea.Model, tea.Cmd) {
	if _, ok := m.currentTab.Variant(); !ok {
		return m, nil
	}
	s, err := filter.Reduce(m.states[m.currentTab], a)
	return m.commit(s, err)
}

// commit stores a reduced state; a rejected action only sets a notice.
func (m Model) commit(s filter.State, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	m.states[m.currentTab] = s
	m.refresh()
	return m, nil
}
