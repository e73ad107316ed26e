package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rxdash/internal/config"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/pipeline"
	"github.com/rgehrsitz/rxdash/internal/report"
	"github.com/rgehrsitz/rxdash/internal/tui/scenes"
)

// DefaultExportPath is where the export key writes the workbook.
const DefaultExportPath = "rxdash-export.xlsx"

// Model represents the entire application state
type Model struct {
	// Navigation
	currentTab Tab
	focus      map[Tab]int // focused filter bar field per tab

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *config.Configuration
	engine     *pipeline.Engine

	// One independent filter state per tab
	states map[Tab]filter.State

	// Scene models
	summaryModel     *scenes.SummaryModel
	assumptionsModel *scenes.AssumptionsModel
	waterfallModel   *scenes.WaterfallModel

	keys keyMap
	help help.Model

	// Export
	exportPath string
	exporting  bool
	notice     string

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. An empty configPath uses the
// built-in configuration.
func NewModel(configPath string) Model {
	states := make(map[Tab]filter.State)
	for _, t := range Tabs {
		if v, ok := t.Variant(); ok {
			states[t] = filter.Default(v)
		}
	}
	return Model{
		currentTab:       TabSummary,
		focus:            make(map[Tab]int),
		configPath:       configPath,
		states:           states,
		summaryModel:     scenes.NewSummaryModel(),
		assumptionsModel: scenes.NewAssumptionsModel(),
		waterfallModel:   scenes.NewWaterfallModel(),
		keys:             defaultKeyMap(),
		help:             help.New(),
		exportPath:       DefaultExportPath,
		width:            100,
		height:           32,
		loading:          true,
		loadingMessage:   "Loading configuration...",
	}
}

// WithExportPath sets the workbook path used by the export key.
func (m Model) WithExportPath(path string) Model {
	if path != "" {
		m.exportPath = path
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// State returns the filter state of a tab.
func (m Model) State(t Tab) filter.State {
	return m.states[t]
}

// CurrentTab returns the active tab.
func (m Model) CurrentTab() Tab {
	return m.currentTab
}

// Notice returns the last status notice, such as an export result.
func (m Model) Notice() string {
	return m.notice
}

// loadConfigCmd returns a command that loads the configuration and dataset
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg := config.Default()
		if path != "" {
			loaded, err := parser.LoadFromFile(path)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			cfg = loaded
		}

		catalog, err := parser.LoadDataset(cfg.DatasetFile)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return ConfigLoadedMsg{Config: cfg, Catalog: catalog}
	}
}

// exportCmd writes the documents to a workbook off the update loop.
func exportCmd(path string, docs []report.Document) tea.Cmd {
	return func() tea.Msg {
		err := report.WriteWorkbook(path, docs...)
		return ExportCompleteMsg{Path: path, Views: len(docs), Err: err}
	}
}

// exportDocuments builds one document per view from the current states.
func (m Model) exportDocuments() []report.Document {
	waterfall := m.states[TabWaterfall]
	return []report.Document{
		report.SummaryDocument(m.engine.Summary(m.states[TabSummary])),
		report.AssumptionsDocument(m.engine.Assumptions(m.states[TabAssumptions])),
		report.BridgeDocument(report.ViewBridge, m.engine.Bridge(waterfall)),
		report.BridgeDocument(report.ViewDrilldown, m.engine.Drilldown(waterfall)),
	}
}

// refresh rebuilds the scene views from the engine.
func (m Model) refresh() {
	if m.engine == nil {
		return
	}
	m.summaryModel.SetView(m.engine.Summary(m.states[TabSummary]))
	m.assumptionsModel.SetView(m.engine.Assumptions(m.states[TabAssumptions]))
	waterfall := m.states[TabWaterfall]
	m.waterfallModel.SetViews(m.engine.Bridge(waterfall), m.engine.Drilldown(waterfall))
}
