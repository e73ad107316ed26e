package tui

import (
	"github.com/rgehrsitz/rxdash/internal/config"
	"github.com/rgehrsitz/rxdash/internal/dataset"
	"github.com/rgehrsitz/rxdash/internal/domain"
)

// Tab represents the dashboard views
type Tab int

const (
	TabSummary Tab = iota
	TabAssumptions
	TabWaterfall
	TabSensitivity
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabSummary, TabAssumptions, TabWaterfall, TabSensitivity}

func (t Tab) String() string {
	switch t {
	case TabSummary:
		return "Summary"
	case TabAssumptions:
		return "Assumptions"
	case TabWaterfall:
		return "Waterfall"
	case TabSensitivity:
		return "Sensitivity"
	default:
		return "Unknown"
	}
}

// Variant returns the filter variant a tab owns; the sensitivity tab has none.
func (t Tab) Variant() (domain.Variant, bool) {
	switch t {
	case TabSummary:
		return domain.VariantSummary, true
	case TabAssumptions:
		return domain.VariantAssumptions, true
	case TabWaterfall:
		return domain.VariantWaterfall, true
	}
	return "", false
}

// tabFor returns the tab that opens a variant.
func tabFor(v domain.Variant) Tab {
	switch v {
	case domain.VariantAssumptions:
		return TabAssumptions
	case domain.VariantWaterfall:
		return TabWaterfall
	}
	return TabSummary
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration and dataset have been loaded
type ConfigLoadedMsg struct {
	Config  *config.Configuration
	Catalog *dataset.Catalog
}

// ExportCompleteMsg signals a workbook export has finished
type ExportCompleteMsg struct {
	Path  string
	Views int
	Err   error
}
