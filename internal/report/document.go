// Package report renders dashboard view models as text tables, CSV, JSON
// and XLSX workbooks.
package report

import (
	"github.com/rgehrsitz/rxdash/internal/pipeline"
	"github.com/shopspring/decimal"
)

// View names used as document kinds and sheet names.
const (
	ViewSummary     = "summary"
	ViewAssumptions = "assumptions"
	ViewBridge      = "bridge"
	ViewDrilldown   = "drilldown"
)

// Table is a rendered grid of cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Notes  []string
}

// Document is one view ready for output: the flattened table plus the view
// model it came from, which JSON output encodes as-is.
type Document struct {
	View  string
	Table Table
	Data  any
}

// fallbackNote is appended when a view shows substitute data.
const fallbackNote = "Requested selection has no data; showing fallback data."

// SummaryDocument builds the document of a summary view.
func SummaryDocument(v pipeline.ViewModel) Document {
	t := Table{Title: v.Title, Header: append([]string{"Scenario"}, v.Labels...)}
	for _, r := range v.Rows {
		t.Rows = append(t.Rows, append([]string{r.Label}, r.Cells...))
	}
	if v.UsedFallback {
		t.Notes = append(t.Notes, fallbackNote)
	}
	return Document{View: ViewSummary, Table: t, Data: v}
}

// AssumptionsDocument builds the document of an assumptions view.
func AssumptionsDocument(v pipeline.AssumptionsView) Document {
	t := Table{
		Title:  v.Title,
		Header: append([]string{"Scenario", "Metric", "LoT", "Regime", "Actuals"}, v.Labels...),
	}
	for _, g := range v.Groups {
		for _, l := range g.Lines {
			row := []string{g.Label, l.MetricLabel, l.LoT, l.Regime, l.ActualsTill}
			t.Rows = append(t.Rows, append(row, l.Cells...))
		}
	}
	if v.UsedFallback {
		t.Notes = append(t.Notes, fallbackNote)
	}
	return Document{View: ViewAssumptions, Table: t, Data: v}
}

// BridgeDocument builds the document of a bridge or drilldown view.
func BridgeDocument(view string, v pipeline.BridgeView) Document {
	t := Table{Title: v.Title, Header: []string{"Step", "Type", "Value", "Start", "Height"}}
	for _, b := range v.Bars {
		t.Rows = append(t.Rows, []string{b.Name, string(b.Kind), b.Cell, fixed(b.Start), fixed(b.Height)})
	}
	if v.UsedFallback {
		t.Notes = append(t.Notes, fallbackNote)
	}
	return Document{View: view, Table: t, Data: v}
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(1)
}
