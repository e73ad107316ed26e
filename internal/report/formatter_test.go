package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/rxdash/internal/aggregate"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func quarterSummary(t *testing.T) Document {
	t.Helper()
	s, err := filter.Reduce(filter.Default(domain.VariantSummary), filter.Set{Key: filter.KeyHorizonEnd, Value: "mar-25"})
	require.NoError(t, err)
	return SummaryDocument(pipeline.NewEngine(nil, aggregate.PolicyMean).Summary(s))
}

func TestSummaryDocument(t *testing.T) {
	doc := quarterSummary(t)

	assert.Equal(t, ViewSummary, doc.View)
	assert.Equal(t, []string{"Scenario", "Jan-25", "Feb-25", "Mar-25"}, doc.Table.Header)
	require.Len(t, doc.Table.Rows, 2)
	assert.Equal(t, []string{"Jun'25", "$26", "$24", "$27"}, doc.Table.Rows[0])
	assert.Empty(t, doc.Table.Notes)
}

func TestAssumptionsAndBridgeDocuments(t *testing.T) {
	engine := pipeline.NewEngine(nil, aggregate.PolicyMean)

	a := AssumptionsDocument(engine.Assumptions(filter.Default(domain.VariantAssumptions)))
	assert.Equal(t, "Actuals", a.Table.Header[4])
	require.Len(t, a.Table.Rows, 10)
	assert.Equal(t, []string{"Jun'25", "Market Share", "1L", "Mono", "Actuals till Sep'25", "2%"}, a.Table.Rows[0][:6])

	b := BridgeDocument(ViewBridge, engine.Bridge(filter.Default(domain.VariantWaterfall)))
	require.Len(t, b.Table.Rows, 4)
	assert.Equal(t, []string{"Inventory & Pricing", "decrease", "-$5.4", "257.9", "5.4"}, b.Table.Rows[2])

	s := filter.Default(domain.VariantWaterfall)
	s.Brand = "brand-q"
	fb := BridgeDocument(ViewDrilldown, engine.Drilldown(s))
	assert.Equal(t, []string{fallbackNote}, fb.Table.Notes)
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormats() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "table", GetFormatterByName("console").Name())
	assert.Equal(t, "xlsx", GetFormatterByName(" Excel ").Name())
	assert.Nil(t, GetFormatterByName("pdf"), "Should return nil formatter for non-existent name")
	assert.Contains(t, AvailableFormatAliases(), "text")
}

func TestTableFormatter(t *testing.T) {
	out, err := TableFormatter{}.Format(quarterSummary(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Equal(t, "Net Revenue ($) - Brand A (Jan-25 - Mar-25)", lines[0])
	assert.Equal(t, "Scenario  Jan-25  Feb-25  Mar-25", lines[2])
	assert.Equal(t, "Jun'25       $26     $24     $27", lines[4])

	empty, err := TableFormatter{}.Format(Document{Table: Table{Title: "t", Header: []string{"Scenario"}}})
	require.NoError(t, err)
	assert.Contains(t, string(empty), "(no data)")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(quarterSummary(t))
	require.NoError(t, err)
	assert.Equal(t, "Scenario,Jan-25,Feb-25,Mar-25\nJun'25,$26,$24,$27\nNov'25,$26,$24,$27\n", string(out))
}

func TestJSONFormatter(t *testing.T) {
	out, err := GetFormatterByName("json").Format(quarterSummary(t))
	require.NoError(t, err)

	var decoded struct {
		View string `json:"view"`
		Data struct {
			Labels []string `json:"labels"`
			Rows   []struct {
				Scenario string   `json:"scenario"`
				Values   []string `json:"values"`
			} `json:"rows"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, ViewSummary, decoded.View)
	assert.Equal(t, []string{"Jan-25", "Feb-25", "Mar-25"}, decoded.Data.Labels)
	assert.Equal(t, []string{"26", "24", "27"}, decoded.Data.Rows[0].Values)

	compact, err := GetFormatterByName("json-compact").Format(quarterSummary(t))
	require.NoError(t, err)
	assert.NotContains(t, strings.TrimSpace(string(compact)), "\n")
}

func TestXLSXFormatter(t *testing.T) {
	out, err := XLSXFormatter{}.Format(quarterSummary(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ViewSummary}, f.GetSheetList())
	title, err := f.GetCellValue(ViewSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Net Revenue ($) - Brand A (Jan-25 - Mar-25)", title)

	cell, err := f.GetCellValue(ViewSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "$26", cell)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.xlsx")
	doc := quarterSummary(t)
	require.NoError(t, WriteWorkbook(path, doc, doc))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"summary", "summary-2"}, f.GetSheetList())

	assert.Error(t, WriteWorkbook(path))
}
