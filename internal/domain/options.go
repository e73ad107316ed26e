package domain

// Metric identifiers
const (
	MetricNetRevenue    = "net-revenue"
	MetricMarketShare   = "market-share"
	MetricCompliance    = "compliance"
	MetricDoseMonth     = "dose-month"
	MetricAccessPercent = "access-percent"
	MetricWACPrice      = "wac-price"
	MetricDiscount      = "discount"
	MetricTotalDemand   = "total-demand"
)

// Brand identifiers
const (
	BrandA = "brand-a"
	BrandB = "brand-b"
	BrandC = "brand-c"
)

// Line and indication identifiers. LineAll and IndicationAll share the "all" token.
const (
	LineAll   = "all"
	Line1L    = "1l"
	Line2L    = "2l"
	Line3L    = "3l"
	Line4L    = "4l"
	Line4Plus = "4l+"

	IndicationA   = "indication-a"
	IndicationB   = "indication-b"
	IndicationC   = "indication-c"
	IndicationAll = "all"
)

// ScenarioID names a planning scenario.
type ScenarioID string

const (
	ScenarioJun25 ScenarioID = "jun25"
	ScenarioNov25 ScenarioID = "nov25"
)

// Legacy single-select scenario tokens
const (
	ScenarioSelectBoth  = "jun-nov"
	ScenarioSelectJun25 = "jun25"
	ScenarioSelectNov25 = "nov25"
)

// Granularity selects the horizon catalog.
type Granularity string

const (
	GranularityMonthly  Granularity = "monthly"
	GranularityAnnually Granularity = "annually"
)

// Variant identifies the dashboard view that owns a filter state's defaults.
type Variant string

const (
	VariantSummary     Variant = "summary"
	VariantAssumptions Variant = "assumptions"
	VariantWaterfall   Variant = "waterfall"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantSummary, VariantAssumptions, VariantWaterfall:
		return true
	}
	return false
}

// Option is a selectable filter value with its display label.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Brands lists the selectable brands.
var Brands = []Option{
	{Value: BrandA, Label: "Brand A"},
	{Value: BrandB, Label: "Brand B"},
	{Value: BrandC, Label: "Brand C"},
}

// Indications lists the selectable indications.
var Indications = []Option{
	{Value: IndicationA, Label: "Indication A"},
	{Value: IndicationB, Label: "Indication B"},
	{Value: IndicationC, Label: "Indication C"},
	{Value: IndicationAll, Label: "All"},
}

// Metrics lists the metrics offered on the summary and assumptions views.
var Metrics = []Option{
	{Value: MetricNetRevenue, Label: "Net Revenue"},
	{Value: MetricMarketShare, Label: "Market Share"},
	{Value: MetricCompliance, Label: "Compliance"},
	{Value: MetricDoseMonth, Label: "Dose/Month"},
	{Value: MetricAccessPercent, Label: "Access %"},
	{Value: MetricWACPrice, Label: "WAC Price"},
	{Value: MetricDiscount, Label: "Discount"},
}

// BridgeMetrics lists the chart types offered on the waterfall view.
var BridgeMetrics = []Option{
	{Value: MetricTotalDemand, Label: "Total Demand"},
	{Value: MetricNetRevenue, Label: "Net Revenue"},
}

// Lines lists the selectable treatment lines.
var Lines = []Option{
	{Value: LineAll, Label: "All"},
	{Value: Line1L, Label: "1L"},
	{Value: Line2L, Label: "2L"},
	{Value: Line3L, Label: "3L"},
	{Value: Line4L, Label: "4L+"},
}

// Scenarios lists the planning scenarios in declared order.
var Scenarios = []Option{
	{Value: string(ScenarioJun25), Label: "Jun'25"},
	{Value: string(ScenarioNov25), Label: "Nov'25"},
}

// Granularities lists the selectable granularities.
var Granularities = []Option{
	{Value: string(GranularityMonthly), Label: "Monthly"},
	{Value: string(GranularityAnnually), Label: "Annually"},
}

// LookupLabel returns the label for value within options.
func LookupLabel(options []Option, value string) (string, bool) {
	for _, o := range options {
		if o.Value == value {
			return o.Label, true
		}
	}
	return "", false
}

// HasOption reports whether value is one of options.
func HasOption(options []Option, value string) bool {
	_, ok := LookupLabel(options, value)
	return ok
}

// ScenarioLabel returns the display label of a scenario id, or the raw id if unknown.
func ScenarioLabel(id ScenarioID) string {
	if label, ok := LookupLabel(Scenarios, string(id)); ok {
		return label
	}
	return string(id)
}
