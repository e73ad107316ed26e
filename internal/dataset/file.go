package dataset

import (
	"fmt"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/shopspring/decimal"
)

// File is the YAML layout of a dataset override. Entries replace the
// matching built-in tables; anything not mentioned keeps its default.
type File struct {
	Series      []SeriesEntry     `yaml:"series" json:"series"`
	Assumptions []AssumptionEntry `yaml:"assumptions" json:"assumptions"`
	Bridges     []BridgeEntry     `yaml:"bridges" json:"bridges"`
	Drilldowns  []BridgeEntry     `yaml:"drilldowns" json:"drilldowns"`
}

// SeriesEntry holds the monthly values of one (brand, metric) per scenario,
// positionally aligned with the monthly horizon catalog.
type SeriesEntry struct {
	Brand  string                       `yaml:"brand" json:"brand"`
	Metric string                       `yaml:"metric" json:"metric"`
	Values map[string][]decimal.Decimal `yaml:"values" json:"values"`
}

// AssumptionEntry replaces the assumption rows of a brand.
type AssumptionEntry struct {
	Brand string                 `yaml:"brand" json:"brand"`
	Rows  []domain.AssumptionRow `yaml:"rows" json:"rows"`
}

// BridgeEntry holds the steps of one bridge. Metric is ignored for drilldowns.
type BridgeEntry struct {
	Brand  string              `yaml:"brand" json:"brand"`
	Metric string              `yaml:"metric,omitempty" json:"metric,omitempty"`
	Pair   string              `yaml:"pair" json:"pair"`
	Steps  []domain.BridgeStep `yaml:"steps" json:"steps"`
}

// ApplyTo merges the file into c and validates the result.
func (f *File) ApplyTo(c *Catalog) error {
	for i, s := range f.Series {
		if s.Brand == "" || s.Metric == "" {
			return fmt.Errorf("series entry %d: brand and metric are required", i)
		}
		values := make(map[domain.ScenarioID][]decimal.Decimal, len(s.Values))
		for id, v := range s.Values {
			values[domain.ScenarioID(id)] = v
		}
		c.AddMonthly(s.Brand, s.Metric, values)
	}
	for i, a := range f.Assumptions {
		if a.Brand == "" {
			return fmt.Errorf("assumption entry %d: brand is required", i)
		}
		c.SetAssumptions(a.Brand, a.Rows)
	}
	for i, b := range f.Bridges {
		if b.Brand == "" || b.Metric == "" || b.Pair == "" {
			return fmt.Errorf("bridge entry %d: brand, metric and pair are required", i)
		}
		c.SetBridge(b.Brand, b.Metric, b.Pair, b.Steps)
	}
	for i, d := range f.Drilldowns {
		if d.Brand == "" || d.Pair == "" {
			return fmt.Errorf("drilldown entry %d: brand and pair are required", i)
		}
		c.SetDrilldown(d.Brand, d.Pair, d.Steps)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("dataset validation failed: %w", err)
	}
	return nil
}
