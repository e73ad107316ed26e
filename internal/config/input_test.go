package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/rxdash/internal/aggregate"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	invalidFile := writeFile(t, t.TempDir(), "invalid.yaml", "invalid: yaml: content: [unclosed")

	parser := NewInputParser()
	config, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	validFile := writeFile(t, dir, "dashboard.yaml", `
variant: waterfall
aggregation_policy: first
cache_size: 16
dataset_file: overrides.yaml
format: json
filters:
  brand: brand-c
  granularity: annually
  horizon_end: "2028"
`)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(validFile)
	require.NoError(t, err)

	assert.Equal(t, domain.VariantWaterfall, config.Variant)
	assert.Equal(t, aggregate.PolicyFirst, config.Policy())
	assert.Equal(t, 16, config.CacheSize)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, filepath.Join(dir, "overrides.yaml"), config.DatasetFile, "dataset path is relative to the config file")

	s, err := config.InitialState("")
	require.NoError(t, err)
	assert.Equal(t, domain.VariantWaterfall, s.Variant)
	assert.Equal(t, domain.BrandC, s.Brand)
	assert.Equal(t, "2025", s.HorizonStart)
	assert.Equal(t, "2028", s.HorizonEnd)
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr string
	}{
		{"defaults", func(c *Configuration) {}, ""},
		{"bad variant", func(c *Configuration) { c.Variant = "sensitivity" }, "variant must be one of"},
		{"bad policy", func(c *Configuration) { c.AggregationPolicy = "median" }, "aggregation_policy must be one of: mean, first"},
		{"negative cache", func(c *Configuration) { c.CacheSize = -1 }, "cache_size must be greater than or equal to 0"},
		{"bad format", func(c *Configuration) { c.Format = "pdf" }, "format must be one of"},
		{"unknown filter key", func(c *Configuration) { c.Filters = map[string]string{"colour": "blue"} }, "unknown filter key"},
		{"invalid filter value", func(c *Configuration) { c.Filters = map[string]string{"granularity": "weekly"} }, "invalid filter value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := parser.ValidateConfiguration(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, parser.ValidateConfiguration(nil))
}

func TestConfiguration_FilterSpecsOrder(t *testing.T) {
	c := Default()
	c.Filters = map[string]string{
		"horizon_end":  "2030",
		"horizonStart": "2026",
		"granularity":  "annually",
		"brand":        "brand-b",
	}

	assert.Equal(t, []string{
		"brand=brand-b",
		"granularity=annually",
		"horizon_end=2030",
		"horizonStart=2026",
	}, c.FilterSpecs())

	s, err := c.InitialState(domain.VariantSummary)
	require.NoError(t, err)
	assert.Equal(t, "2026", s.HorizonStart)
	assert.Equal(t, "2030", s.HorizonEnd)
}

func TestInputParser_LoadDataset(t *testing.T) {
	parser := NewInputParser()

	builtin, err := parser.LoadDataset("")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.BrandA, domain.BrandB, domain.BrandC}, builtin.Brands())

	path := writeFile(t, t.TempDir(), "overrides.yaml", `
series:
  - brand: brand-d
    metric: net-revenue
    values:
      jun25: [1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20]
      nov25: [2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21]
`)
	catalog, err := parser.LoadDataset(path)
	require.NoError(t, err)
	sel := catalog.Select("brand-d", domain.MetricNetRevenue)
	assert.False(t, sel.Fallback)
	assert.Equal(t, "20", sel.Series.Points[19].Values[domain.ScenarioJun25].String())

	bad := writeFile(t, t.TempDir(), "bad.yaml", `
series:
  - brand: brand-a
    metric: compliance
    values:
      jun25: [1, 2]
`)
	_, err = parser.LoadDataset(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset validation failed")

	_, err = parser.LoadDataset("missing.yaml")
	assert.Contains(t, err.Error(), "failed to read file")
}
