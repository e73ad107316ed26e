package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/rxdash/internal/aggregate"
	"github.com/rgehrsitz/rxdash/internal/dataset"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"gopkg.in/yaml.v3"
)

// Configuration holds the dashboard settings.
type Configuration struct {
	// Variant is the view the CLI and TUI open with.
	Variant domain.Variant `yaml:"variant" validate:"omitempty,oneof=summary assumptions waterfall"`

	// AggregationPolicy reduces months to years: mean (default) or first.
	AggregationPolicy string `yaml:"aggregation_policy" validate:"omitempty,oneof=mean first"`

	// CacheSize bounds the view model cache per view kind; 0 uses the default.
	CacheSize int `yaml:"cache_size" validate:"gte=0,lte=4096"`

	// DatasetFile is an optional YAML override of the built-in tables,
	// resolved relative to the configuration file.
	DatasetFile string `yaml:"dataset_file"`

	// Format is the default output format.
	Format string `yaml:"format" validate:"omitempty,oneof=table csv json xlsx"`

	// Filters are initial filter overrides, keyed like --set.
	Filters map[string]string `yaml:"filters" validate:"omitempty,dive,keys,filterkey,endkeys"`
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Variant:           domain.VariantSummary,
		AggregationPolicy: string(aggregate.PolicyMean),
		Format:            "table",
	}
}

// Policy returns the aggregation policy; an unknown value means mean.
func (c *Configuration) Policy() aggregate.Policy {
	p, err := aggregate.ParsePolicy(c.AggregationPolicy)
	if err != nil {
		return aggregate.PolicyMean
	}
	return p
}

// FilterSpecs returns the filter overrides as "key=value" specs. Known keys
// come first in filter bar order so granularity applies before the horizon.
func (c *Configuration) FilterSpecs() []string {
	seen := make(map[string]bool, len(c.Filters))
	var specs []string
	for _, k := range filter.Keys {
		if v, ok := c.Filters[k]; ok {
			specs = append(specs, k+"="+v)
			seen[k] = true
		}
	}
	var rest []string
	for k := range c.Filters {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		specs = append(specs, k+"="+c.Filters[k])
	}
	return specs
}

// InitialState returns the defaults of variant with the configured filter
// overrides applied. An empty variant uses the configured one.
func (c *Configuration) InitialState(variant domain.Variant) (filter.State, error) {
	if variant == "" {
		variant = c.Variant
	}
	s := filter.Default(variant)
	actions, err := filter.NewRegistry().ParseSpecs(c.FilterSpecs())
	if err != nil {
		return s, fmt.Errorf("invalid filter override: %w", err)
	}
	return filter.ApplyActions(s, actions)
}

// InputParser handles parsing of configuration and dataset files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()

	registry := filter.NewRegistry()
	known := make(map[string]bool)
	for _, k := range registry.List() {
		known[k] = true
	}
	v.RegisterValidation("filterkey", func(fl validator.FieldLevel) bool {
		return known[fl.Field().String()]
	})

	// Use YAML tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &InputParser{validate: v}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if config.DatasetFile != "" && !filepath.IsAbs(config.DatasetFile) {
		config.DatasetFile = filepath.Join(filepath.Dir(filename), config.DatasetFile)
	}

	return config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is required")
	}
	if err := ip.validate.Struct(config); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatValidationError(fe))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	if _, err := config.InitialState(config.Variant); err != nil {
		return err
	}
	return nil
}

// LoadDataset loads the built-in catalog with the overrides of filename
// applied. An empty filename returns the built-in catalog.
func (ip *InputParser) LoadDataset(filename string) (*dataset.Catalog, error) {
	catalog := dataset.Default()
	if filename == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file dataset.File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := file.ApplyTo(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// formatValidationError formats validation error messages
func formatValidationError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "filterkey":
		return fmt.Sprintf("%s: unknown filter key %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
