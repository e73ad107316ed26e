package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/rxdash/internal/config"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/horizon"
	"github.com/rgehrsitz/rxdash/internal/pipeline"
	"github.com/rgehrsitz/rxdash/internal/report"
	"github.com/spf13/cobra"
)

// environment is everything a view command needs.
type environment struct {
	config *config.Configuration
	engine *pipeline.Engine
	state  filter.State
}

// loadEnvironment reads --config, builds the engine and applies the
// configured and --set filter overrides to the variant defaults.
func loadEnvironment(cmd *cobra.Command, variant domain.Variant) (*environment, error) {
	configFile, _ := cmd.Flags().GetString("config")
	debugMode, _ := cmd.Flags().GetBool("debug")
	specs, _ := cmd.Flags().GetStringArray("set")

	parser := config.NewInputParser()
	cfg := config.Default()
	if configFile != "" {
		loaded, err := parser.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	catalog, err := parser.LoadDataset(cfg.DatasetFile)
	if err != nil {
		return nil, err
	}

	engine := pipeline.NewEngine(catalog, cfg.Policy())
	engine.SetCacheSize(cfg.CacheSize)
	if debugMode {
		engine.SetLogger(pipeline.NewSlogLogger(newLogger(true)))
	}

	state, err := cfg.InitialState(variant)
	if err != nil {
		return nil, err
	}
	actions, err := filter.NewRegistry().ParseSpecs(specs)
	if err != nil {
		return nil, err
	}
	state, err = filter.ApplyActions(state, actions)
	if err != nil {
		return nil, err
	}
	engine.Logger.Debugf("filter state %s", state.Key())

	return &environment{config: cfg, engine: engine, state: state}, nil
}

// runView renders the document built from the environment and writes it to
// stdout or --output.
func runView(cmd *cobra.Command, variant domain.Variant, build func(*environment) report.Document) error {
	env, err := loadEnvironment(cmd, variant)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = env.config.Format
	}
	if format == "" {
		format = "table"
	}
	formatter := report.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(report.AvailableFormats(), ", "))
	}

	outputFile, _ := cmd.Flags().GetString("output")
	if formatter.Name() == "xlsx" && outputFile == "" {
		return fmt.Errorf("xlsx output requires --output")
	}

	data, err := formatter.Format(build(env))
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputFile)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show a metric per scenario over the horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, domain.VariantSummary, func(env *environment) report.Document {
				return report.SummaryDocument(env.engine.Summary(env.state))
			})
		},
	}
}

func assumptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assumptions",
		Short: "Show the assumption table of a brand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, domain.VariantAssumptions, func(env *environment) report.Document {
				return report.AssumptionsDocument(env.engine.Assumptions(env.state))
			})
		},
	}
}

func bridgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bridge",
		Short: "Show the waterfall between two scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, domain.VariantWaterfall, func(env *environment) report.Document {
				return report.BridgeDocument(report.ViewBridge, env.engine.Bridge(env.state))
			})
		},
	}
}

func drilldownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drilldown",
		Short: "Show the total demand breakdown by line factor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, domain.VariantWaterfall, func(env *environment) report.Document {
				return report.BridgeDocument(report.ViewDrilldown, env.engine.Drilldown(env.state))
			})
		},
	}
}

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the selectable filter values and keys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			section := func(title string, opts []domain.Option) {
				fmt.Fprintf(out, "%s:\n", title)
				for _, o := range opts {
					fmt.Fprintf(out, "  %-16s %s\n", o.Value, o.Label)
				}
			}
			section("Brands", domain.Brands)
			section("Indications", domain.Indications)
			section("Metrics", domain.Metrics)
			section("Bridge metrics", domain.BridgeMetrics)
			section("Lines", domain.Lines)
			section("Scenarios", domain.Scenarios)
			section("Granularities", domain.Granularities)

			for _, c := range []*horizon.Catalog{horizon.Monthly, horizon.Annual} {
				tokens := make([]string, 0, c.Len())
				for _, o := range c.Options() {
					tokens = append(tokens, o.Token)
				}
				fmt.Fprintf(out, "Horizon (%s):\n  %s\n", c.Granularity(), strings.Join(tokens, " "))
			}
			fmt.Fprintf(out, "Filter keys:\n  %s\n", strings.Join(filter.NewRegistry().List(), " "))
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file and its dataset overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			if _, err := parser.LoadDataset(cfg.DatasetFile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", inputFile)
			return nil
		},
	}
}
