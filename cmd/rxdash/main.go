package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rxdash %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newLogger returns the CLI logger: warnings only, or everything with --debug.
func newLogger(debugMode bool) *slog.Logger {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rxdash",
		Short: "Brand forecast dashboard CLI",
		Long: "Slice the brand forecast tables by brand, line, indication, scenario and horizon, " +
			"and print summary, assumptions and bridge views as tables, CSV, JSON or XLSX.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Path to a dashboard configuration file")
	flags.StringArray("set", nil, "Filter override as key=value (repeatable), e.g. --set brand=brand-b")
	flags.StringP("format", "f", "", "Output format (table, csv, json, xlsx); defaults to the configured format")
	flags.StringP("output", "o", "", "Write output to a file instead of stdout (required for xlsx)")
	flags.Bool("debug", false, "Enable debug logging")

	root.AddCommand(summaryCmd())
	root.AddCommand(assumptionsCmd())
	root.AddCommand(bridgeCmd())
	root.AddCommand(drilldownCmd())
	root.AddCommand(optionsCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
