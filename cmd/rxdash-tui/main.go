package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rxdash/internal/tui"
)

func main() {
	// Optional config file path; the built-in configuration is used without one
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Config file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(configPath)
	if len(os.Args) > 2 {
		model = model.WithExportPath(os.Args[2])
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
