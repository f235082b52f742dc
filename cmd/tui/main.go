package main

import (
	"fmt"
	"os"

	"codeberg.org/devmentor/server/internal/config"
	"codeberg.org/devmentor/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	flags := config.ParseTUIFlags()

	if flags.Name == "" {
		flags.Name = "anonymous"
	}

	app := tui.NewApp(flags.ServerURL, flags.Name)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running devmentor: %v\n", err)
		os.Exit(1)
	}
}
