package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fpgo/leave-planner/internal/config"
	"github.com/fpgo/leave-planner/internal/domain"
	"github.com/fpgo/leave-planner/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: fpgo-tui <plan-file>")
		os.Exit(1)
	}
	planPath := os.Args[1]

	doc, err := config.NewInputParser().LoadFromFile(planPath)
	if err != nil {
		fmt.Printf("Error loading plan: %v\n", err)
		os.Exit(1)
	}

	rules := domain.DefaultRuleSet()
	if doc.Rules != nil {
		rules = *doc.Rules
	}

	p := tea.NewProgram(
		tui.NewModel(doc.Plan, rules),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
