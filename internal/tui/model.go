package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/domain"
	"github.com/fpgo/leave-planner/internal/sweep"
)

// sweepDoneMsg carries a finished sweep into the update loop.
type sweepDoneMsg struct {
	result *sweep.Result
}

// sweepErrMsg carries a sweep failure.
type sweepErrMsg struct {
	err error
}

type tickMsg struct{}

// Model is the interactive sweep explorer. It holds the plan being
// explored, the memoized sweeper, and the latest sweep result. Parameter
// changes re-run the sweep; the memo cache makes repeats instant.
type Model struct {
	plan    domain.PlanRequest
	rules   domain.BenefitRuleSet
	sweeper *sweep.Sweeper

	result   *sweep.Result
	selected int // parent1 months highlighted in the chart
	err      error

	sweeping bool
	progress progress.Model
	width    int
}

// NewModel creates the TUI model for a resolved plan request.
func NewModel(plan domain.PlanRequest, rules domain.BenefitRuleSet) Model {
	return Model{
		plan:     plan,
		rules:    rules,
		sweeper:  sweep.NewSweeper(calculation.NewDistributionOptimizer(rules)),
		selected: plan.Parent1Months,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Init kicks off the first sweep.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runSweep(), tick())
}

// Update handles key presses and sweep completion.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-8, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "right", "l":
			if m.selected < m.plan.TotalMonths {
				m.selected++
			}
			return m, nil
		case "d":
			m.plan.DaysPerWeek = m.plan.DaysPerWeek%7 + 1
			return m, m.runSweep()
		case "s":
			if m.plan.SimultaneousMonths < m.plan.TotalMonths {
				m.plan.SimultaneousMonths++
			} else {
				m.plan.SimultaneousMonths = 0
			}
			return m, m.runSweep()
		}
		return m, nil

	case tickMsg:
		if m.sweeping {
			cmd := m.progress.IncrPercent(0.25)
			return m, tea.Batch(cmd, tick())
		}
		return m, tick()

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case sweepDoneMsg:
		m.sweeping = false
		m.result = msg.result
		m.err = nil
		if m.selected > m.plan.TotalMonths {
			m.selected = m.plan.TotalMonths
		}
		return m, nil

	case sweepErrMsg:
		m.sweeping = false
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

// runSweep launches the sweep as a command.
func (m *Model) runSweep() tea.Cmd {
	m.sweeping = true
	m.progress.SetPercent(0)
	plan := m.plan
	sweeper := m.sweeper
	return func() tea.Msg {
		result, err := sweeper.Run(context.Background(), plan)
		if err != nil {
			return sweepErrMsg{err: err}
		}
		return sweepDoneMsg{result: result}
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
