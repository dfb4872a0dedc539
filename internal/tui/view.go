package tui

import (
	"fmt"
	"strings"

	"github.com/fpgo/leave-planner/internal/domain"
)

// View renders the sweep explorer.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Parental Leave Sweep Explorer"))
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render(fmt.Sprintf(
		"%d months | %d days/week | %d simultaneous",
		m.plan.TotalMonths, m.plan.DaysPerWeek, m.plan.SimultaneousMonths)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(m.helpView())
		return b.String()
	}

	if m.sweeping || m.result == nil {
		b.WriteString("Sweeping splits...\n\n")
		b.WriteString(m.progress.View())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.chartView())
	b.WriteString("\n\n")
	b.WriteString(m.metricsView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) chartView() string {
	income := make([]float64, len(m.result.Points))
	saved := make([]float64, len(m.result.Points))
	for i, p := range m.result.Points {
		for _, c := range p.Candidates {
			switch c.Strategy {
			case domain.StrategyMaximizeIncome:
				income[i], _ = c.TotalIncome.Float64()
			case domain.StrategySaveDays:
				saved[i] = float64(c.DaysSaved)
			}
		}
	}

	chart := NewSweepChart("Income and saved days per split")
	chart.Selected = m.selected
	chart.AddSeries("total income (maximize-income)", income, colorIncomeLine)
	chart.AddSeries("days saved (save-days)", saved, colorDaysLine)
	return chart.Render()
}

func (m Model) metricsView() string {
	if m.selected >= len(m.result.Points) {
		return ""
	}
	point := m.result.Points[m.selected]

	var b strings.Builder
	b.WriteString(selectedSplitStyle.Render(fmt.Sprintf(
		"Selected split: %d/%d", point.Parent1Months, point.Parent2Months)))
	b.WriteString("\n")
	for _, c := range point.Candidates {
		line := fmt.Sprintf("  %-16s %s %s   %s %d",
			c.Strategy,
			metricLabelStyle.Render("income"),
			metricValueStyle.Render(c.TotalIncome.Round(0).String()+" kr"),
			metricLabelStyle.Render("days saved"),
			c.DaysSaved)
		if !c.MeetsMinimum {
			line += warningStyle.Render("  below income floor")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if best, ok := m.result.Best[domain.StrategyMaximizeIncome]; ok {
		b.WriteString(statusBarStyle.Render(fmt.Sprintf(
			"Best income split: %d/%d (%s kr)",
			best.Parent1Months, best.Parent2Months, best.TotalIncome.Round(0))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpView() string {
	keys := []struct{ key, desc string }{
		{"←/→", "move split"},
		{"d", "cycle days/week"},
		{"s", "simultaneous months"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, helpKeyStyle.Render(k.key)+" "+statusBarStyle.Render(k.desc))
	}
	return strings.Join(parts, "  ")
}
