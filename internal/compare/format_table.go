package compare

import (
	"fmt"
	"strings"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing splits.
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("LEAVE SPLIT COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("Strategy: %s\n", compSet.Strategy))
	sb.WriteString("\n")

	nameWidth := 12
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Split",
		numWidth, "Total Income",
		numWidth, "Avg Monthly",
		numWidth, "Days Saved",
		numWidth, "Warnings"))
	sb.WriteString(strings.Repeat("-", 78) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 78) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 78) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 78) + "\n")
		for _, alt := range compSet.AlternativeResults {
			diff := alt.IncomeDiffFromBase.Round(0).String()
			if !alt.IncomeDiffFromBase.IsNegative() {
				diff = "+" + diff
			}
			sb.WriteString(fmt.Sprintf("%s: income %s (%s%%), days saved %+d\n",
				alt.Label, diff, alt.IncomePctFromBase, alt.DaysSavedDiff))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 78) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(r *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	label := r.Label
	if isBase {
		label += " (base)"
	}
	return fmt.Sprintf("%-*s %*s %*s %*d %*d\n",
		nameWidth, label,
		numWidth, r.TotalIncome.Round(0).String(),
		numWidth, r.AverageMonthlyIncome.Round(0).String(),
		numWidth, r.DaysSaved,
		numWidth, r.WarningCount)
}
