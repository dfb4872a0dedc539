package compare

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV.
type CSVFormatter struct{}

// Format generates CSV output for comparison results.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Split",
		"Type",
		"Strategy",
		"Total Income",
		"Avg Monthly Income",
		"Days Used",
		"Days Saved",
		"Warnings",
		"Income Diff from Base",
		"Income % Change",
		"Days Saved Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(r *ComparisonResult, rowType string) []string {
	return []string{
		r.Label,
		rowType,
		string(r.Strategy),
		r.TotalIncome.Round(2).String(),
		r.AverageMonthlyIncome.Round(2).String(),
		strconv.Itoa(r.DaysUsed),
		strconv.Itoa(r.DaysSaved),
		strconv.Itoa(r.WarningCount),
		r.IncomeDiffFromBase.Round(2).String(),
		r.IncomePctFromBase.String(),
		strconv.Itoa(r.DaysSavedDiff),
	}
}
