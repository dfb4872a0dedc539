package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

// ComparisonResult is one split evaluated under one strategy, with its
// deltas against the base split.
type ComparisonResult struct {
	Label         string          `json:"label"`
	Strategy      domain.Strategy `json:"strategy"`
	Parent1Months int             `json:"parent1_months"`
	Parent2Months int             `json:"parent2_months"`

	TotalIncome          decimal.Decimal `json:"total_income"`
	AverageMonthlyIncome decimal.Decimal `json:"average_monthly_income"`
	DaysUsed             int             `json:"days_used"`
	DaysSaved            int             `json:"days_saved"`
	WarningCount         int             `json:"warning_count"`

	IncomeDiffFromBase decimal.Decimal `json:"income_diff_from_base"`
	IncomePctFromBase  decimal.Decimal `json:"income_pct_from_base"`
	DaysSavedDiff      int             `json:"days_saved_diff"`
}

// ComparisonSet is a base split plus its alternatives, all under the
// same strategy.
type ComparisonSet struct {
	Strategy           domain.Strategy    `json:"strategy"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts comparison metrics from optimizer results.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator.
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics condenses one optimizer result into a comparison row.
func (mc *MetricsCalculator) CalculateMetrics(r domain.OptimizationResult) ComparisonResult {
	return ComparisonResult{
		Label:                fmt.Sprintf("%d/%d", r.Parent1Months, r.Parent2Months),
		Strategy:             r.Strategy,
		Parent1Months:        r.Parent1Months,
		Parent2Months:        r.Parent2Months,
		TotalIncome:          r.TotalIncome,
		AverageMonthlyIncome: r.AverageMonthlyIncome,
		DaysUsed:             r.DaysUsed,
		DaysSaved:            r.DaysSaved,
		WarningCount:         len(r.Warnings),
	}
}

// CalculateComparison fills a row's deltas against the base row.
func (mc *MetricsCalculator) CalculateComparison(row, base ComparisonResult) ComparisonResult {
	row.IncomeDiffFromBase = row.TotalIncome.Sub(base.TotalIncome)
	if base.TotalIncome.IsPositive() {
		row.IncomePctFromBase = row.IncomeDiffFromBase.
			Div(base.TotalIncome).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	row.DaysSavedDiff = row.DaysSaved - base.DaysSaved
	return row
}
