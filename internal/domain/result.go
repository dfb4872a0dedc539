package domain

import (
	"github.com/shopspring/decimal"
)

// Strategy names an optimization objective.
type Strategy string

const (
	StrategyMaximizeIncome Strategy = "maximize-income"
	StrategySaveDays       Strategy = "save-days"
)

// Strategies lists the objectives every optimizer call evaluates, in the
// order results are returned.
func Strategies() []Strategy {
	return []Strategy{StrategyMaximizeIncome, StrategySaveDays}
}

// Valid reports whether s is a known strategy name.
func (s Strategy) Valid() bool {
	return s == StrategyMaximizeIncome || s == StrategySaveDays
}

// OptimizationResult is the outcome of evaluating one split under one
// strategy. Created once per optimizer invocation and consumed read-only.
type OptimizationResult struct {
	Strategy      Strategy `json:"strategy"`
	Parent1Months int      `json:"parent1_months"`
	Parent2Months int      `json:"parent2_months"`

	Periods []LeavePeriod        `json:"periods"`
	Monthly []MonthlyIncomeTotal `json:"monthly"`

	TotalIncome          decimal.Decimal `json:"total_income"`
	AverageMonthlyIncome decimal.Decimal `json:"average_monthly_income"`
	DaysUsed             int             `json:"days_used"`
	DaysSaved            int             `json:"days_saved"`

	Warnings []Warning `json:"warnings"`
}

// MeetsMinimum reports whether every fully covered month met the floor.
func (r OptimizationResult) MeetsMinimum() bool {
	return len(r.Warnings) == 0
}

// Summary condenses the result for comparison and advisory consumers.
func (r OptimizationResult) Summary() CandidateSummary {
	return CandidateSummary{
		Strategy:      r.Strategy,
		Parent1Months: r.Parent1Months,
		Parent2Months: r.Parent2Months,
		TotalIncome:   r.TotalIncome,
		DaysSaved:     r.DaysSaved,
		MeetsMinimum:  r.MeetsMinimum(),
	}
}

// CandidateSummary is the per-candidate digest the sweep layer hands to
// charting and recommendation consumers.
type CandidateSummary struct {
	Strategy      Strategy        `json:"strategy"`
	Parent1Months int             `json:"parent1_months"`
	Parent2Months int             `json:"parent2_months"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	DaysSaved     int             `json:"days_saved"`
	MeetsMinimum  bool            `json:"meets_minimum"`
}

// SavedPlan couples the verbatim inputs with the full result array for
// persistence. Date fields are rehydrated by the store on load.
type SavedPlan struct {
	ID      int64                `json:"id,omitempty"`
	Name    string               `json:"name"`
	Request PlanRequest          `json:"request"`
	Results []OptimizationResult `json:"results"`
	SavedAt string               `json:"saved_at,omitempty"`
}
