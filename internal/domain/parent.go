package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParentRole identifies which parent a period or allocation belongs to.
type ParentRole string

const (
	Parent1 ParentRole = "parent1"
	Parent2 ParentRole = "parent2"
)

// Other returns the opposite role.
func (p ParentRole) Other() ParentRole {
	if p == Parent1 {
		return Parent2
	}
	return Parent1
}

// ParentInput holds the financial facts about one parent. Supplied per
// call and never mutated by the engine.
type ParentInput struct {
	Name                   string          `yaml:"name,omitempty" json:"name,omitempty"`
	GrossMonthlyIncome     decimal.Decimal `yaml:"gross_monthly_income" json:"gross_monthly_income"`
	HasCollectiveAgreement bool            `yaml:"has_collective_agreement" json:"has_collective_agreement"`
	MunicipalTaxRate       decimal.Decimal `yaml:"municipal_tax_rate" json:"municipal_tax_rate"`
}

// PlanRequest is the full input tuple for one optimizer invocation.
// Callers resolve defaults (config.ResolveDefaults) before handing the
// request to the engine, so every field is fully specified here.
type PlanRequest struct {
	Parent1 ParentInput `yaml:"parent1" json:"parent1"`
	Parent2 ParentInput `yaml:"parent2" json:"parent2"`

	StartDate          time.Time       `yaml:"start_date" json:"start_date"`
	TotalMonths        int             `yaml:"total_months" json:"total_months"`
	Parent1Months      int             `yaml:"parent1_months" json:"parent1_months"`
	Parent2Months      int             `yaml:"parent2_months" json:"parent2_months"`
	DaysPerWeek        int             `yaml:"days_per_week" json:"days_per_week"`
	SimultaneousMonths int             `yaml:"simultaneous_months" json:"simultaneous_months"`
	MinHouseholdIncome decimal.Decimal `yaml:"min_household_income" json:"min_household_income"`

	// IsFirstOptimization only affects default filling in the config
	// layer. Once a request reaches the engine it has no effect.
	IsFirstOptimization bool `yaml:"is_first_optimization,omitempty" json:"is_first_optimization,omitempty"`
}

// Parent returns the input for the given role.
func (r PlanRequest) Parent(role ParentRole) ParentInput {
	if role == Parent1 {
		return r.Parent1
	}
	return r.Parent2
}

// WithSplit returns a copy of the request with a different month split,
// keeping everything else fixed. Used by the sweep layer.
func (r PlanRequest) WithSplit(parent1Months int) PlanRequest {
	out := r
	out.Parent1Months = parent1Months
	out.Parent2Months = r.TotalMonths - parent1Months
	return out
}
