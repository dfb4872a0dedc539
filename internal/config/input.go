package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PlanDocument is the on-disk shape of a plan file. The rules section is
// optional; when absent the built-in rule set for the current year is
// used.
type PlanDocument struct {
	Plan  domain.PlanRequest     `yaml:"plan" json:"plan"`
	Rules *domain.BenefitRuleSet `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// InputParser handles parsing of plan and rule files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan document from a YAML file, resolves defaults
// and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*PlanDocument, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc PlanDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc.Plan = ResolveDefaults(doc.Plan)
	if err := ip.ValidatePlan(&doc.Plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	rules := domain.DefaultRuleSet()
	if doc.Rules != nil {
		if err := ip.ValidateRules(doc.Rules); err != nil {
			return nil, fmt.Errorf("rules validation failed: %w", err)
		}
		rules = *doc.Rules
	}
	doc.Plan, err = ResolveIncomeFloor(doc.Plan, rules)
	if err != nil {
		return nil, fmt.Errorf("income floor resolution failed: %w", err)
	}
	return &doc, nil
}

// LoadRulesFromFile loads a standalone rule set from a YAML file.
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.BenefitRuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.BenefitRuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// ValidatePlan validates a resolved plan request.
func (ip *InputParser) ValidatePlan(plan *domain.PlanRequest) error {
	if plan.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if plan.TotalMonths <= 0 {
		return fmt.Errorf("total months must be positive")
	}
	if plan.Parent1Months < 0 || plan.Parent2Months < 0 {
		return fmt.Errorf("month split cannot be negative")
	}
	if plan.Parent1Months+plan.Parent2Months > plan.TotalMonths {
		return fmt.Errorf("month split %d+%d exceeds total months %d",
			plan.Parent1Months, plan.Parent2Months, plan.TotalMonths)
	}
	if plan.DaysPerWeek < 1 || plan.DaysPerWeek > 7 {
		return fmt.Errorf("days per week must be between 1 and 7")
	}
	if plan.SimultaneousMonths < 0 || plan.SimultaneousMonths > plan.TotalMonths {
		return fmt.Errorf("simultaneous months must be between 0 and total months")
	}
	if plan.MinHouseholdIncome.IsNegative() {
		return fmt.Errorf("minimum household income cannot be negative")
	}
	for _, role := range []domain.ParentRole{domain.Parent1, domain.Parent2} {
		parent := plan.Parent(role)
		if parent.GrossMonthlyIncome.IsNegative() {
			return fmt.Errorf("%s: gross monthly income cannot be negative", role)
		}
		if parent.MunicipalTaxRate.IsNegative() {
			return fmt.Errorf("%s: municipal tax rate cannot be negative", role)
		}
		if parent.MunicipalTaxRate.GreaterThan(hundred) {
			return fmt.Errorf("%s: municipal tax rate cannot exceed 100", role)
		}
	}
	return nil
}

// ValidateRules validates a rule set loaded from disk.
func (ip *InputParser) ValidateRules(rules *domain.BenefitRuleSet) error {
	if rules.TotalDays <= 0 {
		return fmt.Errorf("total days must be positive")
	}
	if rules.HighDaysPerParent < 0 || rules.LowDaysPerParent < 0 {
		return fmt.Errorf("per-parent day counts cannot be negative")
	}
	if 2*rules.DaysPerParent() != rules.TotalDays {
		return fmt.Errorf("per-parent days %d do not add up to the total pool %d",
			rules.DaysPerParent(), rules.TotalDays)
	}
	if rules.InitialDays < 0 {
		return fmt.Errorf("initial days cannot be negative")
	}
	if !rules.BenefitRate.IsPositive() || rules.BenefitRate.GreaterThan(one) {
		return fmt.Errorf("benefit rate must be in (0, 1]")
	}
	if !rules.SGIFactor.IsPositive() || rules.SGIFactor.GreaterThan(one) {
		return fmt.Errorf("SGI factor must be in (0, 1]")
	}
	if !rules.AnnualIncomeCap.IsPositive() {
		return fmt.Errorf("annual income cap must be positive")
	}
	if rules.LowDailyAmount.IsNegative() {
		return fmt.Errorf("low daily amount cannot be negative")
	}
	if rules.TopUpRate.IsNegative() {
		return fmt.Errorf("top-up rate cannot be negative")
	}
	if rules.TopUpWindowMonths < 0 {
		return fmt.Errorf("top-up window cannot be negative")
	}
	if rules.DaysPerYear <= 0 {
		return fmt.Errorf("days per year must be positive")
	}
	return nil
}

// ResolveDefaults fills the optional fields of a plan request. First-time
// users typically give only incomes, a start date and a horizon; the
// engine itself never fills defaults, so everything optional is resolved
// here.
func ResolveDefaults(plan domain.PlanRequest) domain.PlanRequest {
	out := plan

	if out.StartDate.IsZero() {
		now := time.Now().UTC()
		out.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	}

	if out.DaysPerWeek == 0 {
		out.DaysPerWeek = 7
	}

	// Derive the horizon from the split, or the split from the horizon.
	split := out.Parent1Months + out.Parent2Months
	switch {
	case out.TotalMonths == 0 && split > 0:
		out.TotalMonths = split
	case out.IsFirstOptimization && split == 0 && out.TotalMonths > 0:
		out.Parent1Months = (out.TotalMonths + 1) / 2
		out.Parent2Months = out.TotalMonths - out.Parent1Months
	}

	return out
}

// ResolveIncomeFloor fills an unset income floor on a first optimization
// with the lowest fully covered monthly total the proposed schedule
// produces, so later what-if runs warn when they dip below the plan the
// household started from. A plan with an explicit floor, or one that is
// not a first optimization, passes through untouched.
func ResolveIncomeFloor(plan domain.PlanRequest, rules domain.BenefitRuleSet) (domain.PlanRequest, error) {
	if !plan.IsFirstOptimization || plan.MinHouseholdIncome.IsPositive() {
		return plan, nil
	}

	results, err := calculation.NewDistributionOptimizer(rules).Optimize(plan)
	if err != nil {
		return plan, err
	}

	floor := decimal.Zero
	for _, m := range results[0].Monthly {
		if !m.FullyCovered() {
			continue
		}
		if floor.IsZero() || m.TotalIncome.LessThan(floor) {
			floor = m.TotalIncome
		}
	}
	plan.MinHouseholdIncome = floor
	return plan, nil
}
