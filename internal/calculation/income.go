package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// IncomeCalculator performs the per-parent income, tax and benefit
// arithmetic. It is pure; the injected rule set supplies every statutory
// constant.
type IncomeCalculator struct {
	Rules domain.BenefitRuleSet
}

// NewIncomeCalculator creates an income calculator for the given rules.
func NewIncomeCalculator(rules domain.BenefitRuleSet) *IncomeCalculator {
	return &IncomeCalculator{Rules: rules}
}

// Validate checks a parent's financial inputs. Zero income is fine;
// negative income or an out-of-range tax rate is not.
func (ic *IncomeCalculator) Validate(parent domain.ParentInput) error {
	if parent.GrossMonthlyIncome.IsNegative() {
		return invalidInput("validate parent", "gross monthly income cannot be negative, got %s", parent.GrossMonthlyIncome)
	}
	if parent.MunicipalTaxRate.IsNegative() {
		return invalidInput("validate parent", "municipal tax rate cannot be negative, got %s", parent.MunicipalTaxRate)
	}
	if parent.MunicipalTaxRate.GreaterThan(hundred) {
		return invalidInput("validate parent", "municipal tax rate cannot exceed 100%%, got %s", parent.MunicipalTaxRate)
	}
	return nil
}

// NetMonthlyIncome applies the municipal tax rate to the gross salary.
func (ic *IncomeCalculator) NetMonthlyIncome(parent domain.ParentInput) decimal.Decimal {
	return parent.GrossMonthlyIncome.Mul(one.Sub(parent.MunicipalTaxRate.Div(hundred)))
}

// DailyIncome is the gross salary spread over calendar days.
func (ic *IncomeCalculator) DailyIncome(parent domain.ParentInput) decimal.Decimal {
	days := decimal.NewFromInt(int64(ic.Rules.DaysPerYear))
	return parent.GrossMonthlyIncome.Mul(twelve).Div(days)
}

// NetDailyIncome is DailyIncome after municipal tax.
func (ic *IncomeCalculator) NetDailyIncome(parent domain.ParentInput) decimal.Decimal {
	return ic.DailyIncome(parent).Mul(one.Sub(parent.MunicipalTaxRate.Div(hundred)))
}

// DailyBenefit returns the statutory benefit per day at the given level.
// The high tier is BenefitRate of the SGI-adjusted annual income, with
// the income basis capped at AnnualIncomeCap. The low tier is a flat
// amount. Unpaid days yield zero.
func (ic *IncomeCalculator) DailyBenefit(parent domain.ParentInput, level domain.BenefitLevel) decimal.Decimal {
	switch level {
	case domain.BenefitHigh:
		annual := parent.GrossMonthlyIncome.Mul(twelve)
		if annual.GreaterThan(ic.Rules.AnnualIncomeCap) {
			annual = ic.Rules.AnnualIncomeCap
		}
		days := decimal.NewFromInt(int64(ic.Rules.DaysPerYear))
		return annual.Mul(ic.Rules.SGIFactor).Mul(ic.Rules.BenefitRate).Div(days)
	case domain.BenefitLow:
		return ic.Rules.LowDailyAmount
	default:
		return decimal.Zero
	}
}

// CollectiveTopUp returns the employer top-up per benefit day. It is paid
// only under a collective agreement, only within the continuity window,
// and is based on the uncapped daily income.
func (ic *IncomeCalculator) CollectiveTopUp(parent domain.ParentInput, withinWindow bool) decimal.Decimal {
	if !parent.HasCollectiveAgreement || !withinWindow {
		return decimal.Zero
	}
	return ic.DailyIncome(parent).Mul(ic.Rules.TopUpRate)
}

// netFactor converts a gross amount for this parent to net.
func (ic *IncomeCalculator) netFactor(parent domain.ParentInput) decimal.Decimal {
	return one.Sub(parent.MunicipalTaxRate.Div(hundred))
}
