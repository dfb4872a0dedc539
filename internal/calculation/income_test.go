package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpgo/leave-planner/internal/domain"
)

func testParent(gross int64) domain.ParentInput {
	return domain.ParentInput{
		Name:               "Test",
		GrossMonthlyIncome: decimal.NewFromInt(gross),
		MunicipalTaxRate:   decimal.NewFromInt(32),
	}
}

func TestNetMonthlyIncome(t *testing.T) {
	ic := NewIncomeCalculator(domain.DefaultRuleSet())
	net := ic.NetMonthlyIncome(testParent(30000))
	assert.True(t, net.Equal(decimal.NewFromInt(20400)),
		"30000 gross at 32%% tax should net 20400, got %s", net)

	daily := ic.NetDailyIncome(testParent(30000))
	expected := ic.DailyIncome(testParent(30000)).Mul(decimal.NewFromFloat(0.68))
	assert.True(t, daily.Equal(expected),
		"net daily is the gross daily salary after municipal tax")
}

func TestDailyBenefitHighTier(t *testing.T) {
	rules := domain.DefaultRuleSet()
	ic := NewIncomeCalculator(rules)

	benefit := ic.DailyBenefit(testParent(30000), domain.BenefitHigh)
	expected := decimal.NewFromInt(360000).
		Mul(rules.SGIFactor).Mul(rules.BenefitRate).
		Div(decimal.NewFromInt(int64(rules.DaysPerYear)))
	assert.True(t, benefit.Equal(expected), "uncapped high benefit mismatch: %s", benefit)
	assert.InDelta(t, 765.37, benefit.InexactFloat64(), 0.01)
}

func TestDailyBenefitCappedAtAnnualCeiling(t *testing.T) {
	rules := domain.DefaultRuleSet()
	ic := NewIncomeCalculator(rules)

	// 55000/month is 660000/year, above the 588000 cap.
	capped := ic.DailyBenefit(testParent(55000), domain.BenefitHigh)
	atCap := ic.DailyBenefit(testParent(49000), domain.BenefitHigh)
	assert.True(t, capped.Equal(atCap), "income above the cap must not raise the benefit")
	assert.InDelta(t, 1250.10, capped.InexactFloat64(), 0.01)
}

func TestDailyBenefitLowAndNone(t *testing.T) {
	rules := domain.DefaultRuleSet()
	ic := NewIncomeCalculator(rules)

	assert.True(t, ic.DailyBenefit(testParent(30000), domain.BenefitLow).Equal(rules.LowDailyAmount))
	assert.True(t, ic.DailyBenefit(testParent(30000), domain.BenefitNone).IsZero())
}

func TestCollectiveTopUp(t *testing.T) {
	ic := NewIncomeCalculator(domain.DefaultRuleSet())

	parent := testParent(30000)
	assert.True(t, ic.CollectiveTopUp(parent, true).IsZero(),
		"no top-up without a collective agreement")

	parent.HasCollectiveAgreement = true
	topUp := ic.CollectiveTopUp(parent, true)
	expected := ic.DailyIncome(parent).Mul(decimal.NewFromFloat(0.10))
	assert.True(t, topUp.Equal(expected), "top-up should be 10%% of uncapped daily income")

	assert.True(t, ic.CollectiveTopUp(parent, false).IsZero(),
		"no top-up outside the continuity window")
}

func TestTopUpUsesUncappedIncome(t *testing.T) {
	ic := NewIncomeCalculator(domain.DefaultRuleSet())

	parent := testParent(55000)
	parent.HasCollectiveAgreement = true
	topUp := ic.CollectiveTopUp(parent, true)
	expected := ic.DailyIncome(parent).Mul(decimal.NewFromFloat(0.10))
	assert.True(t, topUp.Equal(expected),
		"top-up is based on actual salary even above the benefit cap")
}

func TestValidateRejectsBadInputs(t *testing.T) {
	ic := NewIncomeCalculator(domain.DefaultRuleSet())

	bad := testParent(30000)
	bad.GrossMonthlyIncome = decimal.NewFromInt(-1)
	err := ic.Validate(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = testParent(30000)
	bad.MunicipalTaxRate = decimal.NewFromInt(101)
	err = ic.Validate(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	zero := testParent(0)
	assert.NoError(t, ic.Validate(zero), "zero income is a valid input")
}
