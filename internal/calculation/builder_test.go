package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpgo/leave-planner/internal/domain"
)

func testBuildSpec() BuildSpec {
	p1 := testParent(30000)
	p2 := testParent(55000)
	return BuildSpec{
		Parent1:       p1,
		Parent2:       p2,
		Start:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalMonths:   15,
		Parent1Months: 10,
		Parent2Months: 5,
		DaysPerWeek:   7,
	}
}

func TestBuildEmitsInitialTenDayPeriod(t *testing.T) {
	b := NewBenefitPeriodBuilder(domain.DefaultRuleSet())
	periods, _, err := b.Build(testBuildSpec())
	require.NoError(t, err)
	require.NotEmpty(t, periods)

	initial := periods[0]
	assert.True(t, initial.IsInitialTenDayPeriod)
	assert.Equal(t, domain.Parent2, initial.Parent)
	assert.Equal(t, domain.BenefitHigh, initial.Level)
	assert.Equal(t, 10, initial.BenefitDays)
	assert.True(t, initial.Simultaneous, "initial days overlap the first parent's leave")
	assert.Equal(t, 10, initial.CalendarDays())
}

func TestBuildPoolConsumptionHighBeforeLow(t *testing.T) {
	b := NewBenefitPeriodBuilder(domain.DefaultRuleSet())
	periods, pools, err := b.Build(testBuildSpec())
	require.NoError(t, err)

	// At seven days a week over 15 months each parent burns through the
	// high tier; low-tier periods must only appear after high runs out.
	for _, role := range []domain.ParentRole{domain.Parent1, domain.Parent2} {
		seenLow := false
		for _, p := range periods {
			if p.Parent != role {
				continue
			}
			if p.Level == domain.BenefitLow {
				seenLow = true
			}
			if seenLow && p.Level == domain.BenefitHigh && !p.Simultaneous {
				t.Fatalf("%s draws high-tier days after low-tier days", role)
			}
		}
	}

	used := 0
	for _, p := range periods {
		used += p.BenefitDays
	}
	remaining := pools[domain.Parent1].Remaining() + pools[domain.Parent2].Remaining()
	assert.Equal(t, domain.DefaultRuleSet().TotalDays, used+remaining,
		"periods and pools must account for every day exactly once")
}

func TestBuildSimultaneousMonthsKeepCalendarSpan(t *testing.T) {
	b := NewBenefitPeriodBuilder(domain.DefaultRuleSet())

	serial := testBuildSpec()
	overlapped := testBuildSpec()
	overlapped.SimultaneousMonths = 2

	serialPeriods, _, err := b.Build(serial)
	require.NoError(t, err)
	overlapPeriods, _, err := b.Build(overlapped)
	require.NoError(t, err)

	assert.True(t, lastEnd(serialPeriods).Equal(lastEnd(overlapPeriods)),
		"simultaneous months must not extend the schedule")

	var overlays int
	for _, p := range overlapPeriods {
		if p.Simultaneous && !p.IsInitialTenDayPeriod {
			overlays++
		}
	}
	assert.Positive(t, overlays, "overlay periods expected for simultaneous months")
}

func TestBuildFillerDaysAfterPoolRunsOut(t *testing.T) {
	rules := domain.DefaultRuleSet()
	b := NewBenefitPeriodBuilder(rules)

	// One parent alone for 15 months at 7 days/week needs ~456 benefit
	// days but holds only 240, so the tail must be unpaid filler.
	spec := testBuildSpec()
	spec.Parent1Months = 15
	spec.Parent2Months = 0

	periods, pools, err := b.Build(spec)
	require.NoError(t, err)

	var fillerSeen bool
	for _, p := range periods {
		if p.IsPreferenceFiller {
			fillerSeen = true
			assert.Equal(t, 0, p.BenefitDays, "filler consumes no pool days")
			assert.True(t, p.DailyBenefit.IsZero(), "filler pays nothing")
		}
	}
	assert.True(t, fillerSeen)
	assert.Zero(t, pools[domain.Parent1].Remaining(), "parent1's pool should be empty")
}

func TestBuildRejectsBadCadenceAndNegativeMonths(t *testing.T) {
	b := NewBenefitPeriodBuilder(domain.DefaultRuleSet())

	spec := testBuildSpec()
	spec.DaysPerWeek = 0
	_, _, err := b.Build(spec)
	assert.ErrorIs(t, err, ErrPoolExhausted)

	spec = testBuildSpec()
	spec.Parent2Months = -1
	_, _, err = b.Build(spec)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestBuildPeriodsAreChronologicalPerParent(t *testing.T) {
	b := NewBenefitPeriodBuilder(domain.DefaultRuleSet())
	spec := testBuildSpec()
	spec.SimultaneousMonths = 2
	periods, _, err := b.Build(spec)
	require.NoError(t, err)

	last := map[domain.ParentRole]time.Time{}
	for _, p := range periods {
		require.False(t, p.End.Before(p.Start), "period end before start")
		if p.IsInitialTenDayPeriod {
			// Runs concurrently with the same parent's first overlay month.
			continue
		}
		if prev, ok := last[p.Parent]; ok {
			assert.True(t, p.Start.After(prev), "periods for %s out of order", p.Parent)
		}
		last[p.Parent] = p.End
	}
}

func TestBuildHouseholdIncomeMirrorsWorkingParent(t *testing.T) {
	b := NewBenefitPeriodBuilder(domain.DefaultRuleSet())
	periods, _, err := b.Build(testBuildSpec())
	require.NoError(t, err)

	ic := NewIncomeCalculator(domain.DefaultRuleSet())
	p2Net := ic.NetMonthlyIncome(testParent(55000))
	p2Daily := ic.NetDailyIncome(testParent(55000))

	var checked bool
	for _, p := range periods {
		if p.Parent == domain.Parent1 && !p.Simultaneous {
			assert.True(t, p.OtherParentMonthlyIncome.Equal(p2Net),
				"parent1's leave months should mirror parent2's net salary")
			assert.True(t, p.OtherParentDailyIncome.LessThanOrEqual(p2Daily),
				"salary is credited for at most the days parent2 works")
			assert.True(t, p.HouseholdDailyIncome.GreaterThan(p.OtherParentDailyIncome),
				"household income includes the benefit on top of the salary")
			checked = true
		}
	}
	assert.True(t, checked)
}

func TestBuildInitialDaysProrateOtherParentSalary(t *testing.T) {
	rules := domain.DefaultRuleSet()
	b := NewBenefitPeriodBuilder(rules)
	periods, _, err := b.Build(testBuildSpec())
	require.NoError(t, err)

	ic := NewIncomeCalculator(rules)
	fullDaily := ic.NetDailyIncome(testParent(55000))
	// March has 31 days, ten of them spent by parent2 on the initial
	// benefit days rather than at work.
	prorated := fullDaily.
		Mul(decimal.NewFromInt(21)).
		Div(decimal.NewFromInt(31))

	first := periods[1]
	require.Equal(t, domain.Parent1, first.Parent)
	require.False(t, first.Simultaneous)
	assert.True(t, first.OtherParentDailyIncome.Equal(prorated),
		"parent2's salary only counts for days worked, got %s want %s",
		first.OtherParentDailyIncome, prorated)

	var second domain.LeavePeriod
	for _, p := range periods[2:] {
		if p.Parent == domain.Parent1 {
			second = p
			break
		}
	}
	assert.True(t, second.OtherParentDailyIncome.Equal(fullDaily),
		"from the second month on parent2 works the whole month")
	assert.True(t, first.HouseholdDailyIncome.LessThan(second.HouseholdDailyIncome),
		"the first month's household total is lower while parent2 is home")
}

func TestWithdrawalDays(t *testing.T) {
	assert.Equal(t, 31, withdrawalDays(31, 7))
	assert.Equal(t, 4, withdrawalDays(30, 1))
	assert.Equal(t, 22, withdrawalDays(31, 5))
	assert.Equal(t, 0, withdrawalDays(0, 7))
}

func lastEnd(periods []domain.LeavePeriod) time.Time {
	var end time.Time
	for _, p := range periods {
		if p.End.After(end) {
			end = p.End
		}
	}
	return end
}

func sumIncome(monthly []domain.MonthlyIncomeTotal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range monthly {
		total = total.Add(m.TotalIncome)
	}
	return total
}
