package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BenefitLevel is the tier a benefit day is paid at.
type BenefitLevel string

const (
	BenefitHigh BenefitLevel = "high"
	BenefitLow  BenefitLevel = "low"
	BenefitNone BenefitLevel = "none"
)

// LeavePeriod is a contiguous date range of leave for one parent.
// Start and End are inclusive calendar dates.
type LeavePeriod struct {
	Parent ParentRole   `json:"parent"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Level  BenefitLevel `json:"level"`

	// DaysPerWeek is the withdrawal cadence; BenefitDays is how many pool
	// days this period consumes (zero for filler periods).
	DaysPerWeek int `json:"days_per_week"`
	BenefitDays int `json:"benefit_days"`

	// Owner's income figures. DailyBenefit and DailyTopUp are per benefit
	// day; DailyIncome is the gross daily salary the benefit replaces.
	DailyIncome  decimal.Decimal `json:"daily_income"`
	DailyBenefit decimal.Decimal `json:"daily_benefit"`
	DailyTopUp   decimal.Decimal `json:"daily_top_up"`

	// Mirror of the other parent's concurrent income, needed for
	// household totals. Zero while the other parent is also on leave.
	OtherParentMonthlyIncome decimal.Decimal `json:"other_parent_monthly_income"`
	OtherParentDailyIncome   decimal.Decimal `json:"other_parent_daily_income"`

	// HouseholdDailyIncome is the net household income per calendar day
	// attributable to this period; the aggregator multiplies it by the
	// overlap with each calendar month.
	HouseholdDailyIncome decimal.Decimal `json:"household_daily_income"`

	IsInitialTenDayPeriod bool `json:"is_initial_ten_day_period"`
	IsPreferenceFiller    bool `json:"is_preference_filler"`

	// Simultaneous marks overlay periods where this parent draws benefit
	// concurrently with the other parent's leave. Overlay periods carry
	// income but do not count toward calendar coverage.
	Simultaneous bool `json:"simultaneous"`
}

// CalendarDays returns the inclusive day count of the period.
func (p LeavePeriod) CalendarDays() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// DayPool tracks one parent's remaining benefit days per tier. Scratch
// state local to a single build; discarded afterwards.
type DayPool struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// NewDayPool initializes a pool from the rule set's per-parent allotments.
func NewDayPool(rules BenefitRuleSet) DayPool {
	return DayPool{High: rules.HighDaysPerParent, Low: rules.LowDaysPerParent}
}

// Remaining returns the total days left across both tiers.
func (p DayPool) Remaining() int {
	return p.High + p.Low
}

// Draw consumes up to n days, high tier first, and returns how many came
// from each tier. The shortfall (n - high - low) becomes unpaid filler.
func (p *DayPool) Draw(n int) (high, low int) {
	high = min(n, p.High)
	p.High -= high
	low = min(n-high, p.Low)
	p.Low -= low
	return high, low
}
