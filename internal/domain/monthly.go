package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyIncomeTotal is the household income accumulated for one calendar
// month. Derived by the aggregator, never mutated afterwards.
type MonthlyIncomeTotal struct {
	MonthStart        time.Time       `json:"month_start"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalCalendarDays int             `json:"total_calendar_days"`
	MonthLength       int             `json:"month_length"`
}

// FullyCovered reports whether leave covers the whole calendar month.
// Only fully covered months are checked against the income floor.
func (m MonthlyIncomeTotal) FullyCovered() bool {
	return m.TotalCalendarDays >= m.MonthLength
}

// Warning flags a fully covered month whose household income falls below
// the requested floor. Warnings are part of a successful result, not
// errors.
type Warning struct {
	Month       time.Time       `json:"month"`
	TotalIncome decimal.Decimal `json:"total_income"`
	Deficit     decimal.Decimal `json:"deficit"`
	Message     string          `json:"message"`
}
