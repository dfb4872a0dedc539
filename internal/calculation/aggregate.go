package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

// MonthlyAggregator projects a period list onto calendar months.
type MonthlyAggregator struct{}

// NewMonthlyAggregator creates an aggregator.
func NewMonthlyAggregator() *MonthlyAggregator {
	return &MonthlyAggregator{}
}

// Aggregate sums household income per calendar month. A period spanning a
// month boundary is split at the boundary and each side contributes its
// overlap days. Overlay periods add income but not calendar coverage, so
// coverage reflects the serial schedule only and never exceeds the month
// length.
func (a *MonthlyAggregator) Aggregate(periods []domain.LeavePeriod) []domain.MonthlyIncomeTotal {
	byMonth := make(map[time.Time]*domain.MonthlyIncomeTotal)

	for _, p := range periods {
		for cur := monthStart(p.Start); !cur.After(p.End); cur = cur.AddDate(0, 1, 0) {
			monthEnd := cur.AddDate(0, 1, 0).AddDate(0, 0, -1)
			overlap := overlapDays(p.Start, p.End, cur, monthEnd)
			if overlap <= 0 {
				continue
			}
			mt, ok := byMonth[cur]
			if !ok {
				mt = &domain.MonthlyIncomeTotal{
					MonthStart:  cur,
					MonthLength: daysInclusive(cur, monthEnd),
				}
				byMonth[cur] = mt
			}
			mt.TotalIncome = mt.TotalIncome.Add(p.HouseholdDailyIncome.Mul(decimal.NewFromInt(int64(overlap))))
			if !p.Simultaneous {
				mt.TotalCalendarDays += overlap
				if mt.TotalCalendarDays > mt.MonthLength {
					mt.TotalCalendarDays = mt.MonthLength
				}
			}
		}
	}

	out := make([]domain.MonthlyIncomeTotal, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MonthStart.Before(out[j].MonthStart)
	})
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func overlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.Before(start) {
		return 0
	}
	return daysInclusive(start, end)
}
