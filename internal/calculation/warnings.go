package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

// WarningsCollector flags months where household income falls below the
// requested floor. Partially covered edge months are exempt: a month the
// schedule only half occupies is not a fair basis for comparison.
type WarningsCollector struct{}

// NewWarningsCollector creates a collector.
func NewWarningsCollector() *WarningsCollector {
	return &WarningsCollector{}
}

// Collect returns one warning per fully covered month whose income is
// below minIncome. A zero or negative floor disables the check. The
// result is never nil.
func (c *WarningsCollector) Collect(monthly []domain.MonthlyIncomeTotal, minIncome decimal.Decimal) []domain.Warning {
	warnings := []domain.Warning{}
	if !minIncome.IsPositive() {
		return warnings
	}
	for _, m := range monthly {
		if !m.FullyCovered() {
			continue
		}
		if m.TotalIncome.GreaterThanOrEqual(minIncome) {
			continue
		}
		deficit := minIncome.Sub(m.TotalIncome)
		warnings = append(warnings, domain.Warning{
			Month:       m.MonthStart,
			TotalIncome: m.TotalIncome,
			Deficit:     deficit,
			Message: fmt.Sprintf("household income %s in %s is %s below the %s floor",
				m.TotalIncome.Round(0), m.MonthStart.Format("2006-01"),
				deficit.Round(0), minIncome.Round(0)),
		})
	}
	return warnings
}
