package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

// DistributionOptimizer evaluates one month split under every strategy.
// It validates the request, delegates timeline construction to the
// builder, and assembles the per-strategy results in a stable order.
type DistributionOptimizer struct {
	Rules   domain.BenefitRuleSet
	Income  *IncomeCalculator
	Builder *BenefitPeriodBuilder
	Logger  Logger
}

// NewDistributionOptimizer creates an optimizer with the given rules and
// a no-op logger.
func NewDistributionOptimizer(rules domain.BenefitRuleSet) *DistributionOptimizer {
	return &DistributionOptimizer{
		Rules:   rules,
		Income:  NewIncomeCalculator(rules),
		Builder: NewBenefitPeriodBuilder(rules),
		Logger:  NopLogger{},
	}
}

// WithLogger installs a logger on the optimizer and its builder.
func (o *DistributionOptimizer) WithLogger(logger Logger) *DistributionOptimizer {
	o.Logger = logger
	o.Builder.Logger = logger
	return o
}

// Optimize evaluates the request under every strategy and returns one
// result per strategy, ordered as domain.Strategies().
func (o *DistributionOptimizer) Optimize(req domain.PlanRequest) ([]domain.OptimizationResult, error) {
	if err := o.validate(req); err != nil {
		return nil, err
	}

	results := make([]domain.OptimizationResult, 0, len(domain.Strategies()))
	for _, strategy := range domain.Strategies() {
		result, err := o.evaluate(req, strategy)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (o *DistributionOptimizer) validate(req domain.PlanRequest) error {
	for _, role := range []domain.ParentRole{domain.Parent1, domain.Parent2} {
		if err := o.Income.Validate(req.Parent(role)); err != nil {
			return err
		}
	}
	if req.TotalMonths <= 0 {
		return invalidTimeline("optimize", "total months must be positive, got %d", req.TotalMonths)
	}
	if req.Parent1Months < 0 || req.Parent2Months < 0 {
		return invalidTimeline("optimize", "month split cannot be negative, got %d/%d", req.Parent1Months, req.Parent2Months)
	}
	if req.SimultaneousMonths < 0 {
		return invalidTimeline("optimize", "simultaneous months cannot be negative, got %d", req.SimultaneousMonths)
	}
	if req.SimultaneousMonths > req.TotalMonths {
		return invalidTimeline("optimize", "simultaneous months %d exceed total months %d", req.SimultaneousMonths, req.TotalMonths)
	}
	if req.DaysPerWeek < 1 || req.DaysPerWeek > 7 {
		return invalidTimeline("optimize", "days per week must be between 1 and 7, got %d", req.DaysPerWeek)
	}
	if req.MinHouseholdIncome.IsNegative() {
		return invalidInput("optimize", "minimum household income cannot be negative, got %s", req.MinHouseholdIncome)
	}
	return nil
}

// evaluate runs one strategy over the request. The save-days strategy
// keeps the same calendar but drops the withdrawal cadence to one benefit
// day per week, the lowest rate that still counts the week as leave.
func (o *DistributionOptimizer) evaluate(req domain.PlanRequest, strategy domain.Strategy) (domain.OptimizationResult, error) {
	cadence := req.DaysPerWeek
	if strategy == domain.StrategySaveDays {
		cadence = 1
	}

	periods, pools, err := o.Builder.Build(BuildSpec{
		Parent1:            req.Parent1,
		Parent2:            req.Parent2,
		Start:              req.StartDate,
		TotalMonths:        req.TotalMonths,
		Parent1Months:      req.Parent1Months,
		Parent2Months:      req.Parent2Months,
		DaysPerWeek:        cadence,
		SimultaneousMonths: req.SimultaneousMonths,
	})
	if err != nil {
		return domain.OptimizationResult{}, err
	}

	monthly := NewMonthlyAggregator().Aggregate(periods)
	warnings := NewWarningsCollector().Collect(monthly, req.MinHouseholdIncome)

	total := decimal.Zero
	for _, m := range monthly {
		total = total.Add(m.TotalIncome)
	}
	avg := decimal.Zero
	if len(monthly) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(monthly))))
	}

	saved := pools[domain.Parent1].Remaining() + pools[domain.Parent2].Remaining()
	used := o.Rules.TotalDays - saved

	o.Logger.Debugf("strategy %s: %d periods, %d months, %d days used, %d warnings",
		strategy, len(periods), len(monthly), used, len(warnings))

	return domain.OptimizationResult{
		Strategy:             strategy,
		Parent1Months:        req.Parent1Months,
		Parent2Months:        req.Parent2Months,
		Periods:              periods,
		Monthly:              monthly,
		TotalIncome:          total,
		AverageMonthlyIncome: avg,
		DaysUsed:             used,
		DaysSaved:            saved,
		Warnings:             warnings,
	}, nil
}
