package compare

import (
	"context"
	"fmt"

	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/domain"
)

// CompareEngine evaluates a base month split against alternative splits
// under one strategy and ranks the outcomes.
type CompareEngine struct {
	Optimizer         *calculation.DistributionOptimizer
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a comparison engine.
func NewCompareEngine(optimizer *calculation.DistributionOptimizer) *CompareEngine {
	return &CompareEngine{
		Optimizer:         optimizer,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare evaluates the request's own split as the base, then each
// alternative parent1 share with everything else held fixed.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	req domain.PlanRequest,
	strategy domain.Strategy,
	alternativeSplits []int,
) (*ComparisonSet, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}

	base, err := ce.evaluate(ctx, req, strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base split: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base)

	alternatives := []ComparisonResult{}
	for _, p1 := range alternativeSplits {
		if p1 == req.Parent1Months {
			continue
		}
		alt, err := ce.evaluate(ctx, req.WithSplit(p1), strategy)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate split %d/%d: %w", p1, req.TotalMonths-p1, err)
		}
		row := ce.MetricsCalculator.CalculateMetrics(alt)
		row = ce.MetricsCalculator.CalculateComparison(row, baseResult)
		alternatives = append(alternatives, row)
	}

	compSet := &ComparisonSet{
		Strategy:           strategy,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) evaluate(ctx context.Context, req domain.PlanRequest, strategy domain.Strategy) (domain.OptimizationResult, error) {
	select {
	case <-ctx.Done():
		return domain.OptimizationResult{}, ctx.Err()
	default:
	}

	results, err := ce.Optimizer.Optimize(req)
	if err != nil {
		return domain.OptimizationResult{}, err
	}
	for _, r := range results {
		if r.Strategy == strategy {
			return r, nil
		}
	}
	return domain.OptimizationResult{}, fmt.Errorf("strategy %q missing from results", strategy)
}

// GenerateRecommendations derives human-readable advice from a
// comparison set.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	base := compSet.BaseResult
	if base == nil {
		return recommendations
	}

	var bestIncome, bestSaved *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if bestIncome == nil || alt.TotalIncome.GreaterThan(bestIncome.TotalIncome) {
			bestIncome = alt
		}
		if bestSaved == nil || alt.DaysSaved > bestSaved.DaysSaved {
			bestSaved = alt
		}
	}

	if bestIncome != nil && bestIncome.IncomeDiffFromBase.IsPositive() {
		recommendations = append(recommendations, fmt.Sprintf(
			"Splitting %s instead of %s raises total income by %s (%s%%)",
			bestIncome.Label, base.Label,
			bestIncome.IncomeDiffFromBase.Round(0), bestIncome.IncomePctFromBase))
	}
	if bestSaved != nil && bestSaved.DaysSavedDiff > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Splitting %s saves %d more benefit days than %s",
			bestSaved.Label, bestSaved.DaysSavedDiff, base.Label))
	}
	if base.WarningCount > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"The base split has %d months below the income floor; consider shifting months toward the lower earner",
			base.WarningCount))
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"The base split already performs best among the evaluated alternatives")
	}
	return recommendations
}
