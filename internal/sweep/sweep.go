package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/domain"
)

// Sweeper evaluates every month split of a request, from all months on
// parent1 to all months on parent2, and picks the best split per
// strategy. Evaluations are memoized so interactive consumers can re-run
// a sweep with one parameter changed without recomputing the whole grid.
type Sweeper struct {
	Optimizer *calculation.DistributionOptimizer
	Logger    calculation.Logger

	mu    sync.Mutex
	cache map[string][]domain.OptimizationResult
}

// NewSweeper creates a sweeper around the given optimizer.
func NewSweeper(optimizer *calculation.DistributionOptimizer) *Sweeper {
	return &Sweeper{
		Optimizer: optimizer,
		Logger:    calculation.NopLogger{},
		cache:     make(map[string][]domain.OptimizationResult),
	}
}

// Point is one grid cell: the split and the per-strategy summaries.
type Point struct {
	Parent1Months int                       `json:"parent1_months"`
	Parent2Months int                       `json:"parent2_months"`
	Candidates    []domain.CandidateSummary `json:"candidates"`
}

// Result is a full sweep: all grid points plus the winning split for
// each strategy.
type Result struct {
	Points []Point                                     `json:"points"`
	Best   map[domain.Strategy]domain.CandidateSummary `json:"best"`
}

// Run sweeps parent1's share over 0..TotalMonths. The request's own
// split fields are ignored; everything else is held fixed. Cancellation
// is checked between grid cells.
func (s *Sweeper) Run(ctx context.Context, req domain.PlanRequest) (*Result, error) {
	result := &Result{
		Best: make(map[domain.Strategy]domain.CandidateSummary),
	}

	for p1 := 0; p1 <= req.TotalMonths; p1++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidate := req.WithSplit(p1)
		results, err := s.evaluate(candidate)
		if err != nil {
			return nil, err
		}

		point := Point{
			Parent1Months: candidate.Parent1Months,
			Parent2Months: candidate.Parent2Months,
		}
		for _, r := range results {
			summary := r.Summary()
			point.Candidates = append(point.Candidates, summary)
			if better(summary, result.Best[r.Strategy]) {
				result.Best[r.Strategy] = summary
			}
		}
		result.Points = append(result.Points, point)
	}

	s.Logger.Debugf("sweep complete: %d points evaluated", len(result.Points))
	return result, nil
}

// evaluate runs the optimizer for one split, consulting the memo cache
// first.
func (s *Sweeper) evaluate(req domain.PlanRequest) ([]domain.OptimizationResult, error) {
	key := cacheKey(req)

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	results, err := s.Optimizer.Optimize(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = results
	s.mu.Unlock()
	return results, nil
}

// CacheSize returns the number of memoized evaluations.
func (s *Sweeper) CacheSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// better ranks a candidate against the incumbent for its strategy.
// Candidates meeting the income floor beat those that do not; within the
// same bracket maximize-income ranks by total income and save-days by
// saved days, with total income as the tie-breaker.
func better(candidate, incumbent domain.CandidateSummary) bool {
	if incumbent.Strategy == "" {
		return true
	}
	if candidate.MeetsMinimum != incumbent.MeetsMinimum {
		return candidate.MeetsMinimum
	}
	if candidate.Strategy == domain.StrategySaveDays {
		if candidate.DaysSaved != incumbent.DaysSaved {
			return candidate.DaysSaved > incumbent.DaysSaved
		}
	}
	return candidate.TotalIncome.GreaterThan(incumbent.TotalIncome)
}

// cacheKey folds every input the engine reads into a string. Two
// requests with the same key always produce the same results.
func cacheKey(req domain.PlanRequest) string {
	return fmt.Sprintf("%s|%s|%t|%s|%s|%t|%s|%d|%d|%d|%d|%d|%s",
		req.Parent1.GrossMonthlyIncome, req.Parent1.MunicipalTaxRate, req.Parent1.HasCollectiveAgreement,
		req.Parent2.GrossMonthlyIncome, req.Parent2.MunicipalTaxRate, req.Parent2.HasCollectiveAgreement,
		req.StartDate.Format("2006-01-02"),
		req.TotalMonths, req.Parent1Months, req.Parent2Months,
		req.DaysPerWeek, req.SimultaneousMonths,
		req.MinHouseholdIncome)
}
