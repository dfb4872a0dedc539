package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/domain"
)

func sweepRequest() domain.PlanRequest {
	return domain.PlanRequest{
		Parent1: domain.ParentInput{
			GrossMonthlyIncome: decimal.NewFromInt(30000),
			MunicipalTaxRate:   decimal.NewFromInt(32),
		},
		Parent2: domain.ParentInput{
			GrossMonthlyIncome: decimal.NewFromInt(55000),
			MunicipalTaxRate:   decimal.NewFromInt(32),
		},
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalMonths: 12,
		DaysPerWeek: 7,
	}
}

func newSweeper() *Sweeper {
	return NewSweeper(calculation.NewDistributionOptimizer(domain.DefaultRuleSet()))
}

func TestRunCoversEverySplit(t *testing.T) {
	s := newSweeper()
	result, err := s.Run(context.Background(), sweepRequest())
	require.NoError(t, err)

	require.Len(t, result.Points, 13, "0 through 12 months on parent1")
	for i, p := range result.Points {
		assert.Equal(t, i, p.Parent1Months)
		assert.Equal(t, 12-i, p.Parent2Months)
		assert.Len(t, p.Candidates, 2)
	}
}

func TestRunPicksBestPerStrategy(t *testing.T) {
	s := newSweeper()
	result, err := s.Run(context.Background(), sweepRequest())
	require.NoError(t, err)

	best, ok := result.Best[domain.StrategyMaximizeIncome]
	require.True(t, ok)
	for _, p := range result.Points {
		for _, c := range p.Candidates {
			if c.Strategy != domain.StrategyMaximizeIncome {
				continue
			}
			assert.True(t, best.TotalIncome.GreaterThanOrEqual(c.TotalIncome),
				"split %d/%d beats the reported best", c.Parent1Months, c.Parent2Months)
		}
	}

	// The lower earner staying home longer keeps household income up, so
	// the winning split never leans toward the higher earner.
	assert.GreaterOrEqual(t, best.Parent1Months, best.Parent2Months)

	_, ok = result.Best[domain.StrategySaveDays]
	assert.True(t, ok)
}

func TestRunMemoizesEvaluations(t *testing.T) {
	s := newSweeper()
	req := sweepRequest()

	_, err := s.Run(context.Background(), req)
	require.NoError(t, err)
	size := s.CacheSize()
	assert.Equal(t, 13, size)

	// Re-running the same sweep adds nothing to the cache.
	_, err = s.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, size, s.CacheSize())

	// Changing a parameter invalidates nothing but misses the cache.
	req.DaysPerWeek = 5
	_, err = s.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2*size, s.CacheSize())
}

func TestRunHonorsCancellation(t *testing.T) {
	s := newSweeper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, sweepRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPropagatesValidationErrors(t *testing.T) {
	s := newSweeper()
	req := sweepRequest()
	req.TotalMonths = 0

	_, err := s.Run(context.Background(), req)
	assert.ErrorIs(t, err, calculation.ErrInvalidTimeline)
}
