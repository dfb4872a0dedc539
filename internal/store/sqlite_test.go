package store

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

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func savedPlan(t *testing.T, name string) *domain.SavedPlan {
	t.Helper()
	req := domain.PlanRequest{
		Parent1: domain.ParentInput{
			Name:               "Alex",
			GrossMonthlyIncome: decimal.NewFromInt(30000),
			MunicipalTaxRate:   decimal.NewFromInt(32),
		},
		Parent2: domain.ParentInput{
			Name:               "Sam",
			GrossMonthlyIncome: decimal.NewFromInt(55000),
			MunicipalTaxRate:   decimal.NewFromInt(32),
		},
		StartDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalMonths:   12,
		Parent1Months: 6,
		Parent2Months: 6,
		DaysPerWeek:   7,
	}
	results, err := calculation.NewDistributionOptimizer(domain.DefaultRuleSet()).Optimize(req)
	require.NoError(t, err)
	return &domain.SavedPlan{Name: name, Request: req, Results: results}
}

func TestSaveAndGetPlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	plan := savedPlan(t, "spring-2025")
	require.NoError(t, s.SavePlan(ctx, plan))
	assert.Positive(t, plan.ID)
	assert.NotEmpty(t, plan.SavedAt)

	loaded, err := s.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "spring-2025", loaded.Name)
	assert.Equal(t, "Alex", loaded.Request.Parent1.Name)
	assert.True(t, loaded.Request.Parent2.GrossMonthlyIncome.Equal(decimal.NewFromInt(55000)))
	require.Len(t, loaded.Results, 2)
	assert.Equal(t, plan.Results[0].DaysUsed, loaded.Results[0].DaysUsed)
	assert.True(t, loaded.Results[0].TotalIncome.Equal(plan.Results[0].TotalIncome))
	assert.Len(t, loaded.Results[0].Periods, len(plan.Results[0].Periods))
}

func TestSavePlanUpsertsByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := savedPlan(t, "draft")
	require.NoError(t, s.SavePlan(ctx, first))

	second := savedPlan(t, "draft")
	second.Request.DaysPerWeek = 5
	require.NoError(t, s.SavePlan(ctx, second))
	assert.Equal(t, first.ID, second.ID, "same name keeps the same row")

	loaded, err := s.GetPlanByName(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Request.DaysPerWeek)

	plans, err := s.ListPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestSavePlanRequiresName(t *testing.T) {
	s := newTestStore(t)
	plan := savedPlan(t, "x")
	plan.Name = ""
	assert.Error(t, s.SavePlan(context.Background(), plan))
}

func TestGetPlanNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetPlan(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetPlanByName(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPlansOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePlan(ctx, savedPlan(t, "first")))
	require.NoError(t, s.SavePlan(ctx, savedPlan(t, "second")))

	plans, err := s.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	// Same-second saves fall back to insertion order, newest first.
	assert.Equal(t, "second", plans[0].Name)
	assert.Equal(t, "first", plans[1].Name)
}

func TestDeletePlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	plan := savedPlan(t, "doomed")
	require.NoError(t, s.SavePlan(ctx, plan))
	require.NoError(t, s.DeletePlan(ctx, plan.ID))

	_, err := s.GetPlan(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeletePlan(ctx, plan.ID), ErrNotFound)
}
