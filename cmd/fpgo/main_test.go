package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpgo/leave-planner/internal/domain"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "fpgo", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, expected := range []string{"optimize", "sweep", "compare", "serve", "version"} {
		assert.True(t, names[expected], "missing command %s", expected)
	}
}

func TestParseSplits(t *testing.T) {
	plan := domain.PlanRequest{TotalMonths: 12, Parent1Months: 6}

	splits, err := parseSplits("4, 8", plan)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, splits)

	splits, err = parseSplits("", plan)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 7}, splits, "empty flag compares against neighbors")

	_, err = parseSplits("13", plan)
	assert.Error(t, err)

	_, err = parseSplits("x", plan)
	assert.Error(t, err)
}

func TestParseSplitsAtEdges(t *testing.T) {
	plan := domain.PlanRequest{TotalMonths: 12, Parent1Months: 0}
	splits, err := parseSplits("", plan)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, splits)

	plan.Parent1Months = 12
	splits, err = parseSplits("", plan)
	require.NoError(t, err)
	assert.Equal(t, []int{11}, splits)
}
