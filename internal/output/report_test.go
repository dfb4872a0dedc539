package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/domain"
)

func reportResults(t *testing.T) []domain.OptimizationResult {
	t.Helper()
	o := calculation.NewDistributionOptimizer(domain.DefaultRuleSet())
	results, err := o.Optimize(domain.PlanRequest{
		Parent1: domain.ParentInput{
			GrossMonthlyIncome: decimal.NewFromInt(30000),
			MunicipalTaxRate:   decimal.NewFromInt(32),
		},
		Parent2: domain.ParentInput{
			GrossMonthlyIncome: decimal.NewFromInt(55000),
			MunicipalTaxRate:   decimal.NewFromInt(32),
		},
		StartDate:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalMonths:        12,
		Parent1Months:      6,
		Parent2Months:      6,
		DaysPerWeek:        7,
		MinHouseholdIncome: decimal.NewFromInt(60000),
	})
	require.NoError(t, err)
	return results
}

func TestGenerateConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	rg := NewReportGenerator(&buf)
	require.NoError(t, rg.GenerateReport(reportResults(t), "console"))

	out := buf.String()
	assert.Contains(t, out, "PARENTAL LEAVE DISTRIBUTION ANALYSIS")
	assert.Contains(t, out, "maximize-income")
	assert.Contains(t, out, "save-days")
	assert.Contains(t, out, "LEAVE PERIODS:")
	assert.Contains(t, out, "(initial)")
	assert.Contains(t, out, "MONTHLY INCOME:")
	assert.Contains(t, out, "WARNINGS:", "the 60000 floor is unreachable, warnings expected")
}

func TestGenerateJSONReport(t *testing.T) {
	var buf bytes.Buffer
	rg := NewReportGenerator(&buf)
	require.NoError(t, rg.GenerateReport(reportResults(t), "json"))

	var decoded []domain.OptimizationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, domain.StrategyMaximizeIncome, decoded[0].Strategy)
	assert.NotEmpty(t, decoded[0].Periods)
}

func TestGenerateCSVReport(t *testing.T) {
	var buf bytes.Buffer
	rg := NewReportGenerator(&buf)
	results := reportResults(t)
	require.NoError(t, rg.GenerateReport(results, "csv"))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	months := len(results[0].Monthly) + len(results[1].Monthly)
	assert.Len(t, records, months+1, "header plus one row per month per strategy")
	assert.Equal(t, "Strategy", records[0][0])
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	rg := NewReportGenerator(&bytes.Buffer{})
	err := rg.GenerateReport(nil, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1234 kr", FormatCurrency(decimal.NewFromFloat(1234.4)))
	assert.Equal(t, "12.50%", FormatPercentage(decimal.NewFromFloat(12.5)))
}
