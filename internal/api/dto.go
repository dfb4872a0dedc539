package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

// OptimizeRequest is the body of POST /api/plans/optimize. The rules
// section is optional and defaults to the built-in rule set.
type OptimizeRequest struct {
	Plan  domain.PlanRequest     `json:"plan"`
	Rules *domain.BenefitRuleSet `json:"rules,omitempty"`
}

// OptimizeResponse carries the per-strategy results. Warnings ride along
// inside each result; they never fail the request.
type OptimizeResponse struct {
	Results []domain.OptimizationResult `json:"results"`
}

// SavePlanRequest is the body of POST /api/plans.
type SavePlanRequest struct {
	Name string             `json:"name"`
	Plan domain.PlanRequest `json:"plan"`
}

// PlanSummaryDTO is the listing shape for saved plans.
type PlanSummaryDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	TotalMonths   int    `json:"total_months"`
	Parent1Months int    `json:"parent1_months"`
	Parent2Months int    `json:"parent2_months"`
	SavedAt       string `json:"saved_at"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// planFromQuery decodes a sweep request from URL query parameters, so
// charting clients can issue plain GETs.
func planFromQuery(q url.Values) (domain.PlanRequest, error) {
	var req domain.PlanRequest
	var err error

	if req.Parent1.GrossMonthlyIncome, err = decimalParam(q, "p1_income"); err != nil {
		return req, err
	}
	if req.Parent2.GrossMonthlyIncome, err = decimalParam(q, "p2_income"); err != nil {
		return req, err
	}
	if req.Parent1.MunicipalTaxRate, err = decimalParam(q, "p1_tax"); err != nil {
		return req, err
	}
	if req.Parent2.MunicipalTaxRate, err = decimalParam(q, "p2_tax"); err != nil {
		return req, err
	}
	req.Parent1.HasCollectiveAgreement = q.Get("p1_agreement") == "true"
	req.Parent2.HasCollectiveAgreement = q.Get("p2_agreement") == "true"

	start := q.Get("start")
	if start == "" {
		return req, fmt.Errorf("start is required (YYYY-MM-DD)")
	}
	if req.StartDate, err = time.Parse("2006-01-02", start); err != nil {
		return req, fmt.Errorf("invalid start date %q (use YYYY-MM-DD)", start)
	}

	if req.TotalMonths, err = intParam(q, "total_months", 0); err != nil {
		return req, err
	}
	if req.DaysPerWeek, err = intParam(q, "days_per_week", 7); err != nil {
		return req, err
	}
	if req.SimultaneousMonths, err = intParam(q, "simultaneous_months", 0); err != nil {
		return req, err
	}
	if min := q.Get("min_income"); min != "" {
		if req.MinHouseholdIncome, err = decimal.NewFromString(min); err != nil {
			return req, fmt.Errorf("invalid min_income %q", min)
		}
	}
	return req, nil
}

func decimalParam(q url.Values, key string) (decimal.Decimal, error) {
	raw := q.Get(key)
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}
