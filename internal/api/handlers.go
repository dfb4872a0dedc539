package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/config"
	"github.com/fpgo/leave-planner/internal/domain"
	"github.com/fpgo/leave-planner/internal/store"
	"github.com/fpgo/leave-planner/internal/sweep"
)

// Handler holds the API dependencies. The store may be nil, in which
// case the persistence endpoints answer 503.
type Handler struct {
	Rules  domain.BenefitRuleSet
	Store  *store.Store
	parser *config.InputParser
}

// NewHandler creates a handler around the given rule set and store.
func NewHandler(rules domain.BenefitRuleSet, planStore *store.Store) *Handler {
	return &Handler{
		Rules:  rules,
		Store:  planStore,
		parser: config.NewInputParser(),
	}
}

// Optimize runs the optimizer for a submitted plan.
func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rules := h.Rules
	if req.Rules != nil {
		if err := h.parser.ValidateRules(req.Rules); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid rules", err)
			return
		}
		rules = *req.Rules
	}

	plan, err := config.ResolveIncomeFloor(config.ResolveDefaults(req.Plan), rules)
	if err != nil {
		writeError(w, statusForEngineError(err), "Optimization failed", err)
		return
	}
	results, err := calculation.NewDistributionOptimizer(rules).Optimize(plan)
	if err != nil {
		writeError(w, statusForEngineError(err), "Optimization failed", err)
		return
	}

	writeJSON(w, http.StatusOK, OptimizeResponse{Results: results})
}

// Sweep evaluates every split of a plan described by query parameters.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	plan, err := planFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	plan, err = config.ResolveIncomeFloor(config.ResolveDefaults(plan), h.Rules)
	if err != nil {
		writeError(w, statusForEngineError(err), "Sweep failed", err)
		return
	}

	sweeper := sweep.NewSweeper(calculation.NewDistributionOptimizer(h.Rules))
	result, err := sweeper.Run(r.Context(), plan)
	if err != nil {
		writeError(w, statusForEngineError(err), "Sweep failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SavePlan runs the optimizer and persists the plan with its results.
func (h *Handler) SavePlan(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence is not configured", nil)
		return
	}

	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Plan name is required", nil)
		return
	}

	plan, err := config.ResolveIncomeFloor(config.ResolveDefaults(req.Plan), h.Rules)
	if err != nil {
		writeError(w, statusForEngineError(err), "Optimization failed", err)
		return
	}
	results, err := calculation.NewDistributionOptimizer(h.Rules).Optimize(plan)
	if err != nil {
		writeError(w, statusForEngineError(err), "Optimization failed", err)
		return
	}

	saved := &domain.SavedPlan{Name: req.Name, Request: plan, Results: results}
	if err := h.Store.SavePlan(r.Context(), saved); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// ListPlans lists saved plans as summaries.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence is not configured", nil)
		return
	}

	plans, err := h.Store.ListPlans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	dtos := make([]PlanSummaryDTO, len(plans))
	for i, p := range plans {
		dtos[i] = PlanSummaryDTO{
			ID:            p.ID,
			Name:          p.Name,
			TotalMonths:   p.Request.TotalMonths,
			Parent1Months: p.Request.Parent1Months,
			Parent2Months: p.Request.Parent2Months,
			SavedAt:       p.SavedAt,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPlan returns one saved plan with its full results.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence is not configured", nil)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan id", err)
		return
	}

	plan, err := h.Store.GetPlan(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// DeletePlan removes a saved plan.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence is not configured", nil)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan id", err)
		return
	}

	err = h.Store.DeletePlan(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRules returns the active rule set.
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Rules)
}

// statusForEngineError maps engine validation failures to 400 and
// everything else to 500.
func statusForEngineError(err error) int {
	switch {
	case errors.Is(err, calculation.ErrInvalidInput),
		errors.Is(err, calculation.ErrInvalidTimeline),
		errors.Is(err, calculation.ErrPoolExhausted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
