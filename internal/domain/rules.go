package domain

import (
	"github.com/shopspring/decimal"
)

// BenefitRuleSet contains the statutory parameters for parental benefit.
// The values change year to year, so they are loaded from rules.yaml and
// injected into the calculation engine rather than hard-coded.
type BenefitRuleSet struct {
	Metadata RuleSetMetadata `yaml:"metadata" json:"metadata"`

	// Day pool. TotalDays is the household allotment; each parent holds
	// HighDaysPerParent + LowDaysPerParent of it.
	TotalDays         int `yaml:"total_days" json:"total_days"`
	HighDaysPerParent int `yaml:"high_days_per_parent" json:"high_days_per_parent"`
	LowDaysPerParent  int `yaml:"low_days_per_parent" json:"low_days_per_parent"`

	// InitialDays is the mandatory leave for the second parent in
	// connection with the birth.
	InitialDays int `yaml:"initial_days" json:"initial_days"`

	// High-tier benefit: BenefitRate applied to SGIFactor * annual income,
	// where the income basis is capped at AnnualIncomeCap.
	BenefitRate     decimal.Decimal `yaml:"benefit_rate" json:"benefit_rate"`
	SGIFactor       decimal.Decimal `yaml:"sgi_factor" json:"sgi_factor"`
	AnnualIncomeCap decimal.Decimal `yaml:"annual_income_cap" json:"annual_income_cap"`

	// Low-tier benefit is a flat daily amount, independent of income.
	LowDailyAmount decimal.Decimal `yaml:"low_daily_amount" json:"low_daily_amount"`

	// Collective-agreement top-up: TopUpRate of the parent's uncapped daily
	// income, payable during the first TopUpWindowMonths of continuous leave.
	TopUpRate         decimal.Decimal `yaml:"top_up_rate" json:"top_up_rate"`
	TopUpWindowMonths int             `yaml:"top_up_window_months" json:"top_up_window_months"`

	DaysPerYear int `yaml:"days_per_year" json:"days_per_year"`
}

// RuleSetMetadata records which rule year the numbers belong to.
type RuleSetMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// DefaultRuleSet returns the 2025 Swedish parental-benefit parameters.
// The income cap is 10 price base amounts (10 x 58 800 SEK).
func DefaultRuleSet() BenefitRuleSet {
	return BenefitRuleSet{
		Metadata: RuleSetMetadata{
			DataYear:    2025,
			LastUpdated: "2025-01-01",
			Description: "Swedish parental benefit rules",
		},
		TotalDays:         480,
		HighDaysPerParent: 195,
		LowDaysPerParent:  45,
		InitialDays:       10,
		BenefitRate:       decimal.NewFromFloat(0.80),
		SGIFactor:         decimal.NewFromFloat(0.97),
		AnnualIncomeCap:   decimal.NewFromInt(588000),
		LowDailyAmount:    decimal.NewFromInt(180),
		TopUpRate:         decimal.NewFromFloat(0.10),
		TopUpWindowMonths: 6,
		DaysPerYear:       365,
	}
}

// DaysPerParent returns the per-parent share of the day pool.
func (r BenefitRuleSet) DaysPerParent() int {
	return r.HighDaysPerParent + r.LowDaysPerParent
}
