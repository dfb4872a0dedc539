package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

// ReportGenerator handles report generation in various formats.
type ReportGenerator struct {
	Writer io.Writer
}

// NewReportGenerator creates a report generator writing to w.
func NewReportGenerator(w io.Writer) *ReportGenerator {
	return &ReportGenerator{Writer: w}
}

// GenerateReport writes the optimizer results in the specified format.
func (rg *ReportGenerator) GenerateReport(results []domain.OptimizationResult, format string) error {
	switch format {
	case "console":
		return rg.GenerateConsoleReport(results)
	case "json":
		return rg.GenerateJSONReport(results)
	case "csv":
		return rg.GenerateCSVReport(results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport writes a detailed human-readable report.
func (rg *ReportGenerator) GenerateConsoleReport(results []domain.OptimizationResult) error {
	w := rg.Writer
	fmt.Fprintln(w, strings.Repeat("=", 78))
	fmt.Fprintln(w, "PARENTAL LEAVE DISTRIBUTION ANALYSIS")
	fmt.Fprintln(w, strings.Repeat("=", 78))

	for i, r := range results {
		fmt.Fprintf(w, "\nSTRATEGY %d: %s (split %d/%d)\n", i+1, r.Strategy, r.Parent1Months, r.Parent2Months)
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintf(w, "Total household income:   %s\n", FormatCurrency(r.TotalIncome))
		fmt.Fprintf(w, "Average monthly income:   %s\n", FormatCurrency(r.AverageMonthlyIncome))
		fmt.Fprintf(w, "Benefit days used:        %d\n", r.DaysUsed)
		fmt.Fprintf(w, "Benefit days saved:       %d\n", r.DaysSaved)

		fmt.Fprintln(w, "\nLEAVE PERIODS:")
		for _, p := range r.Periods {
			marker := ""
			if p.IsInitialTenDayPeriod {
				marker = " (initial)"
			} else if p.Simultaneous {
				marker = " (simultaneous)"
			} else if p.IsPreferenceFiller {
				marker = " (unpaid)"
			}
			fmt.Fprintf(w, "  %s - %s  %-8s %-5s %d days/week, %d benefit days%s\n",
				p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"),
				p.Parent, p.Level, p.DaysPerWeek, p.BenefitDays, marker)
		}

		fmt.Fprintln(w, "\nMONTHLY INCOME:")
		for _, m := range r.Monthly {
			coverage := "full"
			if !m.FullyCovered() {
				coverage = fmt.Sprintf("%d/%d days", m.TotalCalendarDays, m.MonthLength)
			}
			fmt.Fprintf(w, "  %s  %14s  (%s)\n",
				m.MonthStart.Format("2006-01"), FormatCurrency(m.TotalIncome), coverage)
		}

		if len(r.Warnings) > 0 {
			fmt.Fprintln(w, "\nWARNINGS:")
			for _, warning := range r.Warnings {
				fmt.Fprintf(w, "  ! %s\n", warning.Message)
			}
		}
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 78))
	return nil
}

// GenerateJSONReport writes the results as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(results []domain.OptimizationResult) error {
	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	_, err = rg.Writer.Write(append(jsonData, '\n'))
	return err
}

// GenerateCSVReport writes one row per calendar month per strategy.
func (rg *ReportGenerator) GenerateCSVReport(results []domain.OptimizationResult) error {
	writer := csv.NewWriter(rg.Writer)
	defer writer.Flush()

	header := []string{
		"Strategy", "Parent1 Months", "Parent2 Months",
		"Month", "Household Income", "Covered Days", "Month Length",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		for _, m := range r.Monthly {
			row := []string{
				string(r.Strategy),
				fmt.Sprintf("%d", r.Parent1Months),
				fmt.Sprintf("%d", r.Parent2Months),
				m.MonthStart.Format("2006-01"),
				m.TotalIncome.StringFixed(2),
				fmt.Sprintf("%d", m.TotalCalendarDays),
				fmt.Sprintf("%d", m.MonthLength),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	return writer.Error()
}

// FormatCurrency formats a decimal as whole-krona currency.
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(0) + " kr"
}

// FormatPercentage formats a decimal as percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
