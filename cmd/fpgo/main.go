package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fpgo/leave-planner/internal/api"
	"github.com/fpgo/leave-planner/internal/calculation"
	"github.com/fpgo/leave-planner/internal/compare"
	"github.com/fpgo/leave-planner/internal/config"
	"github.com/fpgo/leave-planner/internal/domain"
	"github.com/fpgo/leave-planner/internal/output"
	"github.com/fpgo/leave-planner/internal/store"
	"github.com/fpgo/leave-planner/internal/sweep"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fpgo",
	Short: "Parental leave distribution planner",
	Long:  "Plans how two parents split the parental benefit day pool and projects household income per strategy",
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [plan-file]",
	Short: "Evaluate a plan under every strategy",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, rules := loadPlan(cmd, args[0])

		optimizer := calculation.NewDistributionOptimizer(rules)
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			optimizer.WithLogger(simpleCLILogger{})
		}

		results, err := optimizer.Optimize(doc.Plan)
		if err != nil {
			log.Fatalf("Optimization failed: %v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		if err := output.NewReportGenerator(os.Stdout).GenerateReport(results, format); err != nil {
			log.Fatalf("Report generation failed: %v", err)
		}
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep [plan-file]",
	Short: "Evaluate every month split of a plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, rules := loadPlan(cmd, args[0])

		sweeper := sweep.NewSweeper(calculation.NewDistributionOptimizer(rules))
		result, err := sweeper.Run(context.Background(), doc.Plan)
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}

		fmt.Printf("%-8s %-22s %-22s\n", "Split", "Income (maximize)", "Days saved (save-days)")
		fmt.Println(strings.Repeat("-", 54))
		for _, point := range result.Points {
			var income, saved string
			for _, c := range point.Candidates {
				switch c.Strategy {
				case domain.StrategyMaximizeIncome:
					income = output.FormatCurrency(c.TotalIncome)
				case domain.StrategySaveDays:
					saved = strconv.Itoa(c.DaysSaved)
				}
			}
			fmt.Printf("%-8s %-22s %-22s\n",
				fmt.Sprintf("%d/%d", point.Parent1Months, point.Parent2Months), income, saved)
		}
		fmt.Println()
		for _, strategy := range domain.Strategies() {
			if best, ok := result.Best[strategy]; ok {
				fmt.Printf("Best for %s: %d/%d (%s, %d days saved)\n",
					strategy, best.Parent1Months, best.Parent2Months,
					output.FormatCurrency(best.TotalIncome), best.DaysSaved)
			}
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare the plan's split against alternatives",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, rules := loadPlan(cmd, args[0])

		strategyName, _ := cmd.Flags().GetString("strategy")
		strategy := domain.Strategy(strategyName)

		withStr, _ := cmd.Flags().GetString("with")
		splits, err := parseSplits(withStr, doc.Plan)
		if err != nil {
			log.Fatal(err)
		}

		engine := compare.NewCompareEngine(calculation.NewDistributionOptimizer(rules))
		compSet, err := engine.Compare(context.Background(), doc.Plan, strategy, splits)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "table":
			fmt.Print((&compare.TableFormatter{}).Format(compSet))
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)
		case "json":
			out, err := (&compare.JSONFormatter{}).Format(compSet)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)
		default:
			log.Fatalf("Unsupported format: %s", format)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		rules := loadRules(cmd)

		dbPath, _ := cmd.Flags().GetString("db")
		var planStore *store.Store
		if dbPath != "" {
			var err error
			planStore, err = store.New(dbPath)
			if err != nil {
				log.Fatalf("Failed to open store: %v", err)
			}
			defer planStore.Close()
		}

		addr, _ := cmd.Flags().GetString("addr")
		router := api.NewRouter(api.NewHandler(rules, planStore))
		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil {
			log.Fatal(err)
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "fpgo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

// loadPlan loads and validates the plan file, applying the --rules flag
// or the file's embedded rules section.
func loadPlan(cmd *cobra.Command, planPath string) (*config.PlanDocument, domain.BenefitRuleSet) {
	doc, err := config.NewInputParser().LoadFromFile(planPath)
	if err != nil {
		log.Fatal(err)
	}

	rules := loadRules(cmd)
	if doc.Rules != nil {
		rules = *doc.Rules
	}
	return doc, rules
}

func loadRules(cmd *cobra.Command) domain.BenefitRuleSet {
	rulesPath, _ := cmd.Flags().GetString("rules")
	if rulesPath == "" {
		return domain.DefaultRuleSet()
	}
	rules, err := config.NewInputParser().LoadRulesFromFile(rulesPath)
	if err != nil {
		log.Fatal(err)
	}
	return *rules
}

// parseSplits parses the --with flag, a comma-separated list of parent1
// month counts. An empty flag compares against the neighboring splits.
func parseSplits(withStr string, plan domain.PlanRequest) ([]int, error) {
	if withStr == "" {
		splits := []int{}
		if plan.Parent1Months > 0 {
			splits = append(splits, plan.Parent1Months-1)
		}
		if plan.Parent1Months < plan.TotalMonths {
			splits = append(splits, plan.Parent1Months+1)
		}
		return splits, nil
	}

	parts := strings.Split(withStr, ",")
	splits := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid split %q in --with", part)
		}
		if value < 0 || value > plan.TotalMonths {
			return nil, fmt.Errorf("split %d out of range 0..%d", value, plan.TotalMonths)
		}
		splits = append(splits, value)
	}
	return splits, nil
}

func init() {
	optimizeCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	optimizeCmd.Flags().String("rules", "", "Path to a benefit rules file")
	optimizeCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	sweepCmd.Flags().String("rules", "", "Path to a benefit rules file")

	compareCmd.Flags().String("with", "", "Comma-separated parent1 month counts to compare against")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().String("strategy", string(domain.StrategyMaximizeIncome), "Strategy to compare under")
	compareCmd.Flags().String("rules", "", "Path to a benefit rules file")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("db", "", "SQLite database path for plan persistence (empty disables)")
	serveCmd.Flags().String("rules", "", "Path to a benefit rules file")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
