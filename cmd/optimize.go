package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/course-sim/course-sim/sim/opt"
)

// exitNoQualifyingLevel signals that the sweep completed but no staffing
// level met the targets. Distinct from setup failures (exit 1).
const exitNoQualifyingLevel = 2

var (
	// Staffing sweep flags
	minRunners    int     // lowest runner count to evaluate
	maxRunners    int     // highest runner count to evaluate
	targetOnTime  float64 // Wilson lower bound must reach this on-time rate
	maxFailedRate float64 // mean failed rate ceiling
	maxP90Min     float64 // mean delivery-cycle p90 ceiling in minutes
	confidence    float64 // Wilson interval confidence level
)

// optimizeCmd sweeps runner counts and recommends the minimal staffing
// level that meets the service targets.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Sweep runner counts and recommend minimal staffing",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if courseDir == "" {
			logrus.Fatalf("Course directory not provided. Exiting optimization.")
		}
		if minRunners < 1 || maxRunners < minRunners {
			logrus.Fatalf("Invalid sweep range [%d, %d]", minRunners, maxRunners)
		}

		g, cfg, err := loadCourse(courseDir)
		if err != nil {
			logrus.Fatalf("Loading course: %v", err)
		}
		if err := preflightRoutes(g, cfg); err != nil {
			logrus.Fatalf("Routing preflight failed: %v", err)
		}
		scenario, err := cfg.Scenario(scenarioName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if orderRate > 0 {
			scenario.OrdersPerHour = orderRate
		}

		dc := effectiveDelivery(cfg, minRunners, runnerSpeed, prepTimeMin, slaMinutes, blockedHoles)
		sc := buildScenario(g, cfg, scenario, dc, seed, outputDir, sampleSec)

		levels := make([]int, 0, maxRunners-minRunners+1)
		for r := minRunners; r <= maxRunners; r++ {
			levels = append(levels, r)
		}
		targets := opt.Targets{
			OnTimeRate:    targetOnTime,
			MaxFailedRate: maxFailedRate,
			MaxP90Sec:     maxP90Min * 60,
			Confidence:    confidence,
		}

		rec, err := opt.Sweep(sc, levels, numRuns, numWorkers, targets)
		if err != nil {
			logrus.Fatalf("Staffing sweep failed: %v", err)
		}

		reportPath := "recommendation.json"
		if outputDir != "" {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				logrus.Fatalf("Creating output dir: %v", err)
			}
			reportPath = filepath.Join(outputDir, "recommendation.json")
		}
		if err := opt.WriteRecommendation(reportPath, rec); err != nil {
			logrus.Fatalf("Writing recommendation: %v", err)
		}

		printRecommendation(rec)
		if rec.Recommended == nil {
			logrus.Warn("No staffing level meets the targets.")
			os.Exit(exitNoQualifyingLevel)
		}
	},
}

// printRecommendation reports the full sweep, never exiting silently.
func printRecommendation(rec opt.Recommendation) {
	fmt.Println("=== Staffing Sweep ===")
	for _, ls := range rec.Levels {
		marks := ""
		if ls.Frontier {
			marks += " frontier"
		}
		if ls.Knee {
			marks += " knee"
		}
		fmt.Printf("runners=%d runs=%d missing=%d on_time_wilson=[%.3f, %.3f] failed=%.3f p90=%.1fs meets=%v%s\n",
			ls.Runners, ls.Runs, ls.Missing, ls.OnTimeWilsonLow, ls.OnTimeWilsonHigh,
			ls.FailedRateMean, ls.P90MeanSec, ls.MeetsTargets, marks)
	}
	if rec.Recommended != nil {
		fmt.Printf("Recommended runners  : %d\n", *rec.Recommended)
	} else {
		fmt.Println("Recommended runners  : none qualify")
	}
}

func init() {
	optimizeCmd.Flags().IntVar(&minRunners, "min-runners", 1, "Lowest runner count in the sweep")
	optimizeCmd.Flags().IntVar(&maxRunners, "max-runners", 5, "Highest runner count in the sweep")
	optimizeCmd.Flags().Float64Var(&targetOnTime, "target-on-time", 0.90, "On-time rate the Wilson lower bound must reach")
	optimizeCmd.Flags().Float64Var(&maxFailedRate, "max-failed-rate", 0.05, "Mean failed-rate ceiling")
	optimizeCmd.Flags().Float64Var(&maxP90Min, "max-p90", 40, "Mean delivery-cycle p90 ceiling in minutes")
	optimizeCmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Wilson interval confidence level")

	rootCmd.AddCommand(optimizeCmd)
}
