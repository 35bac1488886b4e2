package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/course-sim/course-sim/sim/opt"
)

var (
	// Shared CLI flags for course and policy selection
	courseDir    string  // course directory holding cart_graph.json and course_config.yaml
	scenarioName string  // tee-time/order scenario name from the course config
	logLevel     string  // log verbosity level
	seed         int64   // base seed; replication i uses seed+i
	numRunners   int     // delivery runner pool size
	numRuns      int     // replications per configuration
	blockedHoles []int   // holes whose orders stay queued
	runnerSpeed  float64 // runner speed in m/s (0 = course config default)
	prepTimeMin  int64   // prep time in minutes (-1 = course config default)
	slaMinutes   int64   // SLA window in minutes (0 = course config default)
	outputDir    string  // per-run artifact output directory ("" = no artifacts)
	numWorkers   int     // concurrent replications
	sampleSec    int64   // golfer/cart position sampling interval in seconds
	orderRate    float64 // order arrivals per hour (0 = scenario default)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "course-sim",
	Short: "Discrete-event simulator for on-course delivery staffing",
}

// setupLogging applies the --log flag before any command body runs.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes the replications of a single staffing configuration.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run delivery replications for one staffing configuration",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if courseDir == "" {
			logrus.Fatalf("Course directory not provided. Exiting simulation.")
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

		dc := effectiveDelivery(cfg, numRunners, runnerSpeed, prepTimeMin, slaMinutes, blockedHoles)
		sc := buildScenario(g, cfg, scenario, dc, seed, outputDir, sampleSec)

		logrus.Infof("Starting %d replication(s): course=%s scenario=%s runners=%d seed=%d",
			numRuns, cfg.Name, scenario.Name, dc.NumRunners, seed)
		startTime := time.Now()

		result, err := opt.RunExperiment(sc, numRuns, numWorkers)
		if err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}

		printExperiment(result, time.Since(startTime))
		logrus.Info("Simulation complete.")
	},
}

// printExperiment reports the per-run KPI set of one configuration.
func printExperiment(result opt.ExperimentResult, elapsed time.Duration) {
	fmt.Println("=== Replication Metrics ===")
	fmt.Printf("Runs                 : %d of %d (%d missing)\n",
		len(result.Metrics), result.Requested, result.Missing)
	for _, m := range result.Metrics {
		fmt.Printf("run %s: orders=%d delivered=%d failed=%d on_time=%.3f p90=%.0fs util=%.1f%% oph=%.2f\n",
			m.RunID[:8], m.TotalOrders, m.Delivered, m.Failed,
			m.OnTimeRate, m.DeliveryCycleTimeP90Sec, m.RunnerUtilizationPct, m.OrdersPerRunnerHour)
	}
	fmt.Printf("Wall clock           : %s\n", elapsed.Round(time.Millisecond))
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up shared CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, optimizeCmd, syncCmd} {
		c.Flags().StringVar(&courseDir, "course-dir", "", "Course directory with cart_graph.json and course_config.yaml")
		c.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}
	for _, c := range []*cobra.Command{runCmd, optimizeCmd} {
		c.Flags().StringVar(&scenarioName, "scenario", "", "Tee-time/order scenario name (default: first configured)")
		c.Flags().Int64Var(&seed, "seed", 42, "Base seed; replication i runs with seed+i")
		c.Flags().IntVar(&numRuns, "runs", 8, "Replications per configuration")
		c.Flags().IntSliceVar(&blockedHoles, "blocked-holes", nil, "Holes whose orders stay queued until close")
		c.Flags().Float64Var(&runnerSpeed, "runner-speed", 0, "Runner speed in m/s (0 = course default)")
		c.Flags().Int64Var(&prepTimeMin, "prep-time", -1, "Order prep time in minutes (-1 = course default)")
		c.Flags().Int64Var(&slaMinutes, "sla-minutes", 0, "SLA window in minutes (0 = course default)")
		c.Flags().StringVar(&outputDir, "output-dir", "", "Directory for per-run artifacts (empty = none)")
		c.Flags().IntVar(&numWorkers, "workers", 4, "Concurrent replications")
		c.Flags().Int64Var(&sampleSec, "position-interval", 60, "Golfer/cart position sample interval in seconds")
		c.Flags().Float64Var(&orderRate, "orders-per-hour", 0, "Order arrival rate (0 = scenario default)")
	}
	runCmd.Flags().IntVar(&numRunners, "runners", 1, "Delivery runner pool size")

	rootCmd.AddCommand(runCmd)
}
