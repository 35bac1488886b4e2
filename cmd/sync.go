package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/course-sim/course-sim/sim"
	csync "github.com/course-sim/course-sim/sim/sync"
)

var (
	// Meeting-analysis flags
	quantumSec     int64   // time quantum for schedule discretization
	meetThresholdM float64 // distance below which a meeting counts as optimal
	roundMinFlag   int64   // golfer round duration in minutes (0 = first scenario default)
	topMeetings    int     // number of top-ranked opportunities to print
)

// syncCmd analyzes structural meeting opportunities between a golfer
// group's cycle and the beverage cart's reverse cycle without running the
// stochastic simulation.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rank golfer/beverage-cart meeting opportunities",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if courseDir == "" {
			logrus.Fatalf("Course directory not provided. Exiting analysis.")
		}
		_, cfg, err := loadCourse(courseDir)
		if err != nil {
			logrus.Fatalf("Loading course: %v", err)
		}
		if !cfg.BevCart.Enabled {
			logrus.Fatalf("Course config has no beverage cart enabled; nothing to synchronize.")
		}

		roundMin := roundMinFlag
		if roundMin == 0 {
			roundMin = cfg.Scenarios[0].RoundMin
		}
		points := holePoints(cfg)
		golfer := sim.Loop{Points: points, CycleSec: roundMin * 60}
		cart := sim.Loop{Points: sim.ReverseHoles(points), CycleSec: cfg.BevCart.CycleMin * 60, Wrap: true}

		golferWps, err := csync.Quantize(golfer, quantumSec)
		if err != nil {
			logrus.Fatalf("Quantizing golfer schedule: %v", err)
		}
		cartWps, err := csync.Quantize(cart, quantumSec)
		if err != nil {
			logrus.Fatalf("Quantizing cart schedule: %v", err)
		}

		meetings, err := csync.FindMeetings(golferWps, cartWps, golfer.CycleSec, cart.CycleSec, quantumSec, meetThresholdM)
		if err != nil {
			logrus.Fatalf("Meeting analysis failed: %v", err)
		}

		syncCycle := csync.SyncCycleSec(golfer.CycleSec, cart.CycleSec)
		fmt.Println("=== Meeting Opportunities ===")
		fmt.Printf("Golfer cycle         : %d s\n", golfer.CycleSec)
		fmt.Printf("Cart cycle           : %d s\n", cart.CycleSec)
		fmt.Printf("Synchronized cycle   : %d s\n", syncCycle)
		fmt.Printf("Opportunities < %.0fm : %d\n", meetThresholdM, len(meetings))
		for i, m := range meetings {
			if i >= topMeetings {
				break
			}
			fmt.Printf("t=%5ds dist=%6.1fm golfer@hole %d, cart@hole %d\n", m.Sec, m.DistanceM, m.AHole, m.BHole)
		}
	},
}

func init() {
	syncCmd.Flags().Int64Var(&quantumSec, "quantum", 60, "Time quantum in seconds")
	syncCmd.Flags().Float64Var(&meetThresholdM, "threshold", 100, "Meeting distance threshold in meters")
	syncCmd.Flags().Int64Var(&roundMinFlag, "round-min", 0, "Golfer round duration in minutes (0 = scenario default)")
	syncCmd.Flags().IntVar(&topMeetings, "top", 10, "Number of top opportunities to print")

	rootCmd.AddCommand(syncCmd)
}
