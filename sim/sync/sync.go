// Package sync analyzes structural meeting opportunities between two
// periodic agents (a golfer group's hole-to-hole cycle and the beverage
// cart's reverse cycle) without running the stochastic simulation. Both
// schedules are discretized on a shared time quantum and compared over the
// synchronized cycle, the LCM of the two cycle durations.
package sync

import (
	"fmt"
	"sort"

	"github.com/course-sim/course-sim/sim"
	"github.com/course-sim/course-sim/sim/course"
)

// Waypoint is one quantized sample of an agent's deterministic schedule.
type Waypoint struct {
	Sec  int64   `json:"sec"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Hole int     `json:"hole"`
}

// Quantize samples a movement loop at the given time quantum, producing
// waypoints at exact quantum multiples from 0 through the full cycle
// duration inclusive.
func Quantize(l sim.Loop, quantumSec int64) ([]Waypoint, error) {
	if quantumSec <= 0 {
		return nil, fmt.Errorf("time quantum must be positive, got %d", quantumSec)
	}
	if l.CycleSec <= 0 || l.CycleSec%quantumSec != 0 {
		return nil, fmt.Errorf("cycle duration %d s is not a multiple of quantum %d s", l.CycleSec, quantumSec)
	}

	waypoints := make([]Waypoint, 0, l.CycleSec/quantumSec+1)
	for t := int64(0); t <= l.CycleSec; t += quantumSec {
		lat, lon := l.PositionAt(t)
		waypoints = append(waypoints, Waypoint{Sec: t, Lon: lon, Lat: lat, Hole: l.HoleAt(t)})
	}
	return waypoints, nil
}

// ValidateWaypoints checks the quantization invariants: consecutive
// timestamps differ by exactly one quantum, and the final timestamp equals
// the declared cycle duration within one quantum of tolerance.
func ValidateWaypoints(ws []Waypoint, quantumSec, cycleSec int64) error {
	if len(ws) == 0 {
		return fmt.Errorf("no waypoints")
	}
	for i := 1; i < len(ws); i++ {
		if ws[i].Sec-ws[i-1].Sec != quantumSec {
			return fmt.Errorf("waypoints %d and %d are %d s apart, want %d s",
				i-1, i, ws[i].Sec-ws[i-1].Sec, quantumSec)
		}
	}
	last := ws[len(ws)-1].Sec
	if diff := cycleSec - last; diff < -quantumSec || diff > quantumSec {
		return fmt.Errorf("final waypoint at %d s, want cycle duration %d s within one quantum", last, cycleSec)
	}
	return nil
}

// gcd computes the greatest common divisor of two positive durations.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// SyncCycleSec returns the synchronized cycle length: the LCM of the two
// agents' cycle durations. Both agents return to a congruent phase
// simultaneously at the end of the synchronized cycle.
func SyncCycleSec(aCycleSec, bCycleSec int64) int64 {
	return aCycleSec / gcd(aCycleSec, bCycleSec) * bCycleSec
}

// Meeting is one quantum at which the two agents are within the distance
// threshold of each other.
type Meeting struct {
	Sec       int64   `json:"sec"`
	DistanceM float64 `json:"distance_m"`
	AHole     int     `json:"a_hole"`
	BHole     int     `json:"b_hole"`
}

// FindMeetings scans every quantum of the synchronized cycle where both
// agents have waypoints and collects those within thresholdM of each
// other, ranked by ascending distance.
func FindMeetings(a, b []Waypoint, aCycleSec, bCycleSec, quantumSec int64, thresholdM float64) ([]Meeting, error) {
	if err := ValidateWaypoints(a, quantumSec, aCycleSec); err != nil {
		return nil, fmt.Errorf("agent A: %w", err)
	}
	if err := ValidateWaypoints(b, quantumSec, bCycleSec); err != nil {
		return nil, fmt.Errorf("agent B: %w", err)
	}

	syncCycle := SyncCycleSec(aCycleSec, bCycleSec)
	meetings := make([]Meeting, 0)
	for t := int64(0); t < syncCycle; t += quantumSec {
		wa := a[(t%aCycleSec)/quantumSec]
		wb := b[(t%bCycleSec)/quantumSec]
		d := course.HaversineM(wa.Lat, wa.Lon, wb.Lat, wb.Lon)
		if d <= thresholdM {
			meetings = append(meetings, Meeting{Sec: t, DistanceM: d, AHole: wa.Hole, BHole: wb.Hole})
		}
	}

	sort.Slice(meetings, func(i, j int) bool {
		if meetings[i].DistanceM != meetings[j].DistanceM {
			return meetings[i].DistanceM < meetings[j].DistanceM
		}
		return meetings[i].Sec < meetings[j].Sec
	})
	return meetings, nil
}
