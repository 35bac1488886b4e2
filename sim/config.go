package sim

import (
	"fmt"

	"github.com/course-sim/course-sim/sim/course"
)

// DeliveryConfig groups the runner-side delivery policy knobs.
type DeliveryConfig struct {
	NumRunners     int         // size of the runner pool (must be > 0)
	RunnerSpeedMPS float64     // runner travel speed over the cart-path graph
	PrepTimeSec    int64       // delay between order creation and dispatch eligibility
	SLASec         int64       // max creation-to-delivery window before an order is late
	HandoffSec     int64       // time spent at the hole handing the order over
	BlockedHoles   map[int]bool // holes whose orders stay queued until service closes
}

// ServiceConfig defines the service window in seconds of simulated time.
type ServiceConfig struct {
	OpenSec     int64 // clock value at which the service opens
	DurationSec int64 // length of the service window
}

// CloseSec returns the clock value at which the service closes.
func (s ServiceConfig) CloseSec() int64 { return s.OpenSec + s.DurationSec }

// OrderConfig groups the stochastic order-arrival parameters.
type OrderConfig struct {
	OrdersPerHour float64 // mean Poisson arrival rate across the whole course
}

// CourseSetup bundles the read-only course inputs shared by every
// replication: the routing graph, hole coordinates, and the configured
// clubhouse location used when no node is tagged clubhouse.
type CourseSetup struct {
	Graph        *course.Graph
	Holes        []HolePoint
	ClubhouseLat float64
	ClubhouseLon float64
}

// Validate checks the configuration for fatal setup defects.
func Validate(setup CourseSetup, dc DeliveryConfig, svc ServiceConfig, oc OrderConfig) error {
	if setup.Graph == nil || setup.Graph.NumNodes() == 0 {
		return &SetupError{Reason: "course graph is empty"}
	}
	if len(setup.Holes) == 0 {
		return &SetupError{Reason: "course has no hole coordinates"}
	}
	if dc.NumRunners <= 0 {
		return &SetupError{Reason: fmt.Sprintf("runner count must be positive, got %d", dc.NumRunners)}
	}
	if dc.RunnerSpeedMPS <= 0 {
		return &SetupError{Reason: fmt.Sprintf("runner speed must be positive, got %.3f m/s", dc.RunnerSpeedMPS)}
	}
	if dc.SLASec <= 0 {
		return &SetupError{Reason: "SLA window must be positive"}
	}
	if dc.PrepTimeSec < 0 || dc.HandoffSec < 0 {
		return &SetupError{Reason: "prep and handoff times must be non-negative"}
	}
	if svc.DurationSec <= 0 {
		return &SetupError{Reason: "service window duration must be positive"}
	}
	if oc.OrdersPerHour < 0 {
		return &SetupError{Reason: "order rate must be non-negative"}
	}
	return nil
}
