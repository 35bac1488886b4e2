package sim

import (
	"fmt"

	"github.com/course-sim/course-sim/sim/course"
)

// RunnerState is the lifecycle state of a delivery runner.
type RunnerState string

const (
	RunnerIdle       RunnerState = "idle"
	RunnerEnRoute    RunnerState = "en_route_to_order"
	RunnerDelivering RunnerState = "delivering"
	RunnerReturning  RunnerState = "returning"
)

// Runner is a mobile delivery resource. It carries at most one assigned
// order and is owned exclusively by one Engine; never shared across
// replications.
type Runner struct {
	ID      int
	State   RunnerState
	Pos     course.NodeID
	Current *Order

	// busy-time accounting for the utilization metric
	BusySec   int64
	busyStart int64
}

func (r *Runner) String() string {
	return fmt.Sprintf("runner_%d[%s]", r.ID, r.State)
}

// Entity returns the runner's identifier used in trace records.
func (r *Runner) Entity() string {
	return fmt.Sprintf("runner_%d", r.ID)
}

// beginJob transitions idle → en_route_to_order and starts busy accounting.
func (r *Runner) beginJob(o *Order, now int64) {
	r.State = RunnerEnRoute
	r.Current = o
	r.busyStart = now
}

// finishJob transitions returning → idle and closes out busy accounting.
func (r *Runner) finishJob(home course.NodeID, now int64) {
	r.BusySec += now - r.busyStart
	r.State = RunnerIdle
	r.Pos = home
	r.Current = nil
}
