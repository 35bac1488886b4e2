package opt

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/course-sim/course-sim/sim"
	"github.com/course-sim/course-sim/sim/trace"
)

// Scenario bundles everything needed to replicate one staffing
// configuration. The graph, hole list, and agent schedules are read-only;
// every replication builds its own engine, order set, and RNG from
// BaseSeed plus its run index.
type Scenario struct {
	Setup    sim.CourseSetup
	Delivery sim.DeliveryConfig
	Service  sim.ServiceConfig
	Orders   sim.OrderConfig
	Groups   []*sim.GolferGroup
	Cart     *sim.BeverageCart
	BaseSeed int64

	// OutputDir, when non-empty, receives per-run artifact directories.
	OutputDir string
	// PositionSampleSec is the golfer/cart position sampling interval for
	// the coordinates artifact (0 disables sampling).
	PositionSampleSec int64
}

// ExperimentResult collects the per-run KPI sets of one configuration.
// Aborted replications are recorded as missing, never as zero-valued
// samples, so aggregate statistics are not skewed.
type ExperimentResult struct {
	Runners   int
	Requested int
	Metrics   []sim.RunMetrics
	Missing   int
}

// runOutcome is the result slot of a single replication.
type runOutcome struct {
	metrics sim.RunMetrics
	err     error
}

// RunExperiment executes runs independent replications of the scenario on
// an in-process worker pool. Replications share no mutable state and run
// concurrently without locking. A *sim.SetupError aborts the whole
// experiment; a *sim.ReplicationError marks only that run missing. Failed
// replications are not retried: a replication is deterministic in its
// seed, so a retry would fail identically.
func RunExperiment(sc Scenario, runs, workers int) (ExperimentResult, error) {
	if runs <= 0 {
		return ExperimentResult{}, &sim.SetupError{Reason: "replication count must be positive"}
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > runs {
		workers = runs
	}

	outcomes := make([]runOutcome, runs)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = replicate(sc, i)
			}
		}()
	}
	for i := 0; i < runs; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := ExperimentResult{Runners: sc.Delivery.NumRunners, Requested: runs}
	for i, out := range outcomes {
		if out.err == nil {
			result.Metrics = append(result.Metrics, out.metrics)
			continue
		}
		var setupErr *sim.SetupError
		if errors.As(out.err, &setupErr) {
			// A setup defect is identical for every replication; abort.
			return ExperimentResult{}, out.err
		}
		logrus.Warnf("replication %d of config runners=%d aborted, recorded missing: %v",
			i, sc.Delivery.NumRunners, out.err)
		result.Missing++
	}
	return result, nil
}

// replicate runs one replication end to end and optionally writes its
// artifacts. Artifact write failures are aggregation-recoverable: the
// in-memory metrics still count, with a warning.
func replicate(sc Scenario, runIdx int) runOutcome {
	seed := sc.BaseSeed + int64(runIdx)
	engine, err := sim.NewEngine(sc.Setup, sc.Delivery, sc.Service, sc.Orders, sc.Groups, sc.Cart, seed)
	if err != nil {
		return runOutcome{err: err}
	}
	if err := engine.Run(); err != nil {
		return runOutcome{err: err}
	}

	runID := uuid.NewString()
	metrics := sim.CollectMetrics(runID, engine)

	if sc.OutputDir != "" {
		engine.SamplePositions(sc.PositionSampleSec)
		if err := trace.WriteRunArtifacts(sc.OutputDir, runID, engine.Trace, metrics); err != nil {
			logrus.Warnf("writing artifacts for run %s: %v", runID, err)
		}
	}
	return runOutcome{metrics: metrics}
}
