package opt

import (
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/course-sim/course-sim/sim"
)

// Targets are the service-level thresholds a staffing level must meet.
type Targets struct {
	OnTimeRate    float64 `json:"on_time_rate"`    // Wilson lower bound must reach this
	MaxFailedRate float64 `json:"max_failed_rate"` // mean failed_rate must not exceed this
	MaxP90Sec     float64 `json:"max_p90_sec"`     // mean delivery p90 must not exceed this
	Confidence    float64 `json:"confidence"`      // Wilson interval confidence level
}

// LevelStats aggregates the replication KPIs of one staffing level.
type LevelStats struct {
	Runners int `json:"runners"`
	Runs    int `json:"runs"`
	Missing int `json:"missing"`

	TotalOrders  int `json:"total_orders"`
	OnTimePooled int `json:"on_time_pooled"`

	OnTimeMean              float64 `json:"on_time_mean"`
	OnTimeWilsonLow         float64 `json:"on_time_wilson_low"`
	OnTimeWilsonHigh        float64 `json:"on_time_wilson_high"`
	FailedRateMean          float64 `json:"failed_rate_mean"`
	P90MeanSec              float64 `json:"p90_mean_sec"`
	P90Defined              bool    `json:"p90_defined"`
	OrdersPerRunnerHourMean float64 `json:"orders_per_runner_hour_mean"`

	MeetsTargets bool `json:"meets_targets"`
	Frontier     bool `json:"frontier"`
	Knee         bool `json:"knee"`
}

// Recommendation is the optimizer's structured output: the full sweep and
// the chosen minimal configuration (nil when no level qualifies).
type Recommendation struct {
	Targets     Targets      `json:"targets"`
	Levels      []LevelStats `json:"levels"`
	Recommended *int         `json:"recommended"`
}

// AggregateLevel pools replication KPIs into one LevelStats. The Wilson
// interval is computed on pooled on-time successes over pooled order
// totals across all replications. Missing replications reduce Runs but are
// never substituted with synthetic samples.
func AggregateLevel(runners int, metrics []sim.RunMetrics, missing int, t Targets) LevelStats {
	ls := LevelStats{Runners: runners, Runs: len(metrics), Missing: missing}

	onTimeRates := make([]float64, 0, len(metrics))
	failedRates := make([]float64, 0, len(metrics))
	ophRates := make([]float64, 0, len(metrics))
	p90s := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		ls.TotalOrders += m.TotalOrders
		ls.OnTimePooled += m.OnTime
		onTimeRates = append(onTimeRates, m.OnTimeRate)
		failedRates = append(failedRates, m.FailedRate)
		ophRates = append(ophRates, m.OrdersPerRunnerHour)
		if m.Delivered > 0 {
			p90s = append(p90s, m.DeliveryCycleTimeP90Sec)
		}
	}

	if len(metrics) > 0 {
		ls.OnTimeMean = stat.Mean(onTimeRates, nil)
		ls.FailedRateMean = stat.Mean(failedRates, nil)
		ls.OrdersPerRunnerHourMean = stat.Mean(ophRates, nil)
	}
	if len(p90s) > 0 {
		ls.P90Defined = true
		ls.P90MeanSec = stat.Mean(p90s, nil)
	}

	ls.OnTimeWilsonLow, ls.OnTimeWilsonHigh = WilsonCI(ls.OnTimePooled, ls.TotalOrders, t.Confidence)

	// Zero pooled orders yields a (0,0) interval and never meets targets.
	ls.MeetsTargets = ls.TotalOrders > 0 &&
		ls.OnTimeWilsonLow >= t.OnTimeRate &&
		ls.FailedRateMean <= t.MaxFailedRate &&
		(!ls.P90Defined || ls.P90MeanSec <= t.MaxP90Sec)

	return ls
}

// Select orders the sweep by staffing level, picks the smallest qualifying
// level, and classifies qualifying points as frontier (Pareto-optimal
// runner-count vs on-time tradeoff) and knee (maximal marginal on-time
// gain per added runner).
func Select(levels []LevelStats, t Targets) Recommendation {
	sorted := make([]LevelStats, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Runners < sorted[j].Runners })

	rec := Recommendation{Targets: t, Levels: sorted}

	for i := range rec.Levels {
		if rec.Levels[i].MeetsTargets {
			r := rec.Levels[i].Runners
			rec.Recommended = &r
			break
		}
	}

	markFrontier(rec.Levels)
	markKnee(rec.Levels)
	return rec
}

// markFrontier flags qualifying levels not dominated by another qualifying
// level with fewer or equal runners and at least equal on-time mean.
func markFrontier(levels []LevelStats) {
	for i := range levels {
		if !levels[i].MeetsTargets {
			continue
		}
		dominated := false
		for j := range levels {
			if i == j || !levels[j].MeetsTargets {
				continue
			}
			noWorse := levels[j].Runners <= levels[i].Runners && levels[j].OnTimeMean >= levels[i].OnTimeMean
			strictlyBetter := levels[j].Runners < levels[i].Runners || levels[j].OnTimeMean > levels[i].OnTimeMean
			if noWorse && strictlyBetter {
				dominated = true
				break
			}
		}
		levels[i].Frontier = !dominated
	}
}

// markKnee flags the qualifying level with the largest marginal on-time
// improvement per added runner relative to the previous sweep point. A
// single qualifying level is its own knee.
func markKnee(levels []LevelStats) {
	bestIdx := -1
	bestGain := 0.0
	for i := range levels {
		if !levels[i].MeetsTargets {
			continue
		}
		if i == 0 {
			if bestIdx < 0 {
				bestIdx = i
			}
			continue
		}
		deltaRunners := levels[i].Runners - levels[i-1].Runners
		if deltaRunners <= 0 {
			continue
		}
		gain := (levels[i].OnTimeMean - levels[i-1].OnTimeMean) / float64(deltaRunners)
		if bestIdx < 0 || gain > bestGain {
			bestIdx = i
			bestGain = gain
		}
	}
	if bestIdx >= 0 {
		levels[bestIdx].Knee = true
	}
}

// Sweep runs the full staffing sweep: runsPer replications per level on
// the worker pool, aggregation with Wilson intervals, then selection. The
// optimizer only consumes aggregates after every replication of a level
// has completed or been confirmed aborted.
func Sweep(sc Scenario, levels []int, runsPer, workers int, t Targets) (Recommendation, error) {
	stats := make([]LevelStats, 0, len(levels))
	for _, runners := range levels {
		cfg := sc
		cfg.Delivery.NumRunners = runners

		res, err := RunExperiment(cfg, runsPer, workers)
		if err != nil {
			return Recommendation{}, err
		}
		ls := AggregateLevel(runners, res.Metrics, res.Missing, t)
		logrus.Infof("runners=%d: runs=%d missing=%d on_time_wilson_low=%.3f failed_mean=%.3f meets=%v",
			runners, ls.Runs, ls.Missing, ls.OnTimeWilsonLow, ls.FailedRateMean, ls.MeetsTargets)
		stats = append(stats, ls)
	}
	return Select(stats, t), nil
}
