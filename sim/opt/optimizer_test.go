package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/course-sim/course-sim/sim"
)

var testTargets = Targets{
	OnTimeRate:    0.90,
	MaxFailedRate: 0.05,
	MaxP90Sec:     2400,
	Confidence:    0.95,
}

// levelMetrics fabricates runs identical replications of one staffing level.
func levelMetrics(runs, totalOrders, onTime, failed int, p90 float64) []sim.RunMetrics {
	metrics := make([]sim.RunMetrics, 0, runs)
	for i := 0; i < runs; i++ {
		metrics = append(metrics, sim.RunMetrics{
			TotalOrders:             totalOrders,
			Delivered:               totalOrders - failed,
			Failed:                  failed,
			OnTime:                  onTime,
			OnTimeRate:              float64(onTime) / float64(totalOrders),
			FailedRate:              float64(failed) / float64(totalOrders),
			DeliveryCycleTimeP90Sec: p90,
		})
	}
	return metrics
}

func TestAggregateLevel_PoolsAcrossRuns(t *testing.T) {
	ls := AggregateLevel(2, levelMetrics(8, 100, 96, 3, 2100), 0, testTargets)

	assert.Equal(t, 2, ls.Runners)
	assert.Equal(t, 8, ls.Runs)
	assert.Equal(t, 800, ls.TotalOrders)
	assert.Equal(t, 768, ls.OnTimePooled)
	assert.InDelta(t, 0.96, ls.OnTimeMean, 1e-9)
	assert.InDelta(t, 0.03, ls.FailedRateMean, 1e-9)
	assert.True(t, ls.P90Defined)
	assert.InDelta(t, 2100, ls.P90MeanSec, 1e-9)
	// Pooled Wilson lower bound for 768/800 at 95% confidence.
	assert.InDelta(t, 0.944, ls.OnTimeWilsonLow, 1e-3)
	assert.True(t, ls.MeetsTargets)
}

func TestAggregateLevel_MissingRunsShrinkSampleOnly(t *testing.T) {
	ls := AggregateLevel(2, levelMetrics(7, 100, 96, 3, 2100), 1, testTargets)

	assert.Equal(t, 7, ls.Runs)
	assert.Equal(t, 1, ls.Missing)
	assert.Equal(t, 700, ls.TotalOrders)
	// Means are computed over the seven valid samples, not eight.
	assert.InDelta(t, 0.96, ls.OnTimeMean, 1e-9)
}

func TestAggregateLevel_ZeroOrdersNeverQualifies(t *testing.T) {
	ls := AggregateLevel(1, []sim.RunMetrics{{}, {}, {}, {}}, 0, testTargets)

	assert.Equal(t, 0, ls.TotalOrders)
	assert.Equal(t, 0.0, ls.OnTimeWilsonLow)
	assert.Equal(t, 0.0, ls.OnTimeWilsonHigh)
	assert.False(t, ls.MeetsTargets)
}

func TestAggregateLevel_NoMetrics(t *testing.T) {
	ls := AggregateLevel(3, nil, 8, testTargets)
	assert.Equal(t, 0, ls.Runs)
	assert.Equal(t, 8, ls.Missing)
	assert.False(t, ls.MeetsTargets)
	assert.False(t, ls.P90Defined)
}

func TestSelect_RecommendsMinimalQualifyingLevel(t *testing.T) {
	levels := []LevelStats{
		AggregateLevel(1, levelMetrics(8, 100, 82, 10, 2600), 0, testTargets),
		AggregateLevel(2, levelMetrics(8, 100, 96, 3, 2100), 0, testTargets),
		AggregateLevel(3, levelMetrics(8, 100, 98, 1, 1800), 0, testTargets),
	}
	assert.False(t, levels[0].MeetsTargets)
	assert.True(t, levels[1].MeetsTargets)
	assert.True(t, levels[2].MeetsTargets)

	rec := Select(levels, testTargets)

	if assert.NotNil(t, rec.Recommended) {
		assert.Equal(t, 2, *rec.Recommended)
	}
	assert.Len(t, rec.Levels, 3)

	// Both qualifying levels sit on the runners-vs-on-time frontier; the
	// knee is the bigger marginal gain (1->2 adds 0.14, 2->3 adds 0.02).
	assert.False(t, rec.Levels[0].Frontier)
	assert.True(t, rec.Levels[1].Frontier)
	assert.True(t, rec.Levels[2].Frontier)
	assert.True(t, rec.Levels[1].Knee)
	assert.False(t, rec.Levels[2].Knee)
}

func TestSelect_NoQualifyingLevel(t *testing.T) {
	levels := []LevelStats{
		AggregateLevel(1, levelMetrics(8, 100, 60, 20, 3000), 0, testTargets),
		AggregateLevel(2, levelMetrics(8, 100, 70, 15, 2800), 0, testTargets),
	}

	rec := Select(levels, testTargets)
	assert.Nil(t, rec.Recommended)
	for _, ls := range rec.Levels {
		assert.False(t, ls.Frontier)
		assert.False(t, ls.Knee)
	}
}

func TestSelect_SortsByRunners(t *testing.T) {
	levels := []LevelStats{
		AggregateLevel(3, levelMetrics(4, 100, 98, 1, 1800), 0, testTargets),
		AggregateLevel(1, levelMetrics(4, 100, 82, 10, 2600), 0, testTargets),
		AggregateLevel(2, levelMetrics(4, 100, 96, 3, 2100), 0, testTargets),
	}

	rec := Select(levels, testTargets)
	assert.Equal(t, []int{1, 2, 3}, []int{rec.Levels[0].Runners, rec.Levels[1].Runners, rec.Levels[2].Runners})
	if assert.NotNil(t, rec.Recommended) {
		assert.Equal(t, 2, *rec.Recommended)
	}
}
