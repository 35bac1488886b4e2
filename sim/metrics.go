package sim

import (
	"math"
	"sort"
)

// RunMetrics is the per-replication KPI aggregate, produced once after a
// replication completes and immutable afterwards. Persisted as the
// metrics.json artifact.
type RunMetrics struct {
	RunID      string `json:"run_id"`
	Seed       int64  `json:"seed"`
	NumRunners int    `json:"num_runners"`

	TotalOrders int `json:"total_orders"`
	Delivered   int `json:"delivered"`
	Failed      int `json:"failed"`
	OnTime      int `json:"on_time"`

	OnTimeRate              float64 `json:"on_time_rate"`
	FailedRate              float64 `json:"failed_rate"`
	DeliveryCycleTimeP90Sec float64 `json:"delivery_cycle_time_p90_sec"`
	RunnerUtilizationPct    float64 `json:"runner_utilization_pct"`
	OrdersPerRunnerHour     float64 `json:"orders_per_runner_hour"`

	ServiceSec int64 `json:"service_sec"`
}

// CollectMetrics derives the replication KPIs from the engine's final
// order set and runner busy-time accounting.
func CollectMetrics(runID string, e *Engine) RunMetrics {
	m := RunMetrics{
		RunID:      runID,
		Seed:       e.rng.Seed(),
		NumRunners: e.Delivery.NumRunners,
		ServiceSec: e.Service.DurationSec,
	}

	cycleTimes := make([]float64, 0, len(e.OrderLog))
	for _, o := range e.OrderLog {
		m.TotalOrders++
		switch o.Status {
		case OrderDelivered:
			m.Delivered++
			cycleTimes = append(cycleTimes, float64(o.CycleTimeSec()))
			if o.OnTime() {
				m.OnTime++
			}
		case OrderFailed:
			m.Failed++
		}
	}

	if m.TotalOrders > 0 {
		m.OnTimeRate = float64(m.OnTime) / float64(m.TotalOrders)
		m.FailedRate = float64(m.Failed) / float64(m.TotalOrders)
	}
	if len(cycleTimes) > 0 {
		m.DeliveryCycleTimeP90Sec = Percentile(cycleTimes, 90)
	}

	var busy int64
	for _, r := range e.Runners {
		busy += r.BusySec
	}
	if e.Service.DurationSec > 0 {
		util := float64(busy) / float64(int64(m.NumRunners)*e.Service.DurationSec) * 100.0
		m.RunnerUtilizationPct = clamp(util, 0, 100)

		serviceHours := float64(e.Service.DurationSec) / 3600.0
		m.OrdersPerRunnerHour = float64(m.Delivered) / (float64(m.NumRunners) * serviceHours)
	}

	return m
}

// Percentile computes the p-th percentile of values using linear
// interpolation between ranks. Returns 0 for empty input.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
