package sim

import (
	"github.com/sirupsen/logrus"
)

// GenerateOrders draws the full order arrival sequence for one replication
// up front, so a replication's randomness is fixed before the event loop
// starts. Inter-arrival times are exponential (Poisson process) on the
// orders subsystem; the ordering group is drawn uniformly from groups on
// course at that instant on the holes subsystem. The order's hole is the
// group's hole at creation time.
func GenerateOrders(rng *PartitionedRNG, svc ServiceConfig, oc OrderConfig, dc DeliveryConfig, groups []*GolferGroup) []*Order {
	orders := make([]*Order, 0)
	if oc.OrdersPerHour <= 0 || len(groups) == 0 {
		return orders
	}

	arrivals := rng.ForSubsystem(SubsystemOrders)
	picker := rng.ForSubsystem(SubsystemHoles)
	ratePerSec := oc.OrdersPerHour / 3600.0
	closeSec := svc.CloseSec()

	nextID := 1
	t := svc.OpenSec
	for {
		iat := int64(arrivals.ExpFloat64() / ratePerSec)
		if iat < 1 {
			iat = 1
		}
		t += iat
		if t >= closeSec {
			break
		}

		onCourse := make([]*GolferGroup, 0, len(groups))
		for _, g := range groups {
			if g.OnCourse(t) {
				onCourse = append(onCourse, g)
			}
		}
		if len(onCourse) == 0 {
			// Arrival fell outside any group's round; the process still advances.
			continue
		}

		g := onCourse[picker.Intn(len(onCourse))]
		orders = append(orders, &Order{
			ID:           nextID,
			Hole:         g.HoleAt(t),
			GroupID:      g.ID,
			CreatedSec:   t,
			PrepDoneSec:  t + dc.PrepTimeSec,
			DeadlineSec:  t + dc.SLASec,
			DeliveredSec: -1,
			Status:       OrderPending,
		})
		nextID++
	}

	logrus.Debugf("generated %d orders over %d s service window", len(orders), svc.DurationSec)
	return orders
}
