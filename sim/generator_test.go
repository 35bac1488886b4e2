package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func generatorInputs() (ServiceConfig, OrderConfig, DeliveryConfig, []*GolferGroup) {
	svc := ServiceConfig{OpenSec: 0, DurationSec: 14400}
	oc := OrderConfig{OrdersPerHour: 12}
	dc := DeliveryConfig{NumRunners: 1, RunnerSpeedMPS: 3, PrepTimeSec: 300, SLASec: 1800, HandoffSec: 30}
	groups := []*GolferGroup{
		{ID: 1, TeeOffSec: 0, Loop: Loop{Points: threeHoles(), CycleSec: 10800}},
		{ID: 2, TeeOffSec: 600, Loop: Loop{Points: threeHoles(), CycleSec: 10800}},
	}
	return svc, oc, dc, groups
}

func TestGenerateOrders_Deterministic(t *testing.T) {
	svc, oc, dc, groups := generatorInputs()

	a := GenerateOrders(NewPartitionedRNG(42), svc, oc, dc, groups)
	b := GenerateOrders(NewPartitionedRNG(42), svc, oc, dc, groups)

	assert.Greater(t, len(a), 0)
	assert.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, *a[i], *b[i])
	}
}

func TestGenerateOrders_WithinServiceWindow(t *testing.T) {
	svc, oc, dc, groups := generatorInputs()

	prev := int64(-1)
	for _, o := range GenerateOrders(NewPartitionedRNG(7), svc, oc, dc, groups) {
		assert.GreaterOrEqual(t, o.CreatedSec, svc.OpenSec)
		assert.Less(t, o.CreatedSec, svc.CloseSec())
		assert.Greater(t, o.CreatedSec, prev)
		prev = o.CreatedSec
	}
}

func TestGenerateOrders_PrepAndDeadlineOffsets(t *testing.T) {
	svc, oc, dc, groups := generatorInputs()

	for _, o := range GenerateOrders(NewPartitionedRNG(7), svc, oc, dc, groups) {
		assert.Equal(t, o.CreatedSec+dc.PrepTimeSec, o.PrepDoneSec)
		assert.Equal(t, o.CreatedSec+dc.SLASec, o.DeadlineSec)
		assert.Equal(t, OrderPending, o.Status)
		assert.Equal(t, int64(-1), o.DeliveredSec)
	}
}

func TestGenerateOrders_HoleMatchesOrderingGroup(t *testing.T) {
	svc, oc, dc, groups := generatorInputs()
	byID := map[int]*GolferGroup{1: groups[0], 2: groups[1]}

	for _, o := range GenerateOrders(NewPartitionedRNG(7), svc, oc, dc, groups) {
		g, ok := byID[o.GroupID]
		if !ok {
			t.Fatalf("order %d attributed to unknown group %d", o.ID, o.GroupID)
		}
		assert.True(t, g.OnCourse(o.CreatedSec))
		assert.Equal(t, g.HoleAt(o.CreatedSec), o.Hole)
	}
}

func TestGenerateOrders_SequentialIDs(t *testing.T) {
	svc, oc, dc, groups := generatorInputs()

	for i, o := range GenerateOrders(NewPartitionedRNG(7), svc, oc, dc, groups) {
		assert.Equal(t, i+1, o.ID)
	}
}

func TestGenerateOrders_ZeroRate(t *testing.T) {
	svc, _, dc, groups := generatorInputs()
	assert.Empty(t, GenerateOrders(NewPartitionedRNG(7), svc, OrderConfig{}, dc, groups))
	assert.Empty(t, GenerateOrders(NewPartitionedRNG(7), svc, OrderConfig{OrdersPerHour: 12}, dc, nil))
}
