package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_SameSubsystem_ReturnsCachedInstance(t *testing.T) {
	rng := NewPartitionedRNG(42)
	a := rng.ForSubsystem(SubsystemOrders)
	b := rng.ForSubsystem(SubsystemOrders)
	if a != b {
		t.Fatal("same subsystem must return the same cached *rand.Rand")
	}
}

func TestPartitionedRNG_SameSeed_IdenticalStreams(t *testing.T) {
	r1 := NewPartitionedRNG(7)
	r2 := NewPartitionedRNG(7)

	for i := 0; i < 100; i++ {
		assert.Equal(t, r1.ForSubsystem(SubsystemOrders).Int63(), r2.ForSubsystem(SubsystemOrders).Int63())
		assert.Equal(t, r1.ForSubsystem(SubsystemHoles).Int63(), r2.ForSubsystem(SubsystemHoles).Int63())
	}
}

func TestPartitionedRNG_SubsystemsAreIsolated(t *testing.T) {
	// Draws on one subsystem must not perturb the other.
	r1 := NewPartitionedRNG(7)
	r2 := NewPartitionedRNG(7)

	// r1 burns holes draws before touching orders.
	for i := 0; i < 50; i++ {
		r1.ForSubsystem(SubsystemHoles).Int63()
	}
	assert.Equal(t, r2.ForSubsystem(SubsystemOrders).Int63(), r1.ForSubsystem(SubsystemOrders).Int63())
}

func TestPartitionedRNG_DifferentSeeds_DifferentStreams(t *testing.T) {
	r1 := NewPartitionedRNG(1)
	r2 := NewPartitionedRNG(2)
	assert.NotEqual(t, r1.ForSubsystem(SubsystemOrders).Int63(), r2.ForSubsystem(SubsystemOrders).Int63())
}
