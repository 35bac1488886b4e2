package sim

import (
	"hash/fnv"
	"math/rand"
)

// Subsystem names for partitioned randomness. Order arrival timing and hole
// selection draw from isolated streams so adding draws to one subsystem
// never perturbs the other.
const (
	// SubsystemOrders drives order inter-arrival times.
	// Uses the master seed directly so --seed alone reproduces arrivals.
	SubsystemOrders = "orders"

	// SubsystemHoles drives which golfer group places each order.
	SubsystemHoles = "holes"
)

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem within one replication.
//
// Derivation: SubsystemOrders uses the master seed directly; all other
// subsystems use masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. One replication owns one PartitionedRNG
// and drives it from a single goroutine.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derived := p.seed
	if name != SubsystemOrders {
		derived = p.seed ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derived))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 { return p.seed }

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
