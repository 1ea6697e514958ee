// Package placement implements the PlacementEngine (spec.md §4.9): pre-
// placement rules, the assumed-search reachability walk, assumed fill of the
// progression pool, junk fill, and hint-ghost assignment, grounded directly
// on original_source/randomizer/src/filler/alr.rs and
// original_source/randomizer/src/filler/util.rs.
package placement

import "math/rand/v2"

// RNG wraps math/rand/v2's PCG source behind pool.Shuffler plus the uniform
// choice operation the engine needs, so every randomized decision in a run
// draws from one deterministic stream keyed by a single seed value — the
// same contract the dungeon-generator RNG interface in the retrieval pack's
// contracts/generator.go names ("use provided RNG for all randomized
// decisions... deterministic").
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a new RNG from a single uint64.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, seed))}
}

// Shuffle performs a Fisher-Yates shuffle via swap, satisfying
// internal/pool.Shuffler.
func (g *RNG) Shuffle(n int, swap func(i, j int)) {
	g.r.Shuffle(n, swap)
}

// IntN returns a uniform random int in [0, n). Panics if n <= 0, matching
// math/rand/v2's own contract.
func (g *RNG) IntN(n int) int {
	return g.r.IntN(n)
}
