package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// spawnEpsilon absorbs float drift when elapsed time lands on an interval boundary.
const spawnEpsilon = 1e-9

// Spawner replenishes the field on a repeating countdown.
type Spawner struct {
	interval float64
	elapsed  float64
	stage    r3.Box
	variants []string
	rng      *rand.Rand
}

// NewSpawner creates a spawner firing every interval seconds.
// rng must be owned by the spawner alone.
func NewSpawner(interval float64, stage r3.Box, variants []string, rng *rand.Rand) *Spawner {
	return &Spawner{
		interval: interval,
		stage:    stage,
		variants: variants,
		rng:      rng,
	}
}

// Update advances the countdown and spawns one plant per elapsed interval.
// Returns the number of plants spawned.
func (s *Spawner) Update(field *ResourceField, dt float64) int {
	s.elapsed += dt
	n := 0
	for s.elapsed+spawnEpsilon >= s.interval {
		s.elapsed -= s.interval
		s.SpawnRandom(field)
		n++
	}
	if s.elapsed < 0 {
		s.elapsed = 0
	}
	return n
}

// Seed spreads count plants uniformly over the stage.
func (s *Spawner) Seed(field *ResourceField, count int) {
	for i := 0; i < count; i++ {
		s.SpawnRandom(field)
	}
}

// SpawnRandom creates one plant at a random stage point with a random variant.
func (s *Spawner) SpawnRandom(field *ResourceField) uint32 {
	pos := RandomStagePoint(s.stage, s.rng)
	return field.Spawn(pos, s.RandomVariant())
}

// RandomVariant picks a variant uniformly.
func (s *Spawner) RandomVariant() string {
	return s.variants[s.rng.Intn(len(s.variants))]
}

// Remaining returns the seconds until the next firing.
func (s *Spawner) Remaining() float64 {
	return s.interval - s.elapsed
}
