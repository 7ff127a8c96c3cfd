// Package components defines ECS components for the simulation.
package components

import "math/rand"

// Creature holds identity for an animal on the stage.
type Creature struct {
	ID      uint32
	Species string
}

// Plant holds identity for a consumable resource.
type Plant struct {
	ID      uint32
	Variant string // tree, bush; only picks the visual
}

// Target is the point a creature is heading toward.
// The point is copied from a plant, never linked to it.
type Target struct {
	Point Vec
	Valid bool
}

// Rng is a random stream owned by exactly one entity.
type Rng struct {
	*rand.Rand
}

// NewRng derives an entity stream from a root stream.
func NewRng(root *rand.Rand) Rng {
	return Rng{rand.New(rand.NewSource(root.Int63()))}
}
