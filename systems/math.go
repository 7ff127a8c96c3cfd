package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/config"
)

// Params holds the per-tick constants read from config.
type Params struct {
	BaseVelocity    float64
	ArrivalRadiusSq float64
	Rates           VitalityRates

	EatWait   float64
	DrinkWait float64
	RestWait  float64

	PClosest          float64
	ConsumedEpsilonSq float64
}

// NewParams extracts simulation constants from cfg. Squared values are
// computed here rather than read from Derived, so edits after loading apply.
func NewParams(cfg *config.Config) Params {
	v := cfg.Vitality
	r := cfg.Creatures.ArrivalRadius
	return Params{
		BaseVelocity:    cfg.Creatures.BaseVelocity,
		ArrivalRadiusSq: r * r,
		Rates: VitalityRates{
			RunEnergyDrain:   v.RunEnergyDrain,
			RunHungerDrain:   v.RunHungerDrain,
			RunThirstDrain:   v.RunThirstDrain,
			EatEnergyGain:    v.EatEnergyGain,
			EatHungerDrain:   v.EatDuration,
			DrinkEnergyGain:  v.DrinkEnergyGain,
			DrinkThirstDrain: v.DrinkDuration,
			RestEnergyGain:   v.RestEnergyGain,
		},
		EatWait:           cfg.Timers.EatWait,
		DrinkWait:         cfg.Timers.DrinkWait,
		RestWait:          cfg.Timers.RestWait,
		PClosest:          cfg.Foraging.PClosest,
		ConsumedEpsilonSq: cfg.Foraging.ConsumedEpsilonSq,
	}
}

// WaitFor returns the wait duration armed on entering s.
func (p Params) WaitFor(s components.State) float64 {
	switch s {
	case components.StateEating:
		return p.EatWait
	case components.StateDrinking:
		return p.DrinkWait
	default:
		return 0
	}
}

// Stage returns the bounded XZ square of side size as a box.
// The Y extent is headroom so the box is not degenerate; the floor is Min.Y.
func Stage(size float64) r3.Box {
	return r3.Box{Max: r3.Vec{X: size, Y: size, Z: size}}
}

// RandomStagePoint returns a uniformly random point on the stage floor.
func RandomStagePoint(stage r3.Box, rng *rand.Rand) r3.Vec {
	s := stage.Size()
	return r3.Vec{
		X: stage.Min.X + rng.Float64()*s.X,
		Y: stage.Min.Y,
		Z: stage.Min.Z + rng.Float64()*s.Z,
	}
}

// distSq returns the squared distance between a and b.
func distSq(a, b r3.Vec) float64 {
	return r3.Norm2(r3.Sub(a, b))
}
