package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
)

// Actor bundles live component pointers for one creature's decision step.
type Actor struct {
	Transform *components.Transform
	Velocity  *components.Velocity
	Vitality  *components.Vitality
	Behavior  *components.Behavior
	Target    *components.Target
	Rng       *rand.Rand
}

// Decision reports what a creature did in the decision phase.
type Decision struct {
	Acquired bool   // a new target was chosen
	Choice   Choice // valid when Acquired
	Retry    bool   // acquisition was due but the field had nothing to offer
	Arrived  bool   // Running -> Eating this step
	Consumed bool   // a plant at the target was eaten on arrival
	PlantID  uint32 // valid when Consumed
}

// Decide runs the sequential part of a creature's step: wait timer check,
// target acquisition, steering and arrival. It may mutate the field.
func Decide(a Actor, field *ResourceField, p Params, dt float64) Decision {
	var d Decision
	b := a.Behavior

	switch {
	case b.State == components.StateDead:
		return d
	case b.Wait.Armed:
		if !b.Wait.Tick(dt) {
			return d
		}
		d.Choice, d.Acquired = AcquireTarget(field, a.Transform.Pos, *a.Target, a.Rng, p.PClosest, p.ConsumedEpsilonSq)
	case b.State == components.StateIdle:
		d.Choice, d.Acquired = AcquireTarget(field, a.Transform.Pos, *a.Target, a.Rng, p.PClosest, p.ConsumedEpsilonSq)
	}

	if d.Acquired {
		*a.Target = components.Target{Point: d.Choice.Point, Valid: true}
		b.Enter(components.StateRunning, 0)
	} else if b.State == components.StateIdle || b.Wait.Armed {
		// Empty field: keep the current state and try again next step
		d.Retry = true
		return d
	}

	if b.State != components.StateRunning || !a.Target.Valid {
		return d
	}

	Steer(a.Transform, a.Velocity, a.Target.Point, a.Vitality.Energy(), p.BaseVelocity)

	if Arrived(a.Transform.Pos, a.Target.Point, p.ArrivalRadiusSq) {
		b.Enter(components.StateEating, p.EatWait)
		a.Velocity.Vec = r3.Vec{}
		d.Arrived = true
		if id, ok := field.ConsumeAt(a.Target.Point, p.ConsumedEpsilonSq); ok {
			d.Consumed = true
			d.PlantID = id
		}
	}
	return d
}

// Steer points the creature at target with speed scaled by energy.
func Steer(tr *components.Transform, vel *components.Velocity, target r3.Vec, energy, baseVelocity float64) {
	to := r3.Sub(target, tr.Pos)
	if r3.Norm2(to) == 0 {
		vel.Vec = r3.Vec{}
		return
	}
	dir := r3.Unit(to)
	vel.Vec = r3.Scale(baseVelocity*energy, dir)
	tr.Facing = components.FacingFor(dir)
}

// Arrived reports whether pos is strictly within the arrival radius of target.
func Arrived(pos, target r3.Vec, radiusSq float64) bool {
	return distSq(pos, target) < radiusSq
}

// MotionState is the per-creature data the motion phase reads and writes.
// It touches no shared state, so creatures can be advanced in parallel.
type MotionState struct {
	Transform components.Transform
	Velocity  components.Velocity
	Vitality  components.Vitality
	Behavior  components.Behavior
}

// Advance integrates position and vitality for one step.
func Advance(s *MotionState, p Params, rules HealthRules, dt float64) Outcome {
	if s.Behavior.State == components.StateDead {
		return OutcomeNone
	}
	if s.Vitality.Health() == 0 {
		s.Behavior.Die()
		s.Velocity = components.Velocity{}
		return OutcomeDied
	}

	var speed float64
	if s.Behavior.State == components.StateRunning {
		speed = s.Velocity.Speed()
		if speed > 0 {
			Integrate(&s.Transform, s.Velocity, dt)
		}
	}

	out := UpdateVitality(&s.Vitality, &s.Behavior, speed, p.Rates, p.RestWait, dt)
	if out == OutcomeExhausted {
		s.Velocity = components.Velocity{}
	}

	if rules.Apply(&s.Vitality, s.Behavior.State, dt) {
		s.Behavior.Die()
		s.Velocity = components.Velocity{}
		return OutcomeDied
	}
	return out
}
