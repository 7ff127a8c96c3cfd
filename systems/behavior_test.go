package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/lemilonkh/ecolia/components"
)

// testActor holds the backing values for an Actor.
type testActor struct {
	tr  components.Transform
	vel components.Velocity
	vit components.Vitality
	beh components.Behavior
	tgt components.Target
	rng *rand.Rand
}

func newTestActor(pos components.Vec) *testActor {
	return &testActor{
		tr:  components.Transform{Pos: pos},
		vit: components.FullVitality(),
		rng: rand.New(rand.NewSource(1)),
	}
}

func (a *testActor) actor() Actor {
	return Actor{
		Transform: &a.tr,
		Velocity:  &a.vel,
		Vitality:  &a.vit,
		Behavior:  &a.beh,
		Target:    &a.tgt,
		Rng:       a.rng,
	}
}

func (a *testActor) motion() MotionState {
	return MotionState{Transform: a.tr, Velocity: a.vel, Vitality: a.vit, Behavior: a.beh}
}

func (a *testActor) apply(m MotionState) {
	a.tr, a.vel, a.vit, a.beh = m.Transform, m.Velocity, m.Vitality, m.Behavior
}

// step runs one full creature step the way the tick driver does.
func (a *testActor) step(field *ResourceField, p Params, dt float64) Decision {
	d := Decide(a.actor(), field, p, dt)
	m := a.motion()
	Advance(&m, p, nil, dt)
	a.apply(m)
	return d
}

func TestSteer_VelocityScalesWithEnergy(t *testing.T) {
	tr := components.Transform{}
	var vel components.Velocity

	Steer(&tr, &vel, components.Vec{X: 5}, 0.5, 20)

	if math.Abs(vel.X-10) > 1e-12 || vel.Y != 0 || vel.Z != 0 {
		t.Errorf("velocity = %v, want (10,0,0)", vel.Vec)
	}
	if math.Abs(tr.Facing-math.Pi/2) > 1e-12 {
		t.Errorf("facing = %v, want pi/2", tr.Facing)
	}
}

func TestSteer_ZeroDistance(t *testing.T) {
	tr := components.Transform{Pos: components.Vec{X: 1}}
	vel := components.Velocity{Vec: components.Vec{X: 3}}

	Steer(&tr, &vel, tr.Pos, 1, 20)

	if vel.Speed() != 0 {
		t.Errorf("velocity at target should be zero, got %v", vel.Vec)
	}
}

func TestDecide_ArrivalWithinRadius(t *testing.T) {
	p := testParams()
	field := NewResourceField(ecs.NewWorld())
	a := newTestActor(components.Vec{})
	a.beh.State = components.StateRunning
	a.tgt = components.Target{Point: components.Vec{X: 0.79}, Valid: true}

	d := a.step(field, p, 1.0/60)

	if !d.Arrived || a.beh.State != components.StateEating {
		t.Fatalf("expected Eating on arrival, got %v", a.beh.State)
	}
	if a.beh.Wait.Remaining != p.EatWait {
		t.Errorf("wait timer = %v, want %v", a.beh.Wait.Remaining, p.EatWait)
	}
	if a.tr.Pos != (components.Vec{}) {
		t.Errorf("no integration expected on arrival step, got %v", a.tr.Pos)
	}
	if a.vel.Speed() != 0 {
		t.Errorf("velocity should be cleared on arrival, got %v", a.vel.Vec)
	}
}

func TestDecide_NoArrivalAtRadius(t *testing.T) {
	p := testParams()
	field := NewResourceField(ecs.NewWorld())
	a := newTestActor(components.Vec{})
	a.beh.State = components.StateRunning
	a.tgt = components.Target{Point: components.Vec{Z: 0.8}, Valid: true}

	dt := 0.01
	a.step(field, p, dt)

	if a.beh.State != components.StateRunning {
		t.Fatalf("expected Running at exactly the radius, got %v", a.beh.State)
	}
	if math.Abs(a.tr.Pos.Z-p.BaseVelocity*dt) > 1e-12 {
		t.Errorf("z = %v, want %v", a.tr.Pos.Z, p.BaseVelocity*dt)
	}
}

func TestDecide_ArrivalConsumesPlant(t *testing.T) {
	p := testParams()
	field := NewResourceField(ecs.NewWorld())
	id := field.Spawn(components.Vec{X: 0.5}, "tree")
	field.Spawn(components.Vec{X: 50}, "bush")

	a := newTestActor(components.Vec{})
	a.beh.State = components.StateRunning
	a.tgt = components.Target{Point: components.Vec{X: 0.5}, Valid: true}

	d := a.step(field, p, 1.0/60)

	if !d.Consumed || d.PlantID != id {
		t.Fatalf("expected plant %d consumed, got %+v", id, d)
	}
	if field.Count() != 1 {
		t.Errorf("field count = %d, want 1", field.Count())
	}
}

func TestDecide_EmptyFieldRetries(t *testing.T) {
	p := testParams()
	field := NewResourceField(ecs.NewWorld())

	idle := newTestActor(components.Vec{})
	for i := 0; i < 5; i++ {
		d := idle.step(field, p, 0.1)
		if !d.Retry || idle.beh.State != components.StateIdle {
			t.Fatalf("idle creature should retry, got %+v state %v", d, idle.beh.State)
		}
	}

	eating := newTestActor(components.Vec{})
	eating.beh.Enter(components.StateEating, 0.1)
	for i := 0; i < 5; i++ {
		eating.step(field, p, 0.1)
	}
	if eating.beh.State != components.StateEating || !eating.beh.Waiting() {
		t.Fatalf("expired eater should stay Eating with its timer, got %+v", eating.beh)
	}

	// A plant appears: the next step acquires it
	field.Spawn(components.Vec{X: 10}, "tree")
	d := eating.step(field, p, 0.1)
	if !d.Acquired || eating.beh.State != components.StateRunning || eating.beh.Waiting() {
		t.Errorf("expected Running without timer after acquisition, got %+v", eating.beh)
	}
}

func TestDecide_WaitTimerGatesAcquisition(t *testing.T) {
	p := testParams()
	field := NewResourceField(ecs.NewWorld())
	field.Spawn(components.Vec{X: 10}, "tree")

	a := newTestActor(components.Vec{})
	a.beh.Enter(components.StateEating, 1.0)

	for i := 0; i < 9; i++ {
		if d := a.step(field, p, 0.1); d.Acquired {
			t.Fatalf("acquired before the timer expired at step %d", i)
		}
	}
	if d := a.step(field, p, 0.1); !d.Acquired {
		t.Fatal("expected acquisition on timer expiry")
	}
	if a.beh.State != components.StateRunning {
		t.Errorf("state = %v, want Running", a.beh.State)
	}
}

func TestAdvance_ExhaustionStopsRunner(t *testing.T) {
	p := testParams()
	s := MotionState{
		Velocity: components.Velocity{Vec: components.Vec{X: 1}},
		Vitality: components.NewVitality(1, 0.0001, 1, 1),
		Behavior: components.Behavior{State: components.StateRunning},
	}

	if out := Advance(&s, p, nil, 1); out != OutcomeExhausted {
		t.Fatalf("expected OutcomeExhausted, got %v", out)
	}
	if s.Behavior.State != components.StateIdle || s.Velocity.Speed() != 0 {
		t.Errorf("expected resting Idle with zero velocity, got %+v", s)
	}
}

func TestScenario_OriginToPlant(t *testing.T) {
	p := testParams()
	p.PClosest = 1.0
	field := NewResourceField(ecs.NewWorld())
	field.Spawn(components.Vec{X: 5}, "tree")

	a := newTestActor(components.Vec{})
	const dt = 0.2

	d := a.step(field, p, dt)
	if !d.Acquired || d.Choice.Policy != PolicyNearest {
		t.Fatalf("expected nearest acquisition, got %+v", d)
	}
	if math.Abs(a.tr.Pos.X-4.0) > 1e-9 || a.tr.Pos.Y != 0 || math.Abs(a.tr.Pos.Z) > 1e-9 {
		t.Fatalf("position after first step = %v, want (4,0,0)", a.tr.Pos)
	}

	for i := 0; i < 500 && a.beh.State == components.StateRunning; i++ {
		a.step(field, p, dt)
	}
	if a.beh.State != components.StateEating {
		t.Fatalf("expected Eating after approach, got %v", a.beh.State)
	}
	if a.beh.Wait.Remaining != 5.0 {
		t.Errorf("wait timer = %v, want 5.0", a.beh.Wait.Remaining)
	}
}
