package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/lemilonkh/ecolia/components"
)

func TestAcquireTarget_EmptyField(t *testing.T) {
	field := NewResourceField(ecs.NewWorld())
	rng := rand.New(rand.NewSource(1))

	for _, pClosest := range []float64{0, 0.6, 1} {
		if _, ok := AcquireTarget(field, components.Vec{}, components.Target{}, rng, pClosest, 0.1); ok {
			t.Errorf("pClosest=%v: acquisition on empty field should fail", pClosest)
		}
	}
}

func TestAcquireTarget_NearestPicksClosest(t *testing.T) {
	field := NewResourceField(ecs.NewWorld())
	field.Spawn(components.Vec{X: 10}, "tree")
	near := field.Spawn(components.Vec{X: 2, Z: 1}, "bush")
	field.Spawn(components.Vec{Z: -7}, "tree")
	rng := rand.New(rand.NewSource(1))

	c, ok := AcquireTarget(field, components.Vec{}, components.Target{}, rng, 1.0, 0.1)

	if !ok || c.PlantID != near || c.Policy != PolicyNearest {
		t.Errorf("expected nearest plant %d, got %+v", near, c)
	}
}

func TestAcquireTarget_ScanDropsStalePlant(t *testing.T) {
	field := NewResourceField(ecs.NewWorld())
	eaten := components.Vec{X: 1}
	field.Spawn(eaten, "tree")
	next := field.Spawn(components.Vec{X: 30}, "tree")
	rng := rand.New(rand.NewSource(1))
	prev := components.Target{Point: components.Vec{X: 1.2}, Valid: true}

	c, ok := AcquireTarget(field, eaten, prev, rng, 1.0, 0.1)

	if !ok || c.PlantID != next {
		t.Fatalf("expected the stale plant to be skipped, got %+v", c)
	}
	if c.Removed != 1 || field.Count() != 1 {
		t.Errorf("expected stale plant removed, removed=%d count=%d", c.Removed, field.Count())
	}
}

func TestAcquireTarget_ScanCanEmptyField(t *testing.T) {
	field := NewResourceField(ecs.NewWorld())
	field.Spawn(components.Vec{X: 1}, "tree")
	rng := rand.New(rand.NewSource(1))
	prev := components.Target{Point: components.Vec{X: 1}, Valid: true}

	if _, ok := AcquireTarget(field, components.Vec{}, prev, rng, 1.0, 0.1); ok {
		t.Error("no live plant remains after dropping the stale one")
	}
	if field.Count() != 0 {
		t.Errorf("count = %d, want 0", field.Count())
	}
}

func TestAcquireTarget_RandomIsUniform(t *testing.T) {
	field := NewResourceField(ecs.NewWorld())
	for i := 0; i < 4; i++ {
		field.Spawn(components.Vec{X: float64(i * 10)}, "tree")
	}
	rng := rand.New(rand.NewSource(3))

	counts := make(map[uint32]int)
	const n = 8000
	for i := 0; i < n; i++ {
		c, ok := AcquireTarget(field, components.Vec{}, components.Target{}, rng, 0, 0.1)
		if !ok || c.Policy != PolicyRandom {
			t.Fatalf("expected random pick, got %+v", c)
		}
		counts[c.PlantID]++
	}

	for id, got := range counts {
		frac := float64(got) / n
		if math.Abs(frac-0.25) > 0.03 {
			t.Errorf("plant %d picked %.3f of the time, want ~0.25", id, frac)
		}
	}
}

func TestAcquireTarget_ForagingMix(t *testing.T) {
	field := NewResourceField(ecs.NewWorld())
	stage := Stage(100)
	spawnRng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		field.Spawn(RandomStagePoint(stage, spawnRng), "tree")
	}

	pos := components.Vec{X: 50, Z: 50}
	var nearestID uint32
	best := math.Inf(1)
	for _, r := range field.All() {
		if d := distSq(r.Pos, pos); d < best {
			best, nearestID = d, r.ID
		}
	}

	rng := rand.New(rand.NewSource(42))
	const calls = 10000
	nearest := 0
	for i := 0; i < calls; i++ {
		c, ok := AcquireTarget(field, pos, components.Target{}, rng, 0.6, 0.1)
		if !ok {
			t.Fatal("acquisition failed on a populated field")
		}
		if c.PlantID == nearestID {
			nearest++
		}
	}

	frac := float64(nearest) / calls
	if math.Abs(frac-0.6) > 0.02 {
		t.Errorf("nearest fraction = %.4f, want 0.6 +/- 0.02", frac)
	}
}
