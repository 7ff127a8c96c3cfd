package sim

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/systems"
)

// spawnInitialPopulation creates the configured creatures and plants.
func (s *Simulation) spawnInitialPopulation() {
	for _, species := range s.cfg.Creatures.Species {
		for i := 0; i < s.cfg.Creatures.PerSpecies; i++ {
			s.SpawnCreature(species, systems.RandomStagePoint(s.stage, s.rng))
		}
	}
	s.spawner.Seed(s.field, s.cfg.Resource.InitialCount)
}

// SpawnCreature places a new Idle creature with full vitality and returns its id.
func (s *Simulation) SpawnCreature(species string, pos r3.Vec) uint32 {
	s.nextID++
	id := s.nextID

	tr := components.Transform{Pos: pos}
	vel := components.Velocity{}
	vit := components.FullVitality()
	beh := components.Behavior{State: components.StateIdle}
	tgt := components.Target{}
	cr := components.Creature{ID: id, Species: species}
	rng := components.NewRng(s.rng)

	e := s.creatureMapper.NewEntity(&tr, &vel, &vit, &beh, &tgt, &cr, &rng)
	s.creatures = append(s.creatures, e)
	s.byID[id] = e
	s.gridDirty = true
	return id
}

// SpawnResource places a plant. An empty variant picks one at random.
func (s *Simulation) SpawnResource(pos r3.Vec, variant string) uint32 {
	if variant == "" {
		variant = s.spawner.RandomVariant()
	}
	s.collector.RecordSpawned(1)
	return s.field.Spawn(pos, variant)
}

// RemoveResource deletes a plant. Unknown ids are a no-op.
func (s *Simulation) RemoveResource(id uint32) bool {
	if !s.field.Remove(id) {
		return false
	}
	s.collector.RecordRemoved()
	return true
}

// ApplyDamage lowers a creature's health; reaching zero kills it.
// Returns false if the id is unknown or the creature is already dead.
func (s *Simulation) ApplyDamage(id uint32, amount float64) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	_, vel, vit, beh, _, cr, _ := s.creatureMapper.Get(e)
	if beh.State == components.StateDead {
		return false
	}
	if vit.ApplyDamage(amount) {
		beh.Die()
		*vel = components.Velocity{}
		s.recordOutcome(cr, systems.OutcomeDied)
	}
	return true
}

// StartActivity puts a creature into a stationary waiting state
// (Eating or Drinking) and arms its wait timer.
func (s *Simulation) StartActivity(id uint32, state components.State) bool {
	if !state.Waits() {
		slog.Warn("not a waiting state", "id", id, "state", state)
		return false
	}
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	_, vel, _, beh, _, _, _ := s.creatureMapper.Get(e)
	if beh.State == components.StateDead {
		return false
	}
	beh.Enter(state, s.params.WaitFor(state))
	*vel = components.Velocity{}
	return true
}
